// Package search implements remote catalogue search against the public
// video and music endpoints.
//
// Both clients post a query to the respective JSON endpoint and walk
// the answered renderer tree for the handful of fields the player UI
// needs, mapped onto model.Track.
package search
