// Package acquire implements the media acquisition pipeline: spawning the
// external downloader with a bounded retry policy, parsing its structured
// output into a domain record, and post-processing topic-upload artwork.
//
// The pipeline for one download request is
//
//	stdout, err := fetcher.Fetch(ctx, ref)     // orchestrator, 3 attempts
//	res, err := acquire.ParseResult(stdout)    // resolver
//	thumb, err := finisher.Finish(res)         // conditional re-crop
//	track := res.Summary(thumb)
//
// Failures are classified, never swallowed: *ToolError (the tool's own
// diagnostics, a client-input problem), *SpawnError (the tool could not
// run, a server problem), *ParseError (malformed upstream response,
// terminal). The HTTP layer maps those onto status codes.
package acquire
