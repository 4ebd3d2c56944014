package search

import "encoding/json"

// The search endpoints answer deeply nested renderer trees whose exact
// shape shifts between page versions. Rather than mirror the whole
// schema, the clients walk the decoded JSON and pluck out the renderer
// objects they care about.

type innertubeRequest struct {
	Context innertubeContext `json:"context"`
	Query   string           `json:"query"`
	Params  string           `json:"params,omitempty"`
}

type innertubeContext struct {
	Client innertubeClient `json:"client"`
}

type innertubeClient struct {
	ClientName    string `json:"clientName"`
	ClientVersion string `json:"clientVersion"`
	HL            string `json:"hl"`
}

// collectRenderers walks node depth-first and appends every object
// stored under the given key, in document order.
func collectRenderers(node any, key string, out *[]map[string]any) {
	switch v := node.(type) {
	case map[string]any:
		for k, child := range v {
			if k == key {
				if renderer, ok := child.(map[string]any); ok {
					*out = append(*out, renderer)
				}
				continue
			}
			collectRenderers(child, key, out)
		}
	case []any:
		for _, child := range v {
			collectRenderers(child, key, out)
		}
	}
}

// decodeRenderers decodes raw JSON and collects all renderer objects
// stored under key.
func decodeRenderers(raw json.RawMessage, key string) ([]map[string]any, error) {
	var root any
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, err
	}
	var out []map[string]any
	collectRenderers(root, key, &out)
	return out, nil
}

// rendererText resolves a text node, which carries its value either as
// a plain simpleText or as a list of runs.
func rendererText(node any) string {
	m, ok := node.(map[string]any)
	if !ok {
		return ""
	}
	if s, ok := m["simpleText"].(string); ok {
		return s
	}
	runs, ok := m["runs"].([]any)
	if !ok || len(runs) == 0 {
		return ""
	}
	run, ok := runs[0].(map[string]any)
	if !ok {
		return ""
	}
	s, _ := run["text"].(string)
	return s
}

// rendererRuns returns every run text of a text node, in order.
func rendererRuns(node any) []string {
	m, ok := node.(map[string]any)
	if !ok {
		return nil
	}
	runs, ok := m["runs"].([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, r := range runs {
		run, ok := r.(map[string]any)
		if !ok {
			continue
		}
		if s, ok := run["text"].(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// rendererThumbnail returns the URL of the largest thumbnail variant,
// which the endpoints list last.
func rendererThumbnail(node any) string {
	m, ok := node.(map[string]any)
	if !ok {
		return ""
	}
	if inner, ok := m["thumbnail"].(map[string]any); ok {
		m = inner
	}
	list, ok := m["thumbnails"].([]any)
	if !ok || len(list) == 0 {
		return ""
	}
	last, ok := list[len(list)-1].(map[string]any)
	if !ok {
		return ""
	}
	url, _ := last["url"].(string)
	return url
}

// lookup walks nested objects by key path, returning nil when any hop
// is missing.
func lookup(node any, path ...string) any {
	for _, key := range path {
		m, ok := node.(map[string]any)
		if !ok {
			return nil
		}
		node = m[key]
	}
	return node
}
