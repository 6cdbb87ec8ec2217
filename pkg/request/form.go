package request

import (
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

const defaultMaxMemory = 32 << 20

// FromForm decodes bracketed form keys ("order[items][qty]", "tags[]") into a
// nested payload. Keys are processed in sorted order so repeated decoding is
// deterministic.
func FromForm(form url.Values) Source {
	data := make(map[string]any, len(form))

	keys := make([]string, 0, len(form))
	for key := range form {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		segments, list := parseKey(key)
		if len(segments) == 0 {
			continue
		}
		assign(data, segments, form[key], list)
	}

	return &httpValues{values: values{data: data, submitted: len(data) > 0}}
}

// FromHTTP parses the request body (urlencoded or multipart) and wraps the
// posted values. Query string parameters are not treated as a submission.
func FromHTTP(r *http.Request) (Source, error) {
	if r == nil {
		return Empty(), nil
	}

	contentType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if contentType == "multipart/form-data" {
		if err := r.ParseMultipartForm(defaultMaxMemory); err != nil {
			return nil, fmt.Errorf("request: parse multipart form: %w", err)
		}
	} else if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("request: parse form: %w", err)
	}

	src := FromForm(r.PostForm).(*httpValues)
	src.scheme = "http"
	if r.TLS != nil {
		src.scheme = "https"
	}
	src.host = r.Host
	if r.URL != nil {
		src.path = r.URL.RequestURI()
	}
	return src, nil
}

type httpValues struct {
	values
	scheme string
	host   string
	path   string
}

func (h *httpValues) Scheme() string { return h.scheme }
func (h *httpValues) Host() string   { return h.host }
func (h *httpValues) Path() string   { return h.path }

// parseKey turns "a[b][c]" into [a b c]. A trailing "[]" marks a list.
func parseKey(raw string) ([]string, bool) {
	key := strings.TrimSpace(raw)
	if key == "" {
		return nil, false
	}

	list := false
	if strings.HasSuffix(key, "[]") {
		list = true
		key = strings.TrimSuffix(key, "[]")
	}

	open := strings.IndexByte(key, '[')
	if open < 0 {
		return []string{key}, list
	}

	segments := []string{key[:open]}
	rest := key[open:]
	for len(rest) > 0 {
		if rest[0] != '[' {
			break
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			break
		}
		segments = append(segments, rest[1:end])
		rest = rest[end+1:]
	}

	out := segments[:0]
	for _, segment := range segments {
		if segment == "" {
			continue
		}
		out = append(out, segment)
	}
	return out, list
}

func assign(data map[string]any, segments []string, values []string, list bool) {
	node := data
	for _, segment := range segments[:len(segments)-1] {
		child, ok := node[segment].(map[string]any)
		if !ok {
			child = make(map[string]any)
			node[segment] = child
		}
		node = child
	}

	leaf := segments[len(segments)-1]
	switch {
	case list || len(values) > 1:
		node[leaf] = append([]string(nil), values...)
	case len(values) == 1:
		node[leaf] = values[0]
	default:
		node[leaf] = ""
	}
}
