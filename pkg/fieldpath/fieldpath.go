package fieldpath

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RootScope names the validation scope used by single segment paths.
const RootScope = "root"

var domReplacer = strings.NewReplacer(".", "-", "_", "-")

// Segments splits a dotted path. An empty path yields no segments.
func Segments(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

// WireName converts "a.b.c" into "a[b][c]". Paths without dots are returned
// unchanged.
func WireName(path string) string {
	segments := Segments(path)
	if len(segments) < 2 {
		return path
	}

	var builder strings.Builder
	builder.Grow(len(path) + len(segments))
	builder.WriteString(segments[0])
	for _, segment := range segments[1:] {
		builder.WriteByte('[')
		builder.WriteString(segment)
		builder.WriteByte(']')
	}
	return builder.String()
}

// DOMID returns explicit when it is set, otherwise the path with every dot and
// underscore replaced by a dash.
func DOMID(path, explicit string) string {
	if explicit != "" {
		return explicit
	}
	return domReplacer.Replace(path)
}

// Label builds a display label from the last path segment: underscores become
// spaces and each word is title-cased ("user.first_name" -> "First Name").
func Label(path string) string {
	segments := Segments(path)
	if len(segments) == 0 {
		return ""
	}
	last := strings.ReplaceAll(segments[len(segments)-1], "_", " ")
	return cases.Title(language.Und, cases.NoLower).String(last)
}

// Scope splits a path into the validation scope it belongs to and the leaf key
// validators report errors under. Single segment paths live in RootScope and
// use the whole path as leaf; deeper paths use their last two segments.
func Scope(path string) (scope, leaf string) {
	segments := Segments(path)
	if len(segments) < 2 {
		return RootScope, path
	}
	return segments[len(segments)-2], segments[len(segments)-1]
}

// Prefix returns every segment but the last, joined back with dots.
func Prefix(path string) string {
	idx := strings.LastIndexByte(path, '.')
	if idx < 0 {
		return ""
	}
	return path[:idx]
}

// Slug lowercases value and replaces underscores and spaces with dashes. It is
// used to suffix ids of inputs that share a name, such as radio buttons.
func Slug(value string) string {
	value = strings.ToLower(value)
	value = strings.ReplaceAll(value, "_", "-")
	return strings.ReplaceAll(value, " ", "-")
}
