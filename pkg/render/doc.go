// Package render holds the pieces shared by every element renderer: the
// configuration, ordered attribute lists, charset aware escaping, hidden field
// helpers and the resolver that maps validation results back to field paths.
package render
