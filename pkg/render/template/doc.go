// Package template defines the seam composite renderers use to lay out
// pre-rendered element markup. The pongo subpackage provides the default
// implementation.
package template
