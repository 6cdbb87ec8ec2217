// Package fieldpath derives the wire name, DOM identifier and display label of
// a dotted field path such as "order.items.qty".
//
// Dotted paths are the only addressing scheme the rest of the module uses:
// defaults, labels and validation scopes are keyed by them, and the renderers
// translate them into bracketed input names ("order[items][qty]") at the last
// moment.
package fieldpath
