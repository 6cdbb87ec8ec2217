// Package regions provides the US state, Canadian province and country lists
// used by address forms, search helpers over them, and a small net/http
// handler that returns JSON options for form inputs.
//
// The default handler responds to GET and HEAD requests and supports set,
// query and limit parameters. The backing data is embedded under data/.
package regions
