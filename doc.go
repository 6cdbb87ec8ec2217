// Package formation renders HTML forms from named fields, default values and
// validation results.
//
// A Form is built once per request from the submitted data:
//
//	src, _ := request.FromHTTP(r)
//	form, err := formation.New(src)
//	if err != nil {
//		return err
//	}
//	_, err = form.Setup(ctx, descriptor.FromTuples(map[string][]any{
//		"user.email": {"Email", "required|email"},
//	}))
//	html := form.Label("user.email") + form.Email("user.email") + form.Error("user.email")
//
// Submitted values win over defaults until ResetDefaults is called, inputs of
// invalid fields get the "error" class, and error messages name the field by
// its label. See pkg/httpform and pkg/ginform for middleware that builds the
// Form for each request.
package formation
