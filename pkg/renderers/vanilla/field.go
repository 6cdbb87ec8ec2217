package vanilla

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formation/pkg/fieldpath"
	rendertemplate "github.com/goliatone/go-formation/pkg/render/template"
)

// ErrUnknownFieldKind is returned by Field for kinds it cannot lay out.
var ErrUnknownFieldKind = errors.New("vanilla: unknown field kind")

// FieldKind selects the control Field renders.
type FieldKind string

const (
	KindText        FieldKind = "text"
	KindPassword    FieldKind = "password"
	KindEmail       FieldKind = "email"
	KindSearch      FieldKind = "search"
	KindTelephone   FieldKind = "tel"
	KindURL         FieldKind = "url"
	KindNumber      FieldKind = "number"
	KindDate        FieldKind = "date"
	KindFile        FieldKind = "file"
	KindTextarea    FieldKind = "textarea"
	KindSelect      FieldKind = "select"
	KindCheckbox    FieldKind = "checkbox"
	KindRadio       FieldKind = "radio"
	KindCheckboxSet FieldKind = "checkbox-set"
	KindRadioSet    FieldKind = "radio-set"
)

// Field renders a label, control and error block wrapped in the configured
// field container. Checkboxes and radios place the label after the control.
// Sets take their options from WithList; a checkbox set uses path as the
// prefix of its entries. WithText overrides the label text; every other
// option is passed to the control.
func (r *Renderer) Field(path string, kind FieldKind, opts ...ElementOption) (string, error) {
	el := buildElement(opts)

	var labelOpts []ElementOption
	if el.hasText {
		labelOpts = append(labelOpts, WithText(el.text))
	}
	controlOpts := append(opts[:len(opts):len(opts)], func(control *element) {
		control.text = ""
		control.hasText = false
	})

	var parts []string
	switch kind {
	case KindText, KindPassword, KindEmail, KindSearch, KindTelephone, KindURL, KindNumber, KindDate, KindFile:
		parts = append(parts, r.Label(path, labelOpts...), r.Input(string(kind), path, controlOpts...))
	case KindTextarea:
		parts = append(parts, r.Label(path, labelOpts...), r.Textarea(path, controlOpts...))
	case KindSelect:
		parts = append(parts, r.Label(path, labelOpts...), r.Select(path, el.list, controlOpts...))
	case KindCheckbox:
		parts = append(parts, r.Checkbox(path, controlOpts...), r.Label(path, labelOpts...))
	case KindRadio:
		parts = append(parts, r.Radio(path, controlOpts...), r.Label(path, labelOpts...))
	case KindCheckboxSet:
		setOpts := append(controlOpts, WithPrefix(path))
		parts = append(parts, r.Label("", WithText(r.labelText(path, el))), r.CheckboxSet(el.list, setOpts...))
	case KindRadioSet:
		parts = append(parts, r.Label("", WithText(r.labelText(path, el))), r.RadioSet(path, el.list, controlOpts...))
	default:
		return "", fmt.Errorf("%w: %q for field %q", ErrUnknownFieldKind, kind, path)
	}
	if el.always {
		parts = append(parts, r.Error(path, AlwaysRender()))
	} else {
		parts = append(parts, r.Error(path))
	}

	data := map[string]any{
		"container":       r.settings.FieldContainer,
		"container_class": r.settings.FieldContainerClass,
		"id":              fieldpath.DOMID(path, ""),
		"kind":            string(kind),
		"parts":           parts,
	}
	html, err := r.templates.RenderTemplate(rendertemplate.FieldTemplate, data)
	if err != nil {
		return "", fmt.Errorf("vanilla renderer: render field %q: %w", path, err)
	}
	return html, nil
}
