package vanilla_test

import (
	"testing"

	"github.com/goliatone/go-formation/pkg/options"
	"github.com/goliatone/go-formation/pkg/renderers/vanilla"
	"github.com/goliatone/go-formation/pkg/testsupport"
	"github.com/goliatone/go-formation/pkg/validation"
)

func TestSelect_MarksCurrentValue(t *testing.T) {
	renderer, store := newRenderer(t, nil)
	store.SetDefaults(map[string]any{"color": "green"})

	got := renderer.Select("color", options.Simple("red", "green"), vanilla.WithPlaceholder("Pick"))
	want := `<select id="color" name="color"><option value="">Pick</option>` + "\n" +
		`<option value="red">red</option>` + "\n" +
		`<option value="green" selected="selected">green</option>` + "\n" +
		`</select>`
	assertHTML(t, want, got)
}

func TestSelect_GroupsAndExplicitSelection(t *testing.T) {
	renderer, _ := newRenderer(t, nil)
	list := options.List{
		options.Pair("", "None"),
		options.Group("Warm", options.Simple("red", "orange")),
	}

	got := renderer.Select("colors", list,
		vanilla.WithSelected([]string{"orange"}),
		vanilla.WithAttr("multiple", "multiple"),
	)
	want := `<select multiple="multiple" id="colors" name="colors"><option value="">None</option>` + "\n" +
		`<optgroup label="Warm"><option value="red">red</option><option value="orange" selected="selected">orange</option></optgroup>` + "\n" +
		`</select>`
	assertHTML(t, want, got)
}

func TestSelect_SubmittedSequenceSelectsMembers(t *testing.T) {
	renderer, _ := newRenderer(t, map[string]any{"tags": []any{"a", "c"}})

	got := renderer.Select("tags", options.Simple("a", "b", "c"), vanilla.WithAttr("id", "tag-list"))
	want := `<select id="tag-list" name="tags"><option value="a" selected="selected">a</option>` + "\n" +
		`<option value="b">b</option>` + "\n" +
		`<option value="c" selected="selected">c</option>` + "\n" +
		`</select>`
	assertHTML(t, want, got)
}

func TestSelect_ErrorClassAndEscaping(t *testing.T) {
	renderer, store := newRenderer(t, map[string]any{"size": "xl"})
	store.SetScopes([]validation.Scope{
		testsupport.FailedScope("root", "", map[string]string{"size": "The selected size is invalid."}),
	})

	got := renderer.Select("size", options.List{options.Pair("s&m", `Small & "Medium"`)})
	want := `<select id="size" name="size" class="error"><option value="s&amp;m">Small &amp; &quot;Medium&quot;</option>` + "\n" + `</select>`
	assertHTML(t, want, got)
}

func TestCheckbox(t *testing.T) {
	renderer, _ := newRenderer(t, map[string]any{"agree": "1", "count": 2})

	assertHTML(t, `<input checked="checked" type="checkbox" name="agree" value="1" id="agree">`, renderer.Checkbox("agree"))
	assertHTML(t, `<input type="checkbox" name="other" value="1" id="other">`, renderer.Checkbox("other"))
	assertHTML(t, `<input checked="checked" type="checkbox" name="count" value="2" id="count">`, renderer.Checkbox("count", vanilla.WithValue(2)))
	assertHTML(t, `<input checked="checked" type="checkbox" name="forced" value="1" id="forced">`, renderer.Checkbox("forced", vanilla.WithChecked()))
}

func TestCheckbox_UncheckedFallsBackToDefault(t *testing.T) {
	renderer, store := newRenderer(t, map[string]any{"name": "Ada"})
	store.SetDefaults(map[string]any{"agree": 1})

	assertHTML(t, `<input checked="checked" type="checkbox" name="agree" value="1" id="agree">`, renderer.Checkbox("agree"))
}

func TestRadio(t *testing.T) {
	renderer, _ := newRenderer(t, map[string]any{"plan": "pro"})

	assertHTML(t, `<input checked="checked" type="radio" name="plan" value="pro" id="plan">`, renderer.Radio("plan", vanilla.WithValue("pro")))
	assertHTML(t, `<input type="radio" name="plan" value="basic" id="plan">`, renderer.Radio("plan", vanilla.WithValue("basic")))
	assertHTML(t, `<input type="radio" name="solo" value="solo" id="solo">`, renderer.Radio("solo"))
}

func TestCheckboxSet_RedirectsContainerAttributes(t *testing.T) {
	renderer, store := newRenderer(t, map[string]any{
		"prefs": map[string]any{"news": "1"},
	})
	list := options.List{options.Pair("news", "Newsletter"), options.Pair("offers", "Offers")}

	got := renderer.CheckboxSet(list,
		vanilla.WithPrefix("prefs"),
		vanilla.WithAttr("class_container", "wide"),
		vanilla.WithAttr("data-role_container", "set"),
		vanilla.WithAttr("class", "check"),
	)
	want := `<ul class="checkbox-set wide" data-role="set">` +
		`<li class="selected"><input class="check" id="prefs-news" checked="checked" type="checkbox" name="prefs[news]" value="1"><label for="prefs-news">Newsletter</label></li>` +
		`<li><input class="check" id="prefs-offers" type="checkbox" name="prefs[offers]" value="1"><label for="prefs-offers">Offers</label></li>` +
		`</ul>`
	assertHTML(t, want, got)

	if label, _ := store.Label("prefs.news"); label != "Newsletter" {
		t.Fatalf("expected item label to be registered, got %q", label)
	}
	if renderer.CheckboxSet(nil) != "" {
		t.Fatalf("empty set must render nothing")
	}
}

func TestRadioSet(t *testing.T) {
	renderer, store := newRenderer(t, map[string]any{"plan": "pro_max"})
	list := options.List{options.Pair("basic", "Basic Plan"), options.Pair("pro_max", "Pro Max")}

	got := renderer.RadioSet("plan", list, vanilla.WithAttr("class_container", "inline"))
	want := `<ul class="radio-set inline">` +
		`<li><input id="plan-basic" type="radio" name="plan" value="basic"><label for="plan-basic">Basic Plan</label></li>` +
		`<li class="selected"><input id="plan-pro-max" checked="checked" type="radio" name="plan" value="pro_max"><label for="plan-pro-max">Pro Max</label></li>` +
		`</ul>`
	assertHTML(t, want, got)

	if _, ok := store.Label("plan"); ok {
		t.Fatalf("radio sets must not register a label for the field")
	}
}

func TestRadioSet_ErrorClassOnContainer(t *testing.T) {
	renderer, store := newRenderer(t, map[string]any{"plan": ""})
	store.SetScopes([]validation.Scope{
		testsupport.FailedScope("root", "", map[string]string{"plan": "The plan field is required."}),
	})

	got := renderer.RadioSet("plan", options.Simple("a"), vanilla.WithSelected("a"))
	want := `<ul class="radio-set error">` +
		`<li class="selected"><input id="plan-a" checked="checked" class="error" type="radio" name="plan" value="a"><label for="plan-a">a</label></li>` +
		`</ul>`
	assertHTML(t, want, got)
}
