package formation_test

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	formation "github.com/goliatone/go-formation"
	"github.com/goliatone/go-formation/pkg/renderers/vanilla"
)

var fsReadFile = fs.ReadFile

func TestMacroCallUsesForm(t *testing.T) {
	registry := formation.NewMacroRegistry()
	registry.MustRegister("money", func(f *formation.Form, args ...any) (string, error) {
		if len(args) != 1 {
			return "", fmt.Errorf("money: want a path")
		}
		path, _ := args[0].(string)
		return "$" + f.Text(path, vanilla.WithAttr("class", "money")), nil
	})

	form := newForm(t, nil, formation.WithMacros(registry))
	form.SetDefaults(map[string]any{"price": 5})

	got, err := form.Call("money", "price")
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	want := `$<input class="money" type="text" name="price" value="5" id="price">`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("macro output mismatch (-want +got):\n%s", diff)
	}

	if _, err := form.Call("money"); err == nil || err.Error() != "money: want a path" {
		t.Fatalf("expected macro error to pass through, got %v", err)
	}
}

func TestMacroNotFound(t *testing.T) {
	form := newForm(t, nil, formation.WithMacros(formation.NewMacroRegistry()))

	_, err := form.Call("datepicker")
	if !errors.Is(err, formation.ErrMacroNotFound) {
		t.Fatalf("expected ErrMacroNotFound, got %v", err)
	}
	if want := "formation: Method [datepicker] does not exist: macro not found"; err.Error() != want {
		t.Fatalf("unexpected error text %q", err.Error())
	}
}

func TestMacroRegistryRejectsDuplicatesAndBlankNames(t *testing.T) {
	registry := formation.NewMacroRegistry()
	noop := func(*formation.Form, ...any) (string, error) { return "", nil }

	if err := registry.Register("stars", noop); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := registry.Register("stars", noop); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
	if err := registry.Register("  ", noop); err == nil {
		t.Fatalf("expected blank name to fail")
	}
	if err := registry.Register("nil", nil); err == nil {
		t.Fatalf("expected nil macro to fail")
	}
	if !registry.Has("stars") || registry.Has("nil") {
		t.Fatalf("unexpected registry contents %v", registry.List())
	}
}

func TestMacroRegistryConcurrentUse(t *testing.T) {
	registry := formation.NewMacroRegistry()
	form := newForm(t, nil, formation.WithMacros(registry))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("m%d", i)
			_ = registry.Register(name, func(*formation.Form, ...any) (string, error) { return name, nil })
			_, _ = registry.Call(form, name)
			_ = registry.List()
		}(i)
	}
	wg.Wait()

	want := []string{"m0", "m1", "m2", "m3", "m4", "m5", "m6", "m7"}
	if diff := cmp.Diff(want, registry.List()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestRegisterMacroUsesDefaultRegistry(t *testing.T) {
	name := "formation_test_default_macro"
	if err := formation.RegisterMacro(name, func(*formation.Form, ...any) (string, error) { return "ok", nil }); err != nil {
		t.Fatalf("RegisterMacro: %v", err)
	}
	if !formation.DefaultMacros().Has(name) {
		t.Fatalf("expected default registry to hold %q", name)
	}

	form := newForm(t, nil)
	got, err := form.Call(name)
	if err != nil || got != "ok" {
		t.Fatalf("Call = %q, %v", got, err)
	}
}
