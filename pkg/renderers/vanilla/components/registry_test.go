package components

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fieldsync/pkg/extrafields"
	"github.com/goliatone/go-fieldsync/pkg/page"
	gotemplate "github.com/goliatone/go-fieldsync/pkg/render/template/gotemplate"
)

func TestRegistryDescriptorClone(t *testing.T) {
	reg := New()
	renderer := func(buf *bytes.Buffer, widget page.Widget, data ComponentData) error { return nil }

	if err := reg.Register("Test", Descriptor{Renderer: renderer, Stylesheets: []string{"/a.css"}}); err != nil {
		t.Fatalf("register: %v", err)
	}

	desc, ok := reg.Descriptor("test")
	if !ok {
		t.Fatalf("descriptor not found")
	}
	desc.Stylesheets = append(desc.Stylesheets, "/mutated.css")

	original, _ := reg.Descriptor("test")
	if diff := cmp.Diff([]string{"/a.css"}, original.Stylesheets); diff != "" {
		t.Fatalf("registry descriptor mutated (-want +got):\n%s", diff)
	}
}

func TestRegistryRejectsInvalidDescriptors(t *testing.T) {
	reg := New()
	if err := reg.Register(" ", Descriptor{Renderer: chipsRenderer}); err == nil {
		t.Fatalf("expected error for blank name")
	}
	if err := reg.Register("chips", Descriptor{}); err == nil {
		t.Fatalf("expected error for nil renderer")
	}
}

func TestRegistryStylesheetsDeduplicates(t *testing.T) {
	reg := New()
	renderer := func(buf *bytes.Buffer, widget page.Widget, data ComponentData) error { return nil }
	reg.MustRegister("a", Descriptor{Renderer: renderer, Stylesheets: []string{"/shared.css", "/a.css"}})
	reg.MustRegister("b", Descriptor{Renderer: renderer, Stylesheets: []string{"/shared.css", "/b.css"}})

	got := reg.Stylesheets([]string{"a", "b", "missing"})
	if diff := cmp.Diff([]string{"/shared.css", "/a.css", "/b.css"}, got); diff != "" {
		t.Fatalf("stylesheets mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultRegistryNames(t *testing.T) {
	want := []string{NameAutofill, NameChips, NameExtraFields}
	if diff := cmp.Diff(want, NewDefaultRegistry().Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultRowTemplateSatisfiesManagerContract(t *testing.T) {
	engine, err := gotemplate.New()
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	out, err := engine.RenderString(DefaultRowTemplate, map[string]any{
		"row":          map[string]any{"id": "r1", "value": `a "quoted" value`},
		"options":      []map[string]any{{"value": "x", "label": "X", "disabled": true}},
		"select_id":    "r1-extra-select",
		"input_id":     "r1-extra-input",
		"remove_id":    "r1-remove-extra",
		"input_name":   extrafields.PlaceholderInputName,
		"select_class": extrafields.DefaultSelectClass,
		"input_class":  extrafields.DefaultInputClass,
		"remove_class": extrafields.DefaultRemoveClass,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if err := extrafields.CheckTemplate(out, extrafields.DefaultSelectClass, extrafields.DefaultInputClass, extrafields.DefaultRemoveClass); err != nil {
		t.Fatalf("rendered row does not satisfy the row contract: %v\n%s", err, out)
	}
	for _, want := range []string{`<option value="x" disabled>X</option>`, `value="a &quot;quoted&quot; value"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
}

func TestTextStripsMarkup(t *testing.T) {
	if got := Text(`<b>Bold</b> & <script>x()</script>`); got != "Bold &amp; " {
		t.Fatalf("unexpected text %q", got)
	}
	if got := Attr(`a"b`); got != "a&#34;b" {
		t.Fatalf("unexpected attr %q", got)
	}
}
