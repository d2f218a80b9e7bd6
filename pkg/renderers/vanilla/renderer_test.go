package vanilla

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-fieldsync/pkg/autofill"
	"github.com/goliatone/go-fieldsync/pkg/chips"
	"github.com/goliatone/go-fieldsync/pkg/extrafields"
	"github.com/goliatone/go-fieldsync/pkg/model"
	"github.com/goliatone/go-fieldsync/pkg/page"
	"github.com/goliatone/go-fieldsync/pkg/render"
	"github.com/goliatone/go-fieldsync/pkg/renderers/vanilla/components"
)

const rowTemplate = `<div><select class="extra-select"></select><input class="extra-input"><button class="remove-extra">x</button></div>`

func buildPage(t *testing.T) (*page.Page, *chips.Selector, *extrafields.Manager) {
	t.Helper()
	p := page.New()
	p.Declare("tag_select", "tag_chips", "tag_hidden",
		extrafields.DefaultContainerID, extrafields.DefaultAddButtonID,
		autofill.DefaultButtonID, autofill.DefaultStatusID)
	p.AddTemplate(extrafields.DefaultTemplateID, rowTemplate)
	if err := p.AddInput(page.Input{Name: "title", Value: `Tom & "Jerry"`}); err != nil {
		t.Fatalf("add input: %v", err)
	}
	if err := p.AddInput(page.Input{ID: autofill.DefaultInputID, Name: "doi"}); err != nil {
		t.Fatalf("add input: %v", err)
	}

	selector := chips.New(p, chips.Config{
		SelectID:       "tag_select",
		ContainerID:    "tag_chips",
		HiddenInputsID: "tag_hidden",
		InputName:      "tags",
		Options:        []model.Option{{Value: "A", Label: "<b>Alpha</b>"}, {Value: "B"}, {Value: "C"}},
	})
	n := 0
	manager := extrafields.New(p, extrafields.Config{
		Options: []model.Option{{Value: "x"}, {Value: "y"}},
	}, extrafields.WithIDGenerator(func() string {
		n++
		return "row-" + string(rune('0'+n))
	}))
	autofill.New(p, manager)
	return p, selector, manager
}

func TestRendererProjectsWidgetState(t *testing.T) {
	p, _, manager := buildPage(t)
	p.Change("tag_select", "A")
	p.Change("tag_select", "B")
	p.Click(extrafields.DefaultAddButtonID)
	p.Change(manager.SelectHandle("row-1"), "x")
	p.Change(manager.InputHandle("row-1"), "kept")
	p.Click(extrafields.DefaultAddButtonID)
	p.SetText(autofill.DefaultStatusID, autofill.MessageLoaded, autofill.ToneSuccess.Color())

	renderer, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render(context.Background(), p, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	for _, want := range []string{
		`<input type="text" id="title" name="title" value="Tom &amp; &#34;Jerry&#34;">`,
		`<div class="chip" data-value="A">Alpha <span class="chip-remove" id="tag_chips-chip-remove-A" data-value="A">&times;</span></div>`,
		`<input type="hidden" name="tags" value="A">`,
		`<input type="hidden" name="tags" value="B">`,
		`<option value="C">C</option>`,
		`<option value="x" selected>x</option>`,
		`<option value="x" disabled>x</option>`,
		`name="x" value="kept"`,
		`name="additional_field_value" value=""`,
		`<div><select class="extra-select" id="row-1-extra-select"><option value="">Select field</option><option value="x" selected>x</option><option value="y">y</option></select>` +
			`<input class="extra-input" id="row-1-extra-input" name="x" value="kept"><button class="remove-extra" id="row-1-remove-extra">x</button></div>`,
		`<div id="doi_status" style="color: #48bb78">DOI data loaded successfully!</div>`,
		`<template id="extra_row_template">` + rowTemplate + `</template>`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
	if strings.Contains(html, `<option value="A">`) {
		t.Fatalf("consumed option still offered:\n%s", html)
	}
	if strings.Contains(html, "<b>") {
		t.Fatalf("label markup must be stripped:\n%s", html)
	}
	if strings.Contains(html, "<form") {
		t.Fatalf("fragment render must not emit a form element")
	}
}

func TestRendererWrapsFormWithHiddenFields(t *testing.T) {
	p, _, _ := buildPage(t)
	renderer, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render(context.Background(), p, render.RenderOptions{
		Action: "/records",
		Hidden: []render.HiddenField{render.CSRFToken("_csrf", "tok"), {Name: " "}},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	if !strings.HasPrefix(html, `<form action="/records" method="post">`) || !strings.HasSuffix(html, "</form>\n") {
		t.Fatalf("expected form wrapper:\n%s", html)
	}
	if !strings.Contains(html, `<input type="hidden" name="_csrf" value="tok">`) {
		t.Fatalf("missing csrf field:\n%s", html)
	}
	if strings.Count(html, `type="hidden" name=""`) != 0 {
		t.Fatalf("blank hidden field rendered:\n%s", html)
	}
}

func TestRendererUnknownComponent(t *testing.T) {
	p, _, _ := buildPage(t)
	registry := components.NewDefaultRegistry()
	empty := components.New()
	empty.MustRegister(components.NameChips, descriptorFor(t, registry, components.NameChips))

	renderer, err := New(WithComponentRegistry(empty))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	_, err = renderer.Render(context.Background(), p, render.RenderOptions{})
	if err == nil || !strings.Contains(err.Error(), `component "extra-fields" not registered`) {
		t.Fatalf("expected unregistered component error, got %v", err)
	}
}

func TestRendererCustomComponentAndRowTemplate(t *testing.T) {
	p, _, _ := buildPage(t)
	p.Click(extrafields.DefaultAddButtonID)

	registry := components.NewDefaultRegistry()
	registry.MustRegister(components.NameChips, components.Descriptor{
		Renderer: func(buf *bytes.Buffer, widget page.Widget, data components.ComponentData) error {
			buf.WriteString("<chips/>\n")
			return nil
		},
		Stylesheets: []string{"/chips.css"},
	})
	renderer, err := New(
		WithComponentRegistry(registry),
		WithRowTemplate(`<row id="{{ row.id }}" name="{{ input_name }}"/>`),
	)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render(context.Background(), p, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	for _, want := range []string{
		`<link rel="stylesheet" href="/chips.css">`,
		"<chips/>",
		`<row id="row-1" name="additional_field_value"/>`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
}

func TestRendererKeepsOwnComponentRegistry(t *testing.T) {
	p, _, _ := buildPage(t)
	registry := components.NewDefaultRegistry()
	renderer, err := New(WithComponentRegistry(registry))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	registry.MustRegister(components.NameChips, components.Descriptor{
		Renderer: func(buf *bytes.Buffer, widget page.Widget, data components.ComponentData) error {
			buf.WriteString("<replaced/>")
			return nil
		},
	})

	out, err := renderer.Render(context.Background(), p, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(out), "<replaced/>") {
		t.Fatalf("registry changes after construction must not reach the renderer:\n%s", out)
	}
	if !strings.Contains(string(out), `<select id="tag_select">`) {
		t.Fatalf("expected default chips markup:\n%s", out)
	}
}

func TestRendererUsesPageRowTemplate(t *testing.T) {
	p := page.New()
	p.Declare(extrafields.DefaultContainerID, extrafields.DefaultAddButtonID)
	p.AddTemplate(extrafields.DefaultTemplateID,
		`<li class="my-row" data-row="{{ row.id }}"><select class="extra-select"><option>stale</option></select>`+
			`<input class="extra-input"/><a class="remove-extra">remove</a></li>`)
	n := 0
	manager := extrafields.New(p, extrafields.Config{
		Options:        []model.Option{{Value: "x", Label: "Ex"}},
		Existing:       map[string]string{"x": `a "quoted" value`},
		AutoAddIfEmpty: true,
	}, extrafields.WithIDGenerator(func() string {
		n++
		return "row-" + string(rune('0'+n))
	}))
	p.Click(extrafields.DefaultAddButtonID)
	if len(manager.Rows()) != 2 {
		t.Fatalf("expected two rows, got %#v", manager.Rows())
	}

	renderer, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render(context.Background(), p, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	if got := strings.Count(html, `class="my-row"`); got != 3 {
		t.Fatalf("expected the page template once per row plus the template element, got %d:\n%s", got, html)
	}
	if strings.Contains(html, `class="extra-row"`) {
		t.Fatalf("built-in row template must not be used:\n%s", html)
	}
	for _, want := range []string{
		`<li class="my-row" data-row="row-1"><select class="extra-select" id="row-1-extra-select"><option value="">Select field</option><option value="x" selected>Ex</option></select>` +
			`<input class="extra-input" id="row-1-extra-input" name="x" value="a &#34;quoted&#34; value"/><a class="remove-extra" id="row-1-remove-extra">remove</a></li>`,
		`<option value="x" disabled>Ex</option>`,
		`name="additional_field_value" value=""/>`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
	if got := strings.Count(html, "stale"); got != 1 {
		t.Fatalf("template options must be replaced in rows, found %d:\n%s", got, html)
	}
}

func descriptorFor(t *testing.T, registry *components.Registry, name string) components.Descriptor {
	t.Helper()
	descriptor, ok := registry.Descriptor(name)
	if !ok {
		t.Fatalf("descriptor %q not registered", name)
	}
	return descriptor
}
