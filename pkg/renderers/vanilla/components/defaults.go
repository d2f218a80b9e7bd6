package components

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goliatone/go-fieldsync/pkg/autofill"
	"github.com/goliatone/go-fieldsync/pkg/chips"
	"github.com/goliatone/go-fieldsync/pkg/extrafields"
	"github.com/goliatone/go-fieldsync/pkg/page"
)

// DefaultRowTemplate renders one extra-field row when the page template is
// blank. It carries exactly one name selector, one value input and one
// remove control, marked with the manager's classes.
const DefaultRowTemplate = `<div class="extra-row" data-row="{{ row.id }}">
  <select class="{{ select_class }}" id="{{ select_id }}">
    <option value="">Select field</option>
{% for opt in options %}    <option value="{{ opt.value }}"{% if opt.selected %} selected{% endif %}{% if opt.disabled %} disabled{% endif %}>{{ opt.label }}</option>
{% endfor %}  </select>
  <input type="text" class="{{ input_class }}" id="{{ input_id }}" name="{{ input_name }}" value="{{ row.value }}">
  <button type="button" class="{{ remove_class }}" id="{{ remove_id }}">Remove</button>
</div>
`

// NewDefaultRegistry constructs a registry with the built-in widget renderers.
func NewDefaultRegistry() *Registry {
	registry := New()
	registry.MustRegister(NameChips, Descriptor{Renderer: chipsRenderer})
	registry.MustRegister(NameExtraFields, Descriptor{Renderer: extraFieldsRenderer})
	registry.MustRegister(NameAutofill, Descriptor{Renderer: autofillRenderer})
	return registry
}

func chipsRenderer(buf *bytes.Buffer, widget page.Widget, _ ComponentData) error {
	selector, ok := widget.(*chips.Selector)
	if !ok {
		return fmt.Errorf("components: chips renderer got %T", widget)
	}
	cfg := selector.Config()

	fmt.Fprintf(buf, `<div class="chip-selector" data-widget="%s">`+"\n", NameChips)
	fmt.Fprintf(buf, `  <select id="%s">`+"\n", Attr(cfg.SelectID))
	buf.WriteString(`    <option value="">Select...</option>` + "\n")
	for _, opt := range selector.Available() {
		fmt.Fprintf(buf, `    <option value="%s">%s</option>`+"\n", Attr(opt.Value), Text(opt.DisplayLabel()))
	}
	buf.WriteString("  </select>\n")

	fmt.Fprintf(buf, `  <div id="%s" class="chips">`+"\n", Attr(cfg.ContainerID))
	for _, chip := range selector.Chips() {
		label := chip.Label
		if strings.TrimSpace(label) == "" {
			label = chip.Value
		}
		fmt.Fprintf(buf,
			`    <div class="chip" data-value="%s">%s <span class="%s" id="%s" data-value="%s">&times;</span></div>`+"\n",
			Attr(chip.Value), Text(label), Attr(cfg.RemoveClass), Attr(selector.RemoveHandle(chip.Value)), Attr(chip.Value),
		)
	}
	buf.WriteString("  </div>\n")

	fmt.Fprintf(buf, `  <div id="%s">`+"\n", Attr(cfg.HiddenInputsID))
	for _, hidden := range selector.HiddenValues() {
		fmt.Fprintf(buf, `    <input type="hidden" name="%s" value="%s">`+"\n", Attr(hidden.Name), Attr(hidden.Value))
	}
	buf.WriteString("  </div>\n</div>\n")
	return nil
}

func extraFieldsRenderer(buf *bytes.Buffer, widget page.Widget, data ComponentData) error {
	manager, ok := widget.(*extrafields.Manager)
	if !ok {
		return fmt.Errorf("components: extra-fields renderer got %T", widget)
	}
	if data.Template == nil {
		return fmt.Errorf("components: template renderer not configured for %q", NameExtraFields)
	}
	cfg := manager.Config()
	// An explicit row template wins, then the page's own template, which is
	// bound to each row after expansion. DefaultRowTemplate binds itself.
	source, bind := data.RowTemplate, false
	if strings.TrimSpace(source) == "" {
		source = manager.Template()
		bind = strings.TrimSpace(source) != ""
	}
	if strings.TrimSpace(source) == "" {
		source = DefaultRowTemplate
	}

	fmt.Fprintf(buf, `<div class="extra-fields" data-widget="%s">`+"\n", NameExtraFields)
	fmt.Fprintf(buf, `  <div id="%s">`+"\n", Attr(cfg.ContainerID))
	for _, row := range manager.Rows() {
		states := manager.Availability(row.ID)
		options := make([]map[string]any, 0, len(states))
		for _, state := range states {
			options = append(options, map[string]any{
				"value":    state.Value,
				"label":    PlainText(state.DisplayLabel()),
				"disabled": state.Disabled,
				"selected": state.Selected,
			})
		}
		payload := map[string]any{
			"row": map[string]any{
				"id":         string(row.ID),
				"field_name": row.FieldName,
				"value":      row.Value,
			},
			"options":      options,
			"select_id":    manager.SelectHandle(row.ID),
			"input_id":     manager.InputHandle(row.ID),
			"remove_id":    manager.RemoveHandle(row.ID),
			"input_name":   manager.InputName(row),
			"select_class": cfg.SelectClass,
			"input_class":  cfg.InputClass,
			"remove_class": cfg.RemoveClass,
		}
		if !bind {
			if _, err := data.Template.RenderString(source, payload, buf); err != nil {
				return fmt.Errorf("components: render row %q: %w", row.ID, err)
			}
			continue
		}
		expanded, err := data.Template.RenderString(source, payload)
		if err != nil {
			return fmt.Errorf("components: render row %q: %w", row.ID, err)
		}
		if err := BindRow(buf, strings.TrimSpace(expanded), RowBinding{
			SelectClass: cfg.SelectClass,
			InputClass:  cfg.InputClass,
			RemoveClass: cfg.RemoveClass,
			SelectID:    manager.SelectHandle(row.ID),
			InputID:     manager.InputHandle(row.ID),
			RemoveID:    manager.RemoveHandle(row.ID),
			InputName:   manager.InputName(row),
			Value:       row.Value,
			Options:     states,
		}); err != nil {
			return err
		}
		buf.WriteString("\n")
	}
	buf.WriteString("  </div>\n")

	if markup := manager.Template(); markup != "" {
		fmt.Fprintf(buf, `  <template id="%s">%s</template>`+"\n", Attr(cfg.TemplateID), markup)
	}
	fmt.Fprintf(buf, `  <button type="button" id="%s">Add field</button>`+"\n", Attr(cfg.AddButtonID))
	buf.WriteString("</div>\n")
	return nil
}

func autofillRenderer(buf *bytes.Buffer, widget page.Widget, _ ComponentData) error {
	bridge, ok := widget.(*autofill.Bridge)
	if !ok {
		return fmt.Errorf("components: autofill renderer got %T", widget)
	}
	opts := bridge.Options()
	status := bridge.Status()

	fmt.Fprintf(buf, `<div class="autofill" data-widget="%s">`+"\n", NameAutofill)
	fmt.Fprintf(buf, `  <button type="button" id="%s">Fetch</button>`+"\n", Attr(opts.ButtonID))
	style := ""
	if status.Color != "" {
		style = fmt.Sprintf(` style="color: %s"`, Attr(status.Color))
	}
	fmt.Fprintf(buf, `  <div id="%s"%s>%s</div>`+"\n", Attr(opts.StatusID), style, Text(status.Content))
	buf.WriteString("</div>\n")
	return nil
}
