// Package snapshot renders a page as a JSON document of its inspectable
// state: static inputs, chip sets, extra rows with per-row availability,
// autofill status and the submission the page would send.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/goliatone/go-fieldsync/pkg/autofill"
	"github.com/goliatone/go-fieldsync/pkg/chips"
	"github.com/goliatone/go-fieldsync/pkg/extrafields"
	"github.com/goliatone/go-fieldsync/pkg/model"
	"github.com/goliatone/go-fieldsync/pkg/page"
	"github.com/goliatone/go-fieldsync/pkg/render"
)

// Document is the JSON shape produced by the renderer.
type Document struct {
	Inputs      []Input       `json:"inputs"`
	Chips       []ChipSet     `json:"chips,omitempty"`
	ExtraFields []RowSet      `json:"extra_fields,omitempty"`
	Autofill    *AutofillView `json:"autofill,omitempty"`
	Submission  url.Values    `json:"submission"`
}

type Input struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Value string `json:"value"`
}

type ChipSet struct {
	SelectID  string              `json:"select_id"`
	InputName string              `json:"input_name"`
	Chips     []model.Chip        `json:"chips"`
	Hidden    []model.HiddenValue `json:"hidden"`
	Available []model.Option      `json:"available"`
}

type RowSet struct {
	ContainerID string    `json:"container_id"`
	Rows        []RowView `json:"rows"`
}

type RowView struct {
	model.Row
	InputName string              `json:"input_name"`
	Options   []model.OptionState `json:"options"`
}

type AutofillView struct {
	InputID string `json:"input_id"`
	Status  string `json:"status,omitempty"`
	Color   string `json:"color,omitempty"`
}

// Renderer emits Document as indented JSON.
type Renderer struct {
	indent string
}

var _ render.Renderer = (*Renderer)(nil)

// New returns a snapshot renderer.
func New() *Renderer {
	return &Renderer{indent: "  "}
}

func (r *Renderer) Name() string { return "snapshot" }

func (r *Renderer) ContentType() string { return "application/json; charset=utf-8" }

// Render reads the page under its event lock, so it must not be called from
// inside a page event handler.
func (r *Renderer) Render(_ context.Context, p *page.Page, options render.RenderOptions) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("snapshot renderer: page is nil")
	}
	var doc Document
	p.Do(func() {
		doc = Capture(p, options.Hidden...)
	})
	out, err := json.MarshalIndent(doc, "", r.indent)
	if err != nil {
		return nil, fmt.Errorf("snapshot renderer: encode: %w", err)
	}
	return append(out, '\n'), nil
}

// Capture builds the Document for p without taking the event lock.
func Capture(p *page.Page, hidden ...render.HiddenField) Document {
	doc := Document{
		Inputs:     []Input{},
		Submission: render.Submission(p, hidden...),
	}
	for _, in := range p.Inputs() {
		doc.Inputs = append(doc.Inputs, Input{ID: in.ID, Name: in.Name, Value: in.Value})
	}
	for _, widget := range p.Widgets() {
		switch w := widget.(type) {
		case *chips.Selector:
			cfg := w.Config()
			doc.Chips = append(doc.Chips, ChipSet{
				SelectID:  cfg.SelectID,
				InputName: cfg.InputName,
				Chips:     nonNil(w.Chips()),
				Hidden:    nonNil(w.HiddenValues()),
				Available: nonNil(w.Available()),
			})
		case *extrafields.Manager:
			set := RowSet{ContainerID: w.Config().ContainerID, Rows: []RowView{}}
			for _, row := range w.Rows() {
				set.Rows = append(set.Rows, RowView{
					Row:       row,
					InputName: w.InputName(row),
					Options:   w.Availability(row.ID),
				})
			}
			doc.ExtraFields = append(doc.ExtraFields, set)
		case *autofill.Bridge:
			status := w.Status()
			doc.Autofill = &AutofillView{
				InputID: w.Options().InputID,
				Status:  status.Content,
				Color:   status.Color,
			}
		}
	}
	return doc
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
