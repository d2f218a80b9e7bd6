package page

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/goliatone/go-fieldsync/internal/logging"
)

// Input is a static form input present in the page markup.
type Input struct {
	ID    string
	Name  string
	Value string
}

// Text is the content and colour cue of a status element.
type Text struct {
	Content string
	Color   string
}

// Widget is a component mounted on the page. Renderers and the submission
// projection discover mounted widgets through Widgets.
type Widget interface {
	WidgetName() string
}

// ChangeHandler receives the new value of the element that changed.
type ChangeHandler func(value string)

// ClickHandler runs when the element is activated.
type ClickHandler func()

// Option configures a Page.
type Option func(*Page)

// WithLogger sets the logger used for dispatch diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Page) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Page is the document the widgets treat as their element store.
type Page struct {
	mu sync.Mutex

	elements  map[string]struct{}
	inputs    []*Input
	inputByID map[string]*Input
	templates map[string]string
	texts     map[string]Text
	change    map[string]ChangeHandler
	click     map[string]ClickHandler
	widgets   []Widget

	logger *slog.Logger
}

// New constructs an empty page.
func New(opts ...Option) *Page {
	p := &Page{
		elements:  make(map[string]struct{}),
		inputByID: make(map[string]*Input),
		templates: make(map[string]string),
		texts:     make(map[string]Text),
		change:    make(map[string]ChangeHandler),
		click:     make(map[string]ClickHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	p.logger = logging.NewComponentLogger(p.logger, "page")
	return p
}

// Declare records element ids that exist in the page markup.
func (p *Page) Declare(ids ...string) {
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			p.elements[id] = struct{}{}
		}
	}
}

// HasElement reports whether an element with id exists on the page.
func (p *Page) HasElement(id string) bool {
	if p == nil {
		return false
	}
	_, ok := p.elements[strings.TrimSpace(id)]
	return ok
}

// MissingElements returns the ids, in argument order, that are not present.
func (p *Page) MissingElements(ids ...string) []string {
	var missing []string
	for _, id := range ids {
		if !p.HasElement(id) {
			missing = append(missing, id)
		}
	}
	return missing
}

// AddInput registers a static input. The id defaults to the name. Editing
// the input through Change updates its value.
func (p *Page) AddInput(in Input) error {
	in.Name = strings.TrimSpace(in.Name)
	in.ID = strings.TrimSpace(in.ID)
	if in.ID == "" {
		in.ID = in.Name
	}
	if in.ID == "" {
		return fmt.Errorf("page: input requires an id or name")
	}
	if _, exists := p.inputByID[in.ID]; exists {
		return fmt.Errorf("page: duplicate input id %q", in.ID)
	}

	stored := &in
	p.inputs = append(p.inputs, stored)
	p.inputByID[in.ID] = stored
	p.Declare(in.ID)
	p.change[in.ID] = func(value string) {
		stored.Value = value
	}
	return nil
}

// Input returns the first static input submitted under name.
func (p *Page) Input(name string) (Input, bool) {
	if in := p.inputByName(name); in != nil {
		return *in, true
	}
	return Input{}, false
}

// InputByID returns the static input with the given element id.
func (p *Page) InputByID(id string) (Input, bool) {
	in, ok := p.inputByID[strings.TrimSpace(id)]
	if !ok {
		return Input{}, false
	}
	return *in, true
}

// HasInput reports whether a static input is submitted under name.
func (p *Page) HasInput(name string) bool {
	return p.inputByName(name) != nil
}

// SetInput assigns value to the static input submitted under name.
func (p *Page) SetInput(name, value string) bool {
	in := p.inputByName(name)
	if in == nil {
		return false
	}
	in.Value = value
	return true
}

// Inputs returns the static inputs in declaration order.
func (p *Page) Inputs() []Input {
	out := make([]Input, 0, len(p.inputs))
	for _, in := range p.inputs {
		out = append(out, *in)
	}
	return out
}

func (p *Page) inputByName(name string) *Input {
	if p == nil {
		return nil
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	for _, in := range p.inputs {
		if in.Name == name {
			return in
		}
	}
	return nil
}

// AddTemplate registers template markup under an element id.
func (p *Page) AddTemplate(id, markup string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return
	}
	p.templates[id] = markup
	p.Declare(id)
}

// Template returns the markup registered for id.
func (p *Page) Template(id string) (string, bool) {
	markup, ok := p.templates[strings.TrimSpace(id)]
	return markup, ok
}

// SetText updates the content and colour of a declared element.
func (p *Page) SetText(id, content, color string) bool {
	if !p.HasElement(id) {
		return false
	}
	p.texts[strings.TrimSpace(id)] = Text{Content: content, Color: color}
	return true
}

// Text returns the last content assigned to id.
func (p *Page) Text(id string) (Text, bool) {
	text, ok := p.texts[strings.TrimSpace(id)]
	return text, ok
}

// OnChange registers the change handler for id, replacing any previous one.
func (p *Page) OnChange(id string, fn ChangeHandler) {
	if id = strings.TrimSpace(id); id == "" || fn == nil {
		return
	}
	p.change[id] = fn
}

// OnClick registers the click handler for id, replacing any previous one.
func (p *Page) OnClick(id string, fn ClickHandler) {
	if id = strings.TrimSpace(id); id == "" || fn == nil {
		return
	}
	p.click[id] = fn
}

// Off removes every handler registered for id.
func (p *Page) Off(id string) {
	id = strings.TrimSpace(id)
	delete(p.change, id)
	delete(p.click, id)
}

// Bound reports whether any handler is registered for id.
func (p *Page) Bound(id string) bool {
	id = strings.TrimSpace(id)
	_, changeOK := p.change[id]
	_, clickOK := p.click[id]
	return changeOK || clickOK
}

// Change dispatches a change event. It returns false when nothing listens on id.
func (p *Page) Change(id, value string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	fn, ok := p.change[strings.TrimSpace(id)]
	if !ok {
		p.logger.Debug("change without handler", slog.String("target", id))
		return false
	}
	fn(value)
	return true
}

// Click dispatches a click event. It returns false when nothing listens on id.
func (p *Page) Click(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	fn, ok := p.click[strings.TrimSpace(id)]
	if !ok {
		p.logger.Debug("click without handler", slog.String("target", id))
		return false
	}
	fn()
	return true
}

// Do runs fn under the event lock, as if it were a queued handler.
func (p *Page) Do(fn func()) {
	if fn == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fn()
}

// Mount records a widget for rendering and submission.
func (p *Page) Mount(w Widget) {
	if w == nil {
		return
	}
	p.widgets = append(p.widgets, w)
}

// Widgets returns the mounted widgets in mount order.
func (p *Page) Widgets() []Widget {
	return append([]Widget(nil), p.widgets...)
}
