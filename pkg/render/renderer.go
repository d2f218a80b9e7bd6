package render

import (
	"context"

	"github.com/goliatone/go-fieldsync/pkg/page"
)

// Renderer projects the current state of a page into a byte representation
// (HTML markup, JSON snapshots, ...). Renderers never mutate the page.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, p *page.Page, options RenderOptions) ([]byte, error)
}
