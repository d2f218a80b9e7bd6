package components

import (
	"github.com/goliatone/go-fieldsync/pkg/autofill"
	"github.com/goliatone/go-fieldsync/pkg/chips"
	"github.com/goliatone/go-fieldsync/pkg/extrafields"
)

// Canonical component names, one per widget kind.
const (
	NameChips       = chips.WidgetName
	NameExtraFields = extrafields.WidgetName
	NameAutofill    = autofill.WidgetName
)
