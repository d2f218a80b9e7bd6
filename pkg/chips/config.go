package chips

import (
	"strings"

	"github.com/goliatone/go-fieldsync/pkg/model"
)

// WidgetName identifies chip selectors among mounted page widgets.
const WidgetName = "chips"

// Config names the page elements a Selector binds to and the source catalog.
type Config struct {
	// SelectID is the source selection control.
	SelectID string `json:"select_id" yaml:"select_id" toml:"select_id"`
	// ContainerID holds the rendered chips.
	ContainerID string `json:"container_id" yaml:"container_id" toml:"container_id"`
	// HiddenInputsID holds the hidden inputs mirroring the chips.
	HiddenInputsID string `json:"hidden_inputs_id" yaml:"hidden_inputs_id" toml:"hidden_inputs_id"`
	// InputName is the form name of every hidden input.
	InputName string `json:"input_name" yaml:"input_name" toml:"input_name"`
	// RemoveClass marks a chip's remove control.
	RemoveClass string `json:"remove_class" yaml:"remove_class" toml:"remove_class"`
	// Options is the source catalog, in display order.
	Options []model.Option `json:"options" yaml:"options" toml:"options"`
	// Selected lists values to promote into chips on mount.
	Selected []string `json:"selected,omitempty" yaml:"selected,omitempty" toml:"selected,omitempty"`
}

func normalizeConfig(cfg Config) Config {
	cfg.SelectID = strings.TrimSpace(cfg.SelectID)
	cfg.ContainerID = strings.TrimSpace(cfg.ContainerID)
	cfg.HiddenInputsID = strings.TrimSpace(cfg.HiddenInputsID)
	cfg.InputName = strings.TrimSpace(cfg.InputName)
	cfg.RemoveClass = strings.TrimSpace(cfg.RemoveClass)
	if cfg.RemoveClass == "" {
		cfg.RemoveClass = "chip-remove"
	}
	return cfg
}
