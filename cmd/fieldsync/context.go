package main

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/goliatone/go-fieldsync"
	"github.com/goliatone/go-fieldsync/internal/logging"
	"github.com/goliatone/go-fieldsync/pkg/config"
)

type globalFlags struct {
	config    string
	logLevel  string
	logFormat string
}

type commandContext struct {
	flags *globalFlags

	formOnce sync.Once
	form     *fieldsync.Form
	formErr  error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

// logger builds the operator logger from the page document's logging
// section, overridden by the command line flags.
func (c *commandContext) logger(stderr io.Writer, cfg config.Logging) (*slog.Logger, error) {
	level := cfg.Level
	if v := strings.TrimSpace(c.flags.logLevel); v != "" {
		level = v
	}
	format := cfg.Format
	if v := strings.TrimSpace(c.flags.logFormat); v != "" {
		format = v
	}
	return logging.New(logging.Options{Level: level, Format: format, Output: stderr})
}

func (c *commandContext) ensureForm(stderr io.Writer, options ...fieldsync.Option) (*fieldsync.Form, error) {
	c.formOnce.Do(func() {
		path := strings.TrimSpace(c.flags.config)
		if path == "" {
			c.formErr = errors.New("a page document is required (--config)")
			return
		}
		cfg, err := config.Load(path)
		if err != nil {
			c.formErr = err
			return
		}
		logger, err := c.logger(stderr, cfg.Logging)
		if err != nil {
			c.formErr = err
			return
		}
		c.form, c.formErr = fieldsync.Build(cfg, append([]fieldsync.Option{fieldsync.WithLogger(logger)}, options...)...)
	})
	return c.form, c.formErr
}
