package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-fieldsync/pkg/tui"
)

func newSessionCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Edit the page interactively and print the submitted values",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !stdinIsTerminal() {
				return errors.New("session requires an interactive terminal on stdin")
			}
			form, err := ctx.ensureForm(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			session, err := tui.NewSession(form.Page, tui.WithPromptDriver(tui.NewSurveyDriver(cmd.OutOrStdout())))
			if err != nil {
				return err
			}
			values, err := session.Run(cmd.Context())
			if errors.Is(err, tui.ErrAborted) {
				fmt.Fprintln(cmd.ErrOrStderr(), "aborted")
				return nil
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), tui.FormatSubmission(values))
			return err
		},
	}
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
