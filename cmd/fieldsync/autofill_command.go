package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-fieldsync"
	"github.com/goliatone/go-fieldsync/pkg/autofill"
	"github.com/goliatone/go-fieldsync/pkg/tui"
)

func newAutofillCommand(ctx *commandContext) *cobra.Command {
	var (
		endpoint string
		timeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "autofill <identifier>",
		Short: "Run the metadata lookup for an identifier and print the resulting submission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var options []fieldsync.Option
			if endpoint != "" {
				lookup := autofill.NewHTTPLookup(autofill.NewOptions(
					autofill.WithEndpoint(endpoint),
					autofill.WithTimeout(timeout),
				))
				options = append(options, fieldsync.WithLookup(lookup))
			}
			form, err := ctx.ensureForm(cmd.ErrOrStderr(), options...)
			if err != nil {
				return err
			}
			if form.Autofill == nil {
				return errors.New("the page has no enabled autofill bridge")
			}

			form.Page.Change(form.Autofill.Options().InputID, args[0])
			fetchErr := form.Autofill.Fetch(cmd.Context())
			status := form.Autofill.Status()
			fmt.Fprintln(cmd.ErrOrStderr(), status.Content)

			var lookupErr *autofill.LookupError
			if fetchErr != nil && (errors.Is(fetchErr, autofill.ErrEmptyIdentifier) || errors.As(fetchErr, &lookupErr)) {
				return fetchErr
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), tui.FormatSubmission(form.Submission()))
			if err != nil {
				return err
			}
			return fetchErr
		},
	}

	cmd.Flags().StringVar(&endpoint, "endpoint", "", "Lookup endpoint URL (overrides the page document)")
	cmd.Flags().DurationVar(&timeout, "timeout", autofill.DefaultTimeout, "Lookup timeout when --endpoint is set")
	return cmd
}
