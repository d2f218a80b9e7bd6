package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-fieldsync"
	"github.com/goliatone/go-fieldsync/pkg/render"
)

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var (
		rendererName string
		action       string
		method       string
		csrfName     string
		csrfToken    string
		output       string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the page through a renderer (vanilla HTML or JSON snapshot)",
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := ctx.ensureForm(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			options := fieldsync.RenderOptions{Action: action, Method: method}
			if strings.TrimSpace(csrfToken) != "" {
				options.Hidden = append(options.Hidden, render.CSRFToken(csrfName, csrfToken))
			}
			out, err := form.Render(cmd.Context(), rendererName, options)
			if err != nil {
				return err
			}
			if output != "" {
				if err := os.WriteFile(output, out, 0o644); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Page written to %s\n", output)
				return nil
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVarP(&rendererName, "renderer", "r", "", "Renderer name (vanilla, snapshot)")
	cmd.Flags().StringVar(&action, "action", "", "Wrap the output in a <form> posting to this URL")
	cmd.Flags().StringVar(&method, "method", "", "Form method when --action is set (default post)")
	cmd.Flags().StringVar(&csrfName, "csrf-name", "_csrf", "Hidden CSRF input name")
	cmd.Flags().StringVar(&csrfToken, "csrf-token", "", "Hidden CSRF token value")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (stdout if empty)")
	return cmd
}
