package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-fieldsync"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Show inputs, chips, extra rows and submitted values as tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := ctx.ensureForm(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return writeInspection(cmd.OutOrStdout(), form)
		},
	}
}

func writeInspection(w io.Writer, form *fieldsync.Form) error {
	var sections []string

	inputs := form.Page.Inputs()
	inputRows := make([][]string, 0, len(inputs))
	for _, in := range inputs {
		inputRows = append(inputRows, []string{in.ID, in.Name, in.Value})
	}
	sections = append(sections, renderTable("Inputs", []string{"ID", "Name", "Value"}, inputRows))

	for _, selector := range form.Chips {
		cfg := selector.Config()
		var rows [][]string
		for _, chip := range selector.Chips() {
			rows = append(rows, []string{"chip", chip.Value, chip.Label})
		}
		for _, opt := range selector.Available() {
			rows = append(rows, []string{"available", opt.Value, opt.DisplayLabel()})
		}
		title := fmt.Sprintf("Chips %s (%s)", cfg.SelectID, cfg.InputName)
		sections = append(sections, renderTable(title, []string{"State", "Value", "Label"}, rows))
	}

	if form.Fields != nil {
		var rows [][]string
		for _, row := range form.Fields.Rows() {
			var disabled []string
			for _, state := range form.Fields.Availability(row.ID) {
				if state.Disabled {
					disabled = append(disabled, state.Value)
				}
			}
			rows = append(rows, []string{
				string(row.ID),
				row.FieldName,
				form.Fields.InputName(row),
				row.Value,
				strings.Join(disabled, ", "),
			})
		}
		title := "Extra fields " + form.Fields.Config().ContainerID
		sections = append(sections, renderTable(title, []string{"Row", "Field", "Input name", "Value", "Disabled"}, rows))
	}

	if form.Autofill != nil {
		status := form.Autofill.Status()
		opts := form.Autofill.Options()
		sections = append(sections, renderTable("Autofill", []string{"Endpoint", "Status", "Color"}, [][]string{
			{opts.Endpoint, status.Content, status.Color},
		}))
	}

	if err := form.Validate(); err != nil {
		sections = append(sections, "invariant violation: "+err.Error())
	}
	_, err := fmt.Fprintln(w, strings.Join(sections, "\n\n"))
	return err
}
