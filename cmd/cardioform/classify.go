package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-cardioform/pkg/classify"
	"github.com/goliatone/go-cardioform/pkg/form"
)

func newClassifyCmd(a *app) *cobra.Command {
	var (
		min, max string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "classify <field> <value>",
		Short: "Classify one value as valid, warning or invalid",
		Long: `Classify one raw value. Known form fields use their catalog bounds unless
--min or --max is given. An empty or non-numeric value is reported as unset.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := a.rules()
			if err != nil {
				return err
			}
			catalog, err := form.DefaultCatalog()
			if err != nil {
				return err
			}

			field := form.Field{Name: args[0], Kind: form.KindNumber}
			if known, err := catalog.Field(args[0]); err == nil {
				field = known
			}
			if cmd.Flags().Changed("min") || cmd.Flags().Changed("max") {
				bounds := classify.ParseBounds(min, max)
				field.Min, field.Max = bounds.Min, bounds.Max
			}

			result := form.EvaluateField(table, field, args[1])
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				return enc.Encode(map[string]string{
					"field":  result.Field,
					"status": result.Status.String(),
				})
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), result.Status.String())
			return err
		},
	}
	cmd.Flags().StringVar(&min, "min", "", "Hard minimum; empty leaves the lower end open")
	cmd.Flags().StringVar(&max, "max", "", "Hard maximum; empty leaves the upper end open")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}
