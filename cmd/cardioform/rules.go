package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-cardioform/pkg/classify"
)

func newRulesCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the active classification rules",
		Long:  `Print the active rule table in the same document shape rule override files use.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := a.rules()
			if err != nil {
				return err
			}
			doc := struct {
				Rules []classify.Rule `json:"rules" yaml:"rules"`
			}{Rules: table.Rules()}

			var out []byte
			switch format {
			case "yaml", "yml":
				out, err = yaml.Marshal(doc)
			case "json":
				out, err = json.MarshalIndent(doc, "", "  ")
				out = append(out, '\n')
			default:
				return fmt.Errorf("rules: unknown format %q", format)
			}
			if err != nil {
				return fmt.Errorf("rules: encode: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format: yaml or json")
	return cmd
}
