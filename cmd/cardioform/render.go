package main

import (
	"fmt"
	"net/url"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-cardioform/pkg/orchestrator"
	"github.com/goliatone/go-cardioform/pkg/render"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		output   string
		renderer string
		preset   string
		values   map[string]string
		review   bool
		csrf     string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the form as a static HTML page",
		Long: `Render the intake form to stdout or a file. With --review the --value pairs
are evaluated as a submission and the result section is included.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var extra []orchestrator.Option
			if preset != "" {
				data, err := os.ReadFile(preset)
				if err != nil {
					return fmt.Errorf("render: read preset: %w", err)
				}
				transformer, err := orchestrator.NewJSONPresetTransformer(data)
				if err != nil {
					return err
				}
				extra = append(extra, orchestrator.WithPageTransformer(transformer))
			}

			gen, err := a.orchestrator(extra...)
			if err != nil {
				return err
			}

			req := orchestrator.Request{
				Renderer: renderer,
				Values:   make(url.Values, len(values)),
				Review:   review,
			}
			for name, value := range values {
				req.Values.Set(name, value)
			}
			if csrf != "" {
				req.RenderOptions.HiddenFields = render.MergeHiddenFields(nil, render.CSRFToken("_csrf", csrf))
			}

			out, err := gen.GeneratePage(commandContext(cmd), req)
			if err != nil {
				return err
			}
			if out.Rejected() {
				a.logger.Warn("submission has problems", zap.Int("problems", len(out.Submission.Problems)))
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(out.Body)
				return err
			}
			if err := os.WriteFile(output, out.Body, 0o644); err != nil {
				return fmt.Errorf("render: write output: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Form written to %s\n", output)
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (stdout if empty)")
	cmd.Flags().StringVar(&renderer, "renderer", "", "Renderer to use")
	cmd.Flags().StringVar(&preset, "preset", "", "JSON preset relabelling the page and its fields")
	cmd.Flags().StringToStringVar(&values, "value", nil, "Field value as name=value; repeatable")
	cmd.Flags().BoolVar(&review, "review", false, "Evaluate the values and include the result")
	cmd.Flags().StringVar(&csrf, "csrf-token", "", "Embed a hidden CSRF token")
	return cmd
}
