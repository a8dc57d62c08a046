package main

import (
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-cardioform/internal/prompt"
	"github.com/goliatone/go-cardioform/pkg/classify"
	"github.com/goliatone/go-cardioform/pkg/form"
	"github.com/goliatone/go-cardioform/pkg/risk"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Fill in the form interactively and review the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := a.rules()
			if err != nil {
				return err
			}
			catalog, err := form.DefaultCatalog()
			if err != nil {
				return err
			}
			return runCheck(cmd, catalog, table, prompt.NewSurveyDriver(cmd.OutOrStdout()))
		},
	}
}

func runCheck(cmd *cobra.Command, catalog *form.Catalog, table *classify.Table, driver prompt.Driver) error {
	session, err := prompt.NewSession(catalog, table, driver)
	if err != nil {
		return err
	}

	answers, err := session.Run(commandContext(cmd))
	if errors.Is(err, prompt.ErrAborted) {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "aborted")
		return nil
	}
	if err != nil {
		return err
	}

	values := make(url.Values, len(answers))
	for name, value := range answers {
		values.Set(name, value)
	}
	sub := form.ParseSubmission(catalog, values)
	return writeReview(cmd.OutOrStdout(), catalog, table, sub)
}

func writeReview(w io.Writer, catalog *form.Catalog, table *classify.Table, sub form.Submission) error {
	if !sub.Valid() {
		for _, message := range sub.Messages(catalog) {
			if _, err := fmt.Fprintf(w, "! %s\n", message); err != nil {
				return err
			}
		}
		return errors.New("check: submission is incomplete")
	}

	if _, err := fmt.Fprintln(w, "\nField statuses"); err != nil {
		return err
	}
	for _, result := range catalog.Evaluate(table, sub.Raw) {
		if _, err := fmt.Fprintf(w, "  %-10s %-8s %s\n", result.Field, result.Raw, result.Status.String()); err != nil {
			return err
		}
	}

	factors := risk.Factors(sub.Numbers)
	if len(factors) == 0 {
		if _, err := fmt.Fprintln(w, "\nNo key risk factors."); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintln(w, "\nKey risk factors"); err != nil {
			return err
		}
		for _, factor := range factors {
			if _, err := fmt.Fprintf(w, "  %s: %s (%s)\n", factor.Name, factor.Value, factor.Impact); err != nil {
				return err
			}
		}
	}

	if _, err := fmt.Fprintln(w, "\nRecommendations"); err != nil {
		return err
	}
	for _, line := range risk.Recommendations(sub.Numbers) {
		if _, err := fmt.Fprintf(w, "  - %s\n", line); err != nil {
			return err
		}
	}
	return nil
}
