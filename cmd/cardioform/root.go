package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-cardioform/internal/config"
	"github.com/goliatone/go-cardioform/internal/logging"
	"github.com/goliatone/go-cardioform/pkg/classify"
	"github.com/goliatone/go-cardioform/pkg/orchestrator"
	"github.com/goliatone/go-cardioform/pkg/render"
	"github.com/goliatone/go-cardioform/pkg/renderers/vanilla"
)

// app carries the state resolved by the root command for its subcommands.
type app struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "cardioform",
		Short:        "Heart disease intake form with live field classification",
		Long:         `cardioform renders the intake form, classifies clinical values against normal ranges and serves both over HTTP.`,
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.load()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", os.Getenv("CARDIOFORM_CONFIG"), "Path to a YAML config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newServeCmd(a),
		newClassifyCmd(a),
		newCheckCmd(a),
		newRulesCmd(a),
		newRenderCmd(a),
	)
	return root
}

func (a *app) load() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log.Level, a.verbose, cfg.Log.Development)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) rules() (*classify.Table, error) {
	table, err := classify.LoadFile(a.cfg.Rules.Path)
	if err != nil {
		return nil, err
	}
	if a.cfg.Rules.Path != "" {
		a.logger.Debug("loaded rule overrides", zap.String("path", a.cfg.Rules.Path), zap.Strings("fields", table.Names()))
	}
	return table, nil
}

// orchestrator wires the configured rules, theme and asset prefix.
func (a *app) orchestrator(extra ...orchestrator.Option) (*orchestrator.Orchestrator, error) {
	table, err := a.rules()
	if err != nil {
		return nil, err
	}
	selector, err := render.NewManifestSelector(render.DefaultThemeManifest())
	if err != nil {
		return nil, err
	}

	options := []orchestrator.Option{
		orchestrator.WithRules(table),
		orchestrator.WithThemeSelector(selector, a.cfg.Theme.Name, a.cfg.Theme.Variant),
		orchestrator.WithRendererOptions(vanilla.WithAssetPrefix(a.cfg.Server.AssetPrefix)),
	}
	gen := orchestrator.New(append(options, extra...)...)
	if err := gen.Err(); err != nil {
		return nil, err
	}
	return gen, nil
}

// commandContext returns the command's context, or Background when the
// command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
