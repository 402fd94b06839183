// Package cli implements medalctl, a command-line host for the dashboard.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	service "github.com/okian/medalboard/internal/app"
	"github.com/okian/medalboard/internal/config"
	"github.com/okian/medalboard/pkg/logger"
)

// Sentinel kinds for command errors.
var (
	ErrUsage = errors.New("usage")
)

// Output formats.
const (
	formatJSON = "json"
	formatYAML = "yaml"
)

type app struct {
	// Global flags
	dataDir  string
	logLevel string
	format   string

	dash     *service.Dashboard
	injected bool
}

// Option configures the root command.
type Option func(*app)

// WithDashboard uses an already started dashboard instead of loading the
// configured datasets.
func WithDashboard(d *service.Dashboard) Option {
	return func(a *app) {
		if d != nil {
			a.dash = d
			a.injected = true
		}
	}
}

// NewRootCmd builds the medalctl command tree.
func NewRootCmd(opts ...Option) *cobra.Command {
	a := &app{}
	for _, opt := range opts {
		opt(a)
	}

	root := &cobra.Command{
		Use:   "medalctl",
		Short: "Explore Olympic medal history from the command line",
		Long: `medalctl loads the Olympic datasets and prints the same charts and tables the
dashboard serves: medal tables, host advantage, GDP correlation and event
distributions.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.start,
		PersistentPostRun: func(*cobra.Command, []string) { a.stop() },
	}

	// Persistent global flags available to all subcommands
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "directory holding the dataset files (overrides config)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	root.PersistentFlags().StringVarP(&a.format, "format", "f", formatJSON, "output format: json or yaml")

	root.AddCommand(
		newChartCmd(a),
		newTableCmd(a),
		newImageCmd(a),
		newOptionsCmd(a),
	)
	return root
}

// Execute is the entry point called by main.main().
func Execute() {
	ctx := context.Background()
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// start loads config and datasets once per invocation.
func (a *app) start(cmd *cobra.Command, _ []string) error {
	switch a.format {
	case formatJSON, formatYAML:
	default:
		return fmt.Errorf("--format %q must be json or yaml: %w", a.format, ErrUsage)
	}
	if a.injected {
		return nil
	}

	ctx := cmd.Context()
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.dataDir != "" {
		cfg.DataDir = a.dataDir
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}

	// Logs go to stderr so stdout stays machine readable.
	if err := logger.Init(logger.WithOutput(cmd.ErrOrStderr()), logger.WithFormat(cfg.LogFormat), logger.WithSource(false)); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return fmt.Errorf("--log-level: %v: %w", err, ErrUsage)
	}

	a.dash = service.New(append(service.FromConfig(cfg), service.WithLogger(logger.Named("dashboard")))...)
	if err := a.dash.Start(ctx); err != nil {
		return err
	}
	return nil
}

func (a *app) stop() {
	if a.dash != nil && !a.injected {
		a.dash.Stop()
	}
}

// encode writes v in the selected format. YAML goes through JSON first so
// both formats share the json field names.
func (a *app) encode(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	if a.format == formatJSON {
		_, err = fmt.Fprintln(w, string(b))
		return err
	}

	var generic any
	if err := json.Unmarshal(b, &generic); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// parseParams turns repeated key=value flags into selection parameters.
func parseParams(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("--param %q must be key=value: %w", p, ErrUsage)
		}
		out[strings.ToLower(k)] = strings.TrimSpace(v)
	}
	return out, nil
}
