package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/turtacn/Resilience-Insights/internal/application/insights"
	"github.com/turtacn/Resilience-Insights/internal/config"
	"github.com/turtacn/Resilience-Insights/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Resilience-Insights/pkg/errors"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

type cliContextKey struct{}

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath   string
	LogLevel     string
	OutputFormat string
	Timeout      time.Duration
}

// CLIContext carries initialized dependencies through the command tree.
type CLIContext struct {
	Config       *config.Config
	Logger       logging.Logger
	OutputFormat string
	Timeout      time.Duration
	Stdin        io.Reader
}

// ServiceBuilder builds the analysis service for one command. source
// overrides the configured content store: a file path, an http(s) URL or
// "-" for stdin. close releases what the builder opened.
type ServiceBuilder func(cc *CLIContext, source string) (svc insights.Service, close func() error, err error)

// NewRootCommand creates the root command. A nil build selects
// DefaultServiceBuilder.
func NewRootCommand(build ServiceBuilder) *cobra.Command {
	if build == nil {
		build = DefaultServiceBuilder
	}
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Resilience Insights CLI: analyse resilience case studies",
		Long: "insights analyses a corpus of resilience case studies: themes, patterns,\n" +
			"outcomes, clusters, similarity and the knowledge graph.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPreRun(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: ./insights.yaml)")
	pf.StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVarP(&opts.OutputFormat, "output", "o", "text", "output format (text, json)")
	pf.DurationVar(&opts.Timeout, "timeout", 2*time.Minute, "overall command timeout")

	cmd.AddCommand(
		NewAnalyzeCmd(build),
		NewSimilarCmd(build),
		NewGraphCmd(build),
		NewVersionCmd(),
	)
	return cmd
}

func persistentPreRun(cmd *cobra.Command, opts *RootOptions) error {
	switch strings.ToLower(opts.OutputFormat) {
	case "text", "json":
	default:
		return errors.InvalidParam("output must be text or json").WithDetail(opts.OutputFormat)
	}
	if opts.Timeout <= 0 {
		return errors.InvalidParam("timeout must be positive")
	}

	cfg, err := initConfig(opts)
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}
	logger, err := logging.NewLogger(logging.LogConfig{
		Level:            opts.LogLevel,
		Format:           "console",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	})
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}

	cc := &CLIContext{
		Config:       cfg,
		Logger:       logger,
		OutputFormat: strings.ToLower(opts.OutputFormat),
		Timeout:      opts.Timeout,
		Stdin:        cmd.InOrStdin(),
	}
	cmd.SetContext(context.WithValue(cmd.Context(), cliContextKey{}, cc))
	return nil
}

// initConfig loads the explicit file, then the first default location that
// exists, and falls back to INSIGHTS_* variables and defaults.
func initConfig(opts *RootOptions) (*config.Config, error) {
	if opts.ConfigPath != "" {
		return config.Load(opts.ConfigPath)
	}
	paths := []string{"./insights.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".insights", "config.yaml"))
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return config.Load(p)
		}
	}
	return config.LoadFromEnv()
}

// GetCLIContext extracts the CLIContext stored by the root command.
func GetCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errors.New(errors.ErrCodeValidation, "command context is nil")
	}
	cc, ok := ctx.Value(cliContextKey{}).(*CLIContext)
	if !ok || cc == nil {
		return nil, errors.New(errors.ErrCodeValidation, "CLIContext not found in command context")
	}
	return cc, nil
}

// withService resolves the CLI context, builds the service and runs fn under
// the global timeout.
func withService(cmd *cobra.Command, build ServiceBuilder, source string, fn func(ctx context.Context, cc *CLIContext, svc insights.Service) error) error {
	cc, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	svc, closeFn, err := build(cc, source)
	if err != nil {
		return err
	}
	defer func() {
		if closeFn == nil {
			return
		}
		if err := closeFn(); err != nil {
			cc.Logger.Warn("failed to release resources", logging.Err(err))
		}
	}()

	ctx, cancel := context.WithTimeout(cmd.Context(), cc.Timeout)
	defer cancel()
	return fn(ctx, cc, svc)
}

// Execute runs the CLI with the default service builder.
func Execute() error {
	root := NewRootCommand(nil)
	if err := root.Execute(); err != nil {
		PrintError(root, err)
		return err
	}
	return nil
}

//Personal.AI order the ending
