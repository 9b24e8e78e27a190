package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/propcheck/internal/cli/config"
	"github.com/leapstack-labs/propcheck/internal/server"
	"github.com/leapstack-labs/propcheck/pkg/lint"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Addr    string
	NoWatch bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve attribute checks over HTTP",
		Long: `Start an HTTP server that checks host documents posted as JSON.

Endpoints:
  POST /v1/check          check a document, returns diagnostics
  GET  /v1/rules          list rule metadata
  GET  /v1/lookup/{name}  explain a name (?tag=img&is)
  GET  /healthz           liveness and dictionary version

The lint section of the configuration file is reloaded when the file changes.`,
		Example: `  # Serve on the configured address
  propcheck serve

  # Serve on a specific address
  propcheck serve --addr 127.0.0.1:9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "Listen address (default from server.addr)")
	cmd.Flags().BoolVar(&opts.NoWatch, "no-watch", false, "Do not reload the config file on change")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cmdCtx := NewCommandContext(cmd, "")
	cfg := cmdCtx.Cfg

	addr := cfg.Server.Addr
	if opts.Addr != "" {
		addr = opts.Addr
	}

	watchFile := cfg.File
	if opts.NoWatch {
		watchFile = ""
	}

	srv, err := server.New(server.Config{
		Addr:         addr,
		ReadTimeout:  cfg.Server.ReadTimeout,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		Logger:       cmdCtx.Logger,
		Load:         lintConfigLoader(cfg),
		WatchFile:    watchFile,
	})
	if err != nil {
		return err
	}
	return srv.Serve(cmd.Context())
}

// lintConfigLoader returns a loader that re-reads the config file on every
// call after the first, which uses the already loaded config.
func lintConfigLoader(initial *config.Config) server.ConfigLoader {
	first := true
	return func() (*lint.Config, error) {
		if first || initial.File == "" {
			first = false
			return initial.BuildLintConfig()
		}
		cfg, err := config.Load(initial.File, nil)
		if err != nil {
			return nil, err
		}
		return cfg.BuildLintConfig()
	}
}
