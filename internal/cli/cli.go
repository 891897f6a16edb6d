// Package cli implements the bijector command-line interface.
//
// # Commands
//
//   - list: registered transform names
//   - forward, backward, jacdet: evaluate one transform on a value
//   - check: run round-trip and Jacobian diagnostics
//
// All commands accept --config and --verbose (-v). The logger is carried on
// the command's context.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/born-ml/bijector/internal/config"
	"github.com/born-ml/bijector/internal/transform"
)

// Version is reported by --version.
var Version = "v0.0.1-dev"

// CLI holds state shared by all commands.
type CLI struct {
	out    io.Writer
	errOut io.Writer

	configPath string
	verbose    bool
	cfg        config.Config
}

// New creates a CLI printing results to out and logs to errOut.
func New(out, errOut io.Writer) *CLI {
	return &CLI{out: out, errOut: errOut}
}

// RootCommand creates the root command with every subcommand registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "bijector",
		Short:         "Bijective transforms between constrained and unconstrained spaces",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg

			level, _ := log.ParseLevel(cfg.Log.Level)
			if c.verbose {
				level = log.DebugLevel
			}
			logger := newLogger(c.errOut, level, cfg.Log.Format)
			transform.SetLogger(logger)
			cmd.SetContext(withLogger(cmd.Context(), logger))
			logger.Debug("configuration loaded", "path", c.configPath, "cases", len(cfg.Cases))
			return nil
		},
	}
	root.SetOut(c.out)
	root.SetErr(c.errOut)
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (.yaml, .yml or .toml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.listCommand())
	root.AddCommand(c.evalCommand("forward", "Map constrained values to unconstrained space"))
	root.AddCommand(c.evalCommand("backward", "Map unconstrained values to the constrained support"))
	root.AddCommand(c.evalCommand("jacdet", "Log absolute Jacobian determinant of backward"))
	root.AddCommand(c.checkCommand())
	return root
}
