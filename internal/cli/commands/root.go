// Package commands implements the srp6 command-line tool.
package commands

import (
	"bufio"
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fzdarsky/srp6a/internal/cli/output"
	"github.com/fzdarsky/srp6a/internal/config"
	"github.com/fzdarsky/srp6a/internal/logging"
)

const version = "1.0.0"

// rootOptions carries global flags and the state resolved from them before
// any subcommand runs.
type rootOptions struct {
	configPath   string
	verifierPath string
	outputFormat string
	assumeYes    bool

	cfg    *config.Config
	logger *logging.Logger
	format output.Format
	stdin  *bufio.Reader
}

// ExecuteContext runs the srp6 root command. Cancelling ctx aborts
// handshake batches between runs.
func ExecuteContext(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "srp6",
		Short:         "SRP-6a (RFC 5054) verifier registration and handshake tool",
		Version:       version,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to config file (default: user config dir, then built-in defaults)")
	flags.StringVar(&opts.verifierPath, "verifier", "", "path to the verifier record (overrides verifier.path)")
	flags.StringVarP(&opts.outputFormat, "output", "o", "yaml", "output format: yaml or json")
	flags.BoolVarP(&opts.assumeYes, "assumeyes", "y", false, "answer yes to all prompts")

	root.AddCommand(
		groupsCmd(opts),
		digestsCmd(opts),
		registerCmd(opts),
		handshakeCmd(opts),
		selftestCmd(opts),
	)
	return root
}

func (o *rootOptions) load(cmd *cobra.Command) error {
	cfg, err := config.LoadOrDefault(o.configPath)
	if err != nil {
		return err
	}
	if o.verifierPath != "" {
		abs, err := filepath.Abs(o.verifierPath)
		if err != nil {
			return fmt.Errorf("failed to resolve verifier path: %w", err)
		}
		cfg.Verifier.Path = abs
	}

	format, err := output.ParseFormat(o.outputFormat)
	if err != nil {
		return err
	}

	// Both were validated with the config.
	level, _ := logging.ParseLevel(cfg.Logging.Level)
	logFormat, _ := logging.ParseFormat(cfg.Logging.Format)
	logger := logging.New(level, logFormat)
	logger.SetOutput(cmd.ErrOrStderr(), cmd.ErrOrStderr())

	o.cfg = cfg
	o.logger = logger
	o.format = format
	o.stdin = bufio.NewReader(cmd.InOrStdin())
	return nil
}

func (o *rootOptions) write(cmd *cobra.Command, data any) error {
	return output.Write(cmd.OutOrStdout(), data, o.format)
}
