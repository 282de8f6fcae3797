package commands

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fzdarsky/srp6a/internal/auth"
	"github.com/fzdarsky/srp6a/internal/util/memzero"
	"github.com/fzdarsky/srp6a/pkg/srp"
)

type registerResult struct {
	Identity string              `json:"identity" yaml:"identity"`
	Group    int                 `json:"group" yaml:"group"`
	Digest   srp.DigestAlgorithm `json:"digest" yaml:"digest"`
	Path     string              `json:"path" yaml:"path"`
}

func registerCmd(opts *rootOptions) *cobra.Command {
	var (
		identity string
		password string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Generate a salt and verifier for an identity and store the record",
		Long: `Generate a fresh salt and the SRP-6a verifier v = g^x mod N for an identity
and write them to the verifier record. The password itself is never stored.
The group, digest and salt length come from the configuration.`,
		Example: `  # Prompt for the password
  srp6 register --identity alice

  # Non-interactive, with a 4096-bit group
  srp6 register --identity alice --password secret --verifier /tmp/alice.json -c srp6a.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := opts.cfg.Verifier.Path
			if auth.VerifierExists(path) && !opts.confirm(cmd, fmt.Sprintf("Overwrite verifier record %s?", path)) {
				return errors.New("aborted: verifier record exists")
			}

			pw, err := registrationPassword(cmd, opts, password)
			if err != nil {
				return err
			}
			defer memzero.Zero(pw)

			srpCfg, err := opts.cfg.ProtocolConfig()
			if err != nil {
				return err
			}
			record, err := auth.NewVerifierRecord(srpCfg, identity, pw, opts.cfg.SRP.SaltLength)
			if err != nil {
				return fmt.Errorf("failed to register %s: %w", identity, err)
			}
			if err := record.Save(path); err != nil {
				return err
			}

			opts.logger.Info("verifier registered", map[string]any{
				"identity": record.Identity,
				"group":    record.Group,
				"digest":   record.Digest,
				"path":     path,
			})

			return opts.write(cmd, registerResult{
				Identity: record.Identity,
				Group:    record.Group,
				Digest:   record.Digest,
				Path:     path,
			})
		},
	}

	cmd.Flags().StringVar(&identity, "identity", "", "identity (username) to register")
	cmd.Flags().StringVar(&password, "password", "", "password (prompts if not provided)")
	_ = cmd.MarkFlagRequired("identity")

	return cmd
}

// registrationPassword returns the flag value, or prompts. Interactive
// prompts ask twice.
func registrationPassword(cmd *cobra.Command, opts *rootOptions, flagValue string) ([]byte, error) {
	if flagValue != "" {
		return []byte(flagValue), nil
	}

	pw, err := opts.readPassword(cmd, "Password: ")
	if err != nil {
		return nil, err
	}
	if len(pw) == 0 {
		return nil, errors.New("password must not be empty")
	}
	if !isTerminal(cmd) {
		return pw, nil
	}

	again, err := opts.readPassword(cmd, "Confirm password: ")
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(again)
	if !bytes.Equal(pw, again) {
		memzero.Zero(pw)
		return nil, errors.New("passwords do not match")
	}
	return pw, nil
}
