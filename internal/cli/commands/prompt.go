package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// readPassword prompts for a password. Terminal input is read without echo;
// anything else (pipes, tests) supplies one line.
func (o *rootOptions) readPassword(cmd *cobra.Command, prompt string) ([]byte, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), prompt)
		password, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return nil, fmt.Errorf("failed to read password: %w", err)
		}
		return password, nil
	}

	line, err := o.stdin.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}

// isTerminal reports whether prompts reach an interactive user.
func isTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.InOrStdin().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// confirm asks a yes/no question. --assumeyes answers yes; end of input
// answers no.
func (o *rootOptions) confirm(cmd *cobra.Command, question string) bool {
	if o.assumeYes {
		return true
	}

	for {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s (yes/no): ", question)

		response, err := o.stdin.ReadString('\n')
		if err != nil && response == "" {
			return false
		}

		switch strings.ToLower(strings.TrimSpace(response)) {
		case "yes", "y":
			return true
		case "no", "n":
			return false
		default:
			fmt.Fprintf(cmd.ErrOrStderr(), "Please answer 'yes' or 'no'\n")
		}
	}
}
