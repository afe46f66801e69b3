package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sguter90/ambientweather/pkg/ambient"
	"github.com/sguter90/ambientweather/pkg/config"
)

// newAmbientClient builds a client from the environment, prompting for
// missing keys when attached to a terminal.
func newAmbientClient(cmd *cobra.Command) (*ambient.Client, error) {
	cfg := configFrom(cmd)

	if err := resolveCredentials(&cfg, cmd.ErrOrStderr()); err != nil {
		return nil, err
	}

	return ambient.NewClient(cfg.ApplicationKey, cfg.APIKey,
		ambient.WithBaseURL(cfg.BaseURL),
		ambient.WithLogger(loggerFrom(cmd)),
	), nil
}

func resolveCredentials(cfg *config.Config, out io.Writer) error {
	if cfg.HasCredentials() {
		return nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("AMBIENT_APPLICATION_KEY and AMBIENT_API_KEY must be set")
	}

	var err error
	if cfg.ApplicationKey == "" {
		if cfg.ApplicationKey, err = readSecret(fd, out, "Application key: "); err != nil {
			return err
		}
	}
	if cfg.APIKey == "" {
		if cfg.APIKey, err = readSecret(fd, out, "API key: "); err != nil {
			return err
		}
	}

	return nil
}

func readSecret(fd int, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(out) // New line after hidden input
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", strings.TrimSuffix(prompt, ": "), err)
	}

	value := strings.TrimSpace(string(secret))
	if value == "" {
		return "", fmt.Errorf("%s cannot be empty", strings.TrimSuffix(prompt, ": "))
	}
	return value, nil
}
