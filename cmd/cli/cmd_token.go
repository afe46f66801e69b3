package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	tokenSubject string
	tokenTTL     time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for the relay server",
	Long:  `Create an HS256 JWT signed with JWT_SECRET for use with "serve".`,
	Args:  cobra.NoArgs,
	RunE:  runToken,
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", appName, "token subject")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg := configFrom(cmd)
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable is not set")
	}
	if tokenTTL <= 0 {
		return fmt.Errorf("invalid --ttl %s: must be positive", tokenTTL)
	}

	token, expiresAt, err := GenerateJWT([]byte(cfg.JWTSecret), tokenSubject, tokenTTL)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	fmt.Fprintf(cmd.ErrOrStderr(), "Expires at %s\n", expiresAt.Format(time.RFC3339))
	return nil
}
