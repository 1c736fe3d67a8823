package main

import (
	"fmt"
	"time"

	"skillsift/internal/pkg/jwt"

	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an admin bearer token for catalogue writes",
	RunE:  runToken,
}

var (
	tokenSubject string
	tokenTTL     time.Duration
)

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "admin", "Subject recorded in the token")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "Token lifetime (defaults to ADMIN_JWT_EXPIRES_IN)")

	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig()
	ttl := cfg.JWT.AdminExpiresIn
	if tokenTTL > 0 {
		ttl = tokenTTL
	}

	svc := jwt.NewHMACService(cfg.JWT.AdminSecret, ttl)
	tok, err := svc.GenerateAdminToken(tokenSubject)
	if err != nil {
		return fmt.Errorf("mint token: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), tok)
	return nil
}
