package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/iho/bankrec/internal/domain"
	"github.com/iho/bankrec/internal/infrastructure/auth"
)

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Bearer token operations",
	}

	var (
		secret string
		user   domain.User
		role   string
		ttl    time.Duration
	)
	issueCmd := &cobra.Command{
		Use:   "issue",
		Short: "Sign a bearer token with the server's JWT secret",
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				return errors.New("--secret or JWT_SECRET is required")
			}
			user.Role = domain.Role(role)
			if user.ID == "" || !user.Role.IsValid() {
				return fmt.Errorf("a --user id and a --role of %q or %q are required", domain.RoleMember, domain.RoleAdmin)
			}

			token, err := auth.NewJWTManager(secret, ttl).Generate(&user)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	issueCmd.Flags().StringVar(&secret, "secret", os.Getenv("JWT_SECRET"), "JWT signing secret")
	issueCmd.Flags().StringVar(&user.ID, "user", "", "User id")
	issueCmd.Flags().StringVar(&user.Email, "email", "", "User email")
	issueCmd.Flags().StringVar(&user.Name, "name", "", "User display name")
	issueCmd.Flags().StringVar(&role, "role", string(domain.RoleMember), "Role: member or admin")
	issueCmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")

	cmd.AddCommand(issueCmd)
	return cmd
}
