package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/forum-backend/internal/adapter/postgres"
	auditrepo "github.com/heartmarshall/forum-backend/internal/adapter/postgres/audit"
	userrepo "github.com/heartmarshall/forum-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/forum-backend/internal/domain"
	usersvc "github.com/heartmarshall/forum-backend/internal/service/user"
)

func newUserService(e *env) *usersvc.Service {
	return usersvc.NewService(e.logger, userrepo.New(e.pool), auditrepo.New(e.pool), postgres.NewTxManager(e.pool))
}

func newPromoteCmd() *cobra.Command {
	var email, role string
	cmd := &cobra.Command{
		Use:   "promote",
		Short: "Set a user's role (user, moderator, admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := parseRole(role)
			if err != nil {
				return err
			}

			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			u, err := newUserService(e).SetRole(cmd.Context(), email, r)
			if err != nil {
				return fmt.Errorf("promote %s: %w", email, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) is now %s\n", u.Username, u.Email, u.Role())
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email of the user")
	cmd.Flags().StringVar(&role, "role", domain.UserRoleAdmin.String(), "role to grant: user, moderator or admin")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newTrustCmd() *cobra.Command {
	var (
		email string
		level int
	)
	cmd := &cobra.Command{
		Use:   "trust",
		Short: "Set a user's trust level (0-4)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tl := domain.TrustLevel(level)
			if !tl.IsValid() {
				return fmt.Errorf("invalid trust level %d: must be between 0 and 4", level)
			}

			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			u, err := newUserService(e).SetTrustLevel(cmd.Context(), email, tl)
			if err != nil {
				return fmt.Errorf("set trust level for %s: %w", email, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) is now trust level %d (%s)\n", u.Username, u.Email, int(u.TrustLevel), u.TrustLevel)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email of the user")
	cmd.Flags().IntVar(&level, "level", 0, "trust level, 0 (new user) to 4 (leader)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("level")
	return cmd
}

func parseRole(s string) (domain.UserRole, error) {
	r := domain.UserRole(strings.ToLower(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", fmt.Errorf("invalid role %q: must be user, moderator or admin", s)
	}
	return r, nil
}
