// Command forumctl is the operator CLI: schema migrations, role and trust
// level changes, and inspection of the site settings snapshot.
//
// Configuration is read the same way as the server (CONFIG_PATH, env).
//
// Usage:
//
//	forumctl migrate up
//	forumctl promote --email=user@example.com --role=admin
//	forumctl trust --email=user@example.com --level=2
//	forumctl settings show
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "forumctl: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "forumctl",
		Short:         "Forum operator tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newMigrateCmd(),
		newPromoteCmd(),
		newTrustCmd(),
		newSettingsCmd(),
	)
	return root
}
