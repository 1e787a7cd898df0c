package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"emoji-panel/recent"
)

var recentTimeout time.Duration

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Inspect or change the recently-used list",
}

var recentListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the recent list, most recent first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, store *recent.Store) error {
			items, err := store.List(ctx)
			if err != nil {
				return err
			}
			for _, item := range items {
				fmt.Fprintln(cmd.OutOrStdout(), item)
			}
			return nil
		})
	},
}

var recentAddCmd = &cobra.Command{
	Use:   "add <item>",
	Short: "Move an item to the front of the recent list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, store *recent.Store) error {
			items, err := store.Promote(ctx, args[0])
			if err != nil {
				return err
			}
			for _, item := range items {
				fmt.Fprintln(cmd.OutOrStdout(), item)
			}
			return nil
		})
	},
}

var recentClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the recent list",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, store *recent.Store) error {
			return store.Clear(ctx)
		})
	},
}

func init() {
	recentCmd.PersistentFlags().DurationVar(&recentTimeout, "timeout", 10*time.Second, "give up on the backend after this long")
	recentCmd.AddCommand(recentListCmd, recentAddCmd, recentClearCmd)
}

func withStore(cmd *cobra.Command, fn func(context.Context, *recent.Store) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), recentTimeout)
	defer cancel()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore() //nolint:errcheck

	if !store.Persistent() {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: memory backend; changes are not kept")
	}
	return fn(ctx, store)
}
