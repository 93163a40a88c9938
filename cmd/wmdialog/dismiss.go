package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/wmdialog/internal/dbus"
)

var dismissCmd = &cobra.Command{
	Use:   "dismiss [id...]",
	Short: "Dismiss dialogs by id",
	Long: `Dismiss one or more dialogs through the D-Bus session bus, as if they had
been clicked. Ids are printed by "wmdialog list". Use --all to dismiss every
dialog on screen.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if dismissOpts.all && len(args) > 0 {
			return errors.New("--all does not take ids")
		}
		if !dismissOpts.all && len(args) == 0 {
			return errors.New("requires at least one id, or --all")
		}
		return nil
	},
	RunE: runDismiss,
}

var dismissOpts struct {
	all bool
}

func init() {
	rootCmd.AddCommand(dismissCmd)

	dismissCmd.Flags().BoolVarP(&dismissOpts.all, "all", "a", false, "Dismiss every dialog")
}

func runDismiss(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	client, err := dbus.NewClient(logger)
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	defer func() { _ = client.Close() }()

	if dismissOpts.all {
		n, err := client.DismissAll(ctx)
		fmt.Fprintf(cmd.OutOrStdout(), "Dismissed %d dialog(s)\n", n)
		return err
	}

	var errs []error
	for _, id := range args {
		if err := client.Dismiss(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", id, err))
			continue
		}
		logger.Debug("dismissed dialog", "id", id)
	}
	return errors.Join(errs...)
}
