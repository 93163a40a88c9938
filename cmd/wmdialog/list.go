package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/wmdialog/internal/dbus"
	"github.com/jmylchreest/wmdialog/internal/output"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List dialogs currently on screen",
	Long: `List the dialogs that registered themselves on the D-Bus session bus.

Output formats:
  text  One line per dialog with its id, pid, first line and timeout
  json  JSON array
  yaml  YAML sequence
  ids   One id per line, for scripting`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var listOpts struct {
	format     string
	summaryMax int
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listOpts.format, "format", "f", string(output.FormatText),
		"Output format (text, json, yaml, ids)")
	listCmd.Flags().IntVar(&listOpts.summaryMax, "summary-max", output.DefaultFormatterOptions().SummaryMaxLen,
		"Truncate the first line to this many characters (text format)")
}

func runList(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(listOpts.format)
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	client, err := dbus.NewClient(logger)
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	defer func() { _ = client.Close() }()

	dialogs, err := client.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list dialogs: %w", err)
	}

	opts := output.DefaultFormatterOptions()
	opts.SummaryMaxLen = listOpts.summaryMax
	return output.NewFormatter(format, opts).Format(cmd.OutOrStdout(), dialogs)
}
