package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"ipmon/internal/display"
	"ipmon/internal/monitor"
	"ipmon/internal/netinfo"
	"ipmon/pkg/models"
)

func newCheckCmd(a *app) *cobra.Command {
	var opts monitor.CheckOptions

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Record the current addresses if they changed",
		Long: `Take a snapshot of the host's addresses and append it to the history when it
differs from the newest entry. Prints true when a change was detected.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mon, logger, err := a.newMonitor(cmd.OutOrStdout(), opts.Silent)
			if err != nil {
				return err
			}
			defer logger.Sync()

			changed, err := mon.CheckAndRecord(opts)
			if err != nil {
				return err
			}
			if !opts.Silent {
				fmt.Fprintln(cmd.OutOrStdout(), changed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.ShowCurrent, "show-current", false, "display the current addresses")
	cmd.Flags().BoolVar(&opts.ShowChange, "show-change", false, "report whether anything changed and show the latest entry")
	cmd.Flags().BoolVar(&opts.Silent, "silent", false, "suppress all console output")

	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	var follow bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the latest recorded addresses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mon, logger, err := a.newMonitor(cmd.OutOrStdout(), false)
			if err != nil {
				return err
			}
			defer logger.Sync()

			if !follow {
				return mon.ShowLatest()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := mon.Follow(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "keep running and reprint when the history changes")

	return cmd
}

func newHistoryCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print every recorded entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mon, logger, err := a.newMonitor(cmd.OutOrStdout(), false)
			if err != nil {
				return err
			}
			defer logger.Sync()

			hist, err := mon.History()
			if err != nil {
				return err
			}
			return writeHistory(cmd, hist, output, display.Priorities{
				WLAN:     a.cfg.WLANName,
				Ethernet: a.cfg.EthernetName,
				Switch:   a.cfg.SwitchName,
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table, json or yaml")

	return cmd
}

func writeHistory(cmd *cobra.Command, hist models.LogHistory, output string, p display.Priorities) error {
	w := cmd.OutOrStdout()

	switch output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(hist)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(hist)
	case "table":
		if len(hist) == 0 {
			fmt.Fprintln(w, "No IP log entries found.")
			return nil
		}
		for _, entry := range hist {
			fmt.Fprintf(w, "%s (%d addresses)\n", entry.Timestamp, len(entry.Addresses))
			if err := display.Render(w, entry.Addresses, p); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
}

func newWatchCmd(a *app) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Check periodically and on address changes until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mon, logger, err := a.newMonitor(cmd.OutOrStdout(), false)
			if err != nil {
				return err
			}
			defer logger.Sync()

			if !cmd.Flags().Changed("interval") {
				interval = a.cfg.Interval
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			events, err := netinfo.Subscribe(ctx)
			if err != nil {
				logger.Warn("Address change events unavailable, polling only", zap.Error(err))
				events = nil
			}

			err = mon.Watch(ctx, interval, events, monitor.CheckOptions{ShowChange: true})
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 15*time.Minute, "time between checks")

	return cmd
}
