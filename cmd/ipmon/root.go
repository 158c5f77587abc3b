package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ipmon/internal/config"
	"ipmon/internal/diag"
	"ipmon/internal/display"
	"ipmon/internal/history"
	"ipmon/internal/logging"
	"ipmon/internal/monitor"
	"ipmon/internal/netinfo"
)

// app carries what every subcommand needs; built once per invocation
type app struct {
	configFile string
	cfg        *config.Config
	cfgErr     error
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "ipmon",
		Short: "Record and show changes in this host's IP addresses",
		Long: `ipmon keeps a bounded JSON history of the host's IP address assignments.

Run "ipmon check" from a scheduler to record a new entry whenever the set of
interface/address pairs changes, and "ipmon show" to see the latest state.`,
		Version:       versionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig()
		},
	}

	root.PersistentFlags().StringVar(&a.configFile, "config", config.DefaultConfigFile(), "config file")

	root.AddCommand(newCheckCmd(a))
	root.AddCommand(newShowCmd(a))
	root.AddCommand(newHistoryCmd(a))
	root.AddCommand(newWatchCmd(a))

	return root
}

func versionString() string {
	if sha1ver == "" {
		return "dev"
	}
	return fmt.Sprintf("%s (build %s, time %s)", repoName, sha1ver, buildTime)
}

// loadConfig never fails: an unusable file leaves defaults and environment in place
func (a *app) loadConfig() error {
	cfg, err := config.New(a.configFile)
	if err != nil {
		if _, statErr := os.Stat(a.configFile); !errors.Is(statErr, os.ErrNotExist) {
			a.cfgErr = err
		}
	}
	a.cfg = cfg
	return nil
}

// newMonitor wires the reader, store, diagnostic sink and logger.
// Silent runs get a no-op logger so nothing reaches the console.
func (a *app) newMonitor(out io.Writer, silent bool) (*monitor.Monitor, *zap.Logger, error) {
	logger := zap.NewNop()
	if !silent {
		l, err := logging.New(a.cfg.LogLevel, a.cfg.LogFormat)
		if err != nil {
			return nil, nil, err
		}
		logger = l
	}
	if a.cfgErr != nil {
		logger.Warn("Skipping config file", zap.String("file", a.configFile), zap.Error(a.cfgErr))
	}

	store := history.NewStore(a.cfg.HistoryPath(), a.cfg.MaxEntries, logger)
	mon := monitor.New(netinfo.NewReader(nil), store, monitor.Options{
		Out:    out,
		Logger: logger,
		Diag:   diag.Open(a.cfg.EventSource, a.cfg.EventLog),
		Priorities: display.Priorities{
			WLAN:     a.cfg.WLANName,
			Ethernet: a.cfg.EthernetName,
			Switch:   a.cfg.SwitchName,
		},
	})

	return mon, logger, nil
}
