package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/ini.v1"

	"ipmon/pkg/models"
)

// Config holds all application configuration
type Config struct {
	// History file
	LogDir     string
	LogFile    string
	MaxEntries int

	// OS diagnostic log
	EventSource string
	EventLog    string

	// Console logging
	LogLevel  string
	LogFormat string

	// Watch mode
	Interval time.Duration

	// Display priorities
	WLANName     string
	EthernetName string
	SwitchName   string
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		LogDir:       defaultLogDir(),
		LogFile:      "ip_history.json",
		MaxEntries:   models.MaxLogEntries,
		EventSource:  "IPMonitor",
		EventLog:     "Application",
		LogLevel:     "warn",
		LogFormat:    "console",
		Interval:     15 * time.Minute,
		WLANName:     "WLAN",
		EthernetName: "Ethernet",
		SwitchName:   "vEthernet (Default Switch)",
	}
}

func defaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "ipmon", "logs")
	}
	return filepath.Join(home, ".ipmon", "logs")
}

// DefaultConfigFile returns the per-user config file location
func DefaultConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "ipmon.ini"
	}
	return filepath.Join(dir, "ipmon", "ipmon.ini")
}

// HistoryPath returns the full path of the history file
func (c *Config) HistoryPath() string {
	return filepath.Join(c.LogDir, c.LogFile)
}

// LoadFromFile loads configuration from INI file
func (c *Config) LoadFromFile(filename string) error {
	cfg, err := ini.LoadSources(ini.LoadOptions{Insensitive: true}, filename)
	if err != nil {
		return err
	}

	section := cfg.Section("")
	c.LogDir = section.Key("logdir").MustString(c.LogDir)
	c.LogFile = section.Key("logfile").MustString(c.LogFile)
	c.MaxEntries = section.Key("maxentries").MustInt(c.MaxEntries)
	c.EventSource = section.Key("eventsource").MustString(c.EventSource)
	c.EventLog = section.Key("eventlog").MustString(c.EventLog)
	c.LogLevel = section.Key("loglevel").MustString(c.LogLevel)
	c.LogFormat = section.Key("logformat").MustString(c.LogFormat)
	c.Interval = section.Key("interval").MustDuration(c.Interval)

	display := cfg.Section("display")
	c.WLANName = display.Key("wlan").MustString(c.WLANName)
	c.EthernetName = display.Key("ethernet").MustString(c.EthernetName)
	c.SwitchName = display.Key("switch").MustString(c.SwitchName)

	return nil
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() {
	if v := os.Getenv("IPMON_LOGDIR"); v != "" {
		c.LogDir = v
	}
	if v := os.Getenv("IPMON_LOGFILE"); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv("IPMON_MAXENTRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxEntries = n
		}
	}
	if v := os.Getenv("IPMON_EVENTSOURCE"); v != "" {
		c.EventSource = v
	}
	if v := os.Getenv("IPMON_EVENTLOG"); v != "" {
		c.EventLog = v
	}
	if v := os.Getenv("IPMON_LOGLEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("IPMON_LOGFORMAT"); v != "" {
		c.LogFormat = v
	}
	if v := os.Getenv("IPMON_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Interval = d
		}
	}
}

// New creates a new configuration instance. A missing or unreadable file
// is returned as err alongside a usable configuration.
func New(configFile string) (*Config, error) {
	cfg := DefaultConfig()

	// Load from file first
	fileErr := cfg.LoadFromFile(configFile)

	// Override with environment variables
	cfg.LoadFromEnv()

	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = models.MaxLogEntries
	}

	return cfg, fileErr
}
