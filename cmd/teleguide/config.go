package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
)

// Config holds settings from configuration file
type Config struct {
	PullInterval textDuration // Time between two refreshes when running as a service
	Provider     string       // Name of the listing provider to query
	FilterFile   string       // Path of the filter file
	MaxTasks     int          // Maximum concurrent fetches
	Debug        bool         // Log worker and scraper chatter
	Headless     bool         // True when progression bars are not displayed
	Service      bool         // True when running as service. When false, print the program and terminate
}

// Handle Duration as string for JSON configuration
type textDuration time.Duration

func (t textDuration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Duration(t).String() + `"`), nil
}

func (t *textDuration) UnmarshalJSON(b []byte) error {
	if b[0] == '"' {
		b = b[1 : len(b)-1]
	}
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*t = textDuration(v)
	return nil
}

var defaultConfig = &Config{
	PullInterval: textDuration(time.Hour),
	Provider:     "tvspielfilm",
}

// WriteConfig creates a JSON file with the given configuration
func WriteConfig(name string, conf *Config) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("Can't write configuration file: %v", err)
	}
	defer f.Close()
	e := json.NewEncoder(f)
	e.SetIndent("", "  ")
	if err := e.Encode(conf); err != nil {
		return fmt.Errorf("Can't write configuration file: %v", err)
	}
	return nil
}

// ReadConfig reads the JSON configuration file
func ReadConfig(name string) (*Config, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("Can't open configuration file: %v", err)
	}
	defer f.Close()
	conf := &Config{}
	d := json.NewDecoder(f)
	err = d.Decode(conf)
	if err != nil {
		return nil, fmt.Errorf("Can't decode configuration file: %v", err)
	}
	return conf, nil
}

// ReadConfigOrGenerateDefault returns the configuration read from name.
// When there is none to read, a default file is written for the next run.
func ReadConfigOrGenerateDefault(name string) *Config {
	conf, err := ReadConfig(name)
	if err != nil {
		logrus.WithError(err).Info("Generating a default configuration file")
		c := *defaultConfig
		conf = &c
		if err := WriteConfig(name, conf); err != nil {
			logrus.WithError(err).Warn("Configuration file not written")
		}
	}
	return conf
}

// Check and normalize configuration
func (c *Config) Check() {
	if c.Provider == "" {
		c.Provider = defaultConfig.Provider
	}
	if time.Duration(c.PullInterval) <= 0 {
		c.PullInterval = defaultConfig.PullInterval
	}
	if c.MaxTasks < 1 {
		c.MaxTasks = runtime.NumCPU()
	}
	if c.FilterFile == "" {
		c.FilterFile = defaultFilterFile()
	}
	c.FilterFile = os.ExpandEnv(c.FilterFile)
	if err := os.MkdirAll(filepath.Dir(c.FilterFile), 0777); err != nil {
		logrus.WithError(err).Debug("Filter directory not created")
	}
}

func defaultFilterFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "filters.csv"
	}
	return filepath.Join(dir, "teleguide", "filters.csv")
}
