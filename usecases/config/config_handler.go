//                           _       _
// __      _____  __ ___   ___  __ _| |_ ___
// \ \ /\ / / _ \/ _` \ \ / / |/ _` | __/ _ \
//  \ V  V /  __/ (_| |\ V /| | (_| | ||  __/
//   \_/\_/ \___|\__,_| \_/ |_|\__,_|\__\___|
//
//  Copyright © 2016 - 2025 Weaviate B.V. All rights reserved.
//
//  CONTACT: hello@weaviate.io
//

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default file when no config file is provided
const DefaultConfigFile string = "./couchsync.conf.yaml"

// DefaultTimeoutSeconds bounds every HTTP round trip to the store
const DefaultTimeoutSeconds = 30

// Flags are input options
type Flags struct {
	ConfigFile string `long:"config-file" description:"path to config file (default: ./couchsync.conf.yaml)"`

	URL           string `long:"url" description:"base URL of the CouchDB server, e.g. http://localhost:5984"`
	Database      string `long:"database" description:"name of the database whose design documents are managed"`
	Manifest      string `long:"manifest" description:"YAML manifest declaring the definitions to sync" default:"./couchsync.yaml"`
	RemoveMissing bool   `long:"remove-missing" description:"delete stored artifacts that the manifest no longer declares"`
	Monitoring    bool   `long:"monitoring" description:"register prometheus metrics"`
	Verbose       bool   `long:"verbose" short:"v" description:"log at debug level"`
}

// Config outline of the couchsync process
type Config struct {
	CouchDB    CouchDB    `json:"couchdb" yaml:"couchdb"`
	Monitoring Monitoring `json:"monitoring" yaml:"monitoring"`
}

type CouchDB struct {
	URL            string `json:"url" yaml:"url"`
	Database       string `json:"database" yaml:"database"`
	TimeoutSeconds int    `json:"timeout_seconds" yaml:"timeout_seconds"`
}

// Timeout returns the configured per-request timeout.
func (c CouchDB) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeoutSeconds * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c CouchDB) Validate() error {
	if c.URL == "" {
		return errors.New("couchdb.url must be set")
	}
	if c.Database == "" {
		return errors.New("couchdb.database must be set")
	}
	if c.TimeoutSeconds < 0 {
		return errors.Errorf("couchdb.timeout_seconds must not be negative, got %d", c.TimeoutSeconds)
	}
	return nil
}

type Monitoring struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
}

func (c *Config) Validate() error {
	if err := c.CouchDB.Validate(); err != nil {
		return configErr(err)
	}
	return nil
}

// CouchsyncConfig is the process-level config carrier, filled from
// file, environment and flags, in that order.
type CouchsyncConfig struct {
	Config Config
}

func (f *CouchsyncConfig) LoadConfig(flags *Flags, logger logrus.FieldLogger) error {
	configFileName := flags.ConfigFile
	if configFileName == "" {
		configFileName = DefaultConfigFile
	}

	file, err := os.ReadFile(configFileName)
	_ = err // a missing config file is fine, env and flags may carry everything

	if len(file) > 0 {
		logger.WithField("action", "config_load").WithField("config_file_path", configFileName).
			Debug("loading config file")
		config, err := f.parseConfigFile(file, configFileName)
		if err != nil {
			return configErr(err)
		}
		f.Config = config
	}

	if err := FromEnv(&f.Config); err != nil {
		return configErr(err)
	}

	f.fromFlags(flags)

	return f.Config.Validate()
}

func (f *CouchsyncConfig) parseConfigFile(file []byte, name string) (Config, error) {
	var config Config

	m := regexp.MustCompile(`.*\.(\w+)$`).FindStringSubmatch(name)
	if len(m) < 2 {
		return config, fmt.Errorf("config file does not have a file ending, got '%s'", name)
	}

	switch m[1] {
	case "json":
		err := json.Unmarshal(file, &config)
		if err != nil {
			return config, fmt.Errorf("error unmarshalling the json config file: %w", err)
		}
	case "yaml", "yml":
		err := yaml.Unmarshal(file, &config)
		if err != nil {
			return config, fmt.Errorf("error unmarshalling the yaml config file: %w", err)
		}
	default:
		return config, fmt.Errorf("unsupported config file extension '%s', use .yaml or .json", m[1])
	}

	return config, nil
}

func (f *CouchsyncConfig) fromFlags(flags *Flags) {
	if flags.URL != "" {
		f.Config.CouchDB.URL = flags.URL
	}
	if flags.Database != "" {
		f.Config.CouchDB.Database = flags.Database
	}
	if flags.Monitoring {
		f.Config.Monitoring.Enabled = true
	}
}

func configErr(err error) error {
	return fmt.Errorf("invalid config: %w", err)
}
