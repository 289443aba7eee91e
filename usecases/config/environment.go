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
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// FromEnv takes a *Config as it will respect initial config that has
// been provided by other means (e.g. a config file) and will only
// extend those that are set
func FromEnv(config *Config) error {
	if v := os.Getenv("COUCHSYNC_URL"); v != "" {
		config.CouchDB.URL = v
	}

	if v := os.Getenv("COUCHSYNC_DATABASE"); v != "" {
		config.CouchDB.Database = v
	}

	if v := os.Getenv("COUCHSYNC_TIMEOUT_SECONDS"); v != "" {
		asInt, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "parse COUCHSYNC_TIMEOUT_SECONDS as int")
		}
		config.CouchDB.TimeoutSeconds = asInt
	}

	if enabled(os.Getenv("COUCHSYNC_MONITORING_ENABLED")) {
		config.Monitoring.Enabled = true
	}

	return nil
}

func enabled(value string) bool {
	if value == "" {
		return false
	}

	if value == "on" ||
		value == "enabled" ||
		value == "1" ||
		value == "true" {
		return true
	}

	return false
}
