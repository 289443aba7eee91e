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

package main

import (
	"context"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"

	"github.com/weaviate/couchsync/adapters/repos/couchdb"
	"github.com/weaviate/couchsync/entities/design"
	"github.com/weaviate/couchsync/usecases/config"
	"github.com/weaviate/couchsync/usecases/monitoring"
	"github.com/weaviate/couchsync/usecases/sync"
)

func main() {
	logger := logrus.WithField("app", "couchsync").Logger

	var opts config.Flags
	if _, err := flags.Parse(&opts); err != nil {
		if flags.WroteHelp(err) {
			return
		}
		logger.Fatal("failed to parse command line args ", err)
	}
	if opts.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	var cfg config.CouchsyncConfig
	if err := cfg.LoadConfig(&opts, logger); err != nil {
		logger.WithError(err).Fatal("failed to load config")
	}

	var prom *monitoring.PrometheusMetrics
	if cfg.Config.Monitoring.Enabled {
		prom = monitoring.NewPrometheusMetrics()
	}

	repo := couchdb.New(cfg.Config.CouchDB.URL, cfg.Config.CouchDB.Database,
		cfg.Config.CouchDB.Timeout(), logger)
	manager, err := sync.NewManager(repo, logger, prom)
	if err != nil {
		logger.WithError(err).Fatal("failed to init sync manager")
	}

	defs, err := loadManifest(opts.Manifest)
	if err != nil {
		logger.WithError(err).WithField("manifest", opts.Manifest).
			Fatal("failed to load manifest")
	}

	onChange := func(doc design.Document) {
		logger.WithField("action", "sync_design_documents").
			WithField("id", doc.ID()).
			Info("design document out of date, updating")
	}

	outcomes, err := manager.Sync(context.Background(), defs, opts.RemoveMissing, onChange)
	if err != nil {
		logger.WithError(err).Fatal("sync failed")
	}

	if len(outcomes) == 0 {
		logger.Info("all design documents already up to date")
		return
	}

	failed := 0
	for _, outcome := range outcomes {
		entry := logger.WithField("id", outcome.ID)
		if outcome.OK {
			entry.WithField("rev", outcome.Rev).Info("design document updated")
			continue
		}
		failed++
		entry.WithField("error", outcome.ErrorKind).
			WithField("reason", outcome.Reason).
			Warn("design document not updated")
	}
	if failed > 0 {
		os.Exit(1)
	}
}
