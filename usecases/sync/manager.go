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

package sync

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/weaviate/couchsync/entities/design"
	"github.com/weaviate/couchsync/usecases/monitoring"
)

// Repo is the store-facing collaborator the reconciler depends on. It
// is agnostic of transport details: connection management, auth, URL
// construction and retry of network calls all live behind it.
type Repo interface {
	// GetDesignDoc returns the stored design document, or nil if no
	// document exists under that id. Absence is not an error, only
	// transport failures are.
	GetDesignDoc(ctx context.Context, id string) (design.Document, error)

	// BulkDocs writes all documents in one request and reports one
	// outcome per document, in submission order. The store may accept
	// some documents and reject others, rejections are part of the
	// outcomes, not an error.
	BulkDocs(ctx context.Context, docs []design.Document) ([]Outcome, error)
}

// Outcome reports what the store did with one submitted document.
type Outcome struct {
	OK  bool
	ID  string
	Rev string

	// ErrorKind and Reason are set on per-document rejections, e.g.
	// "conflict" when the revision no longer matches.
	ErrorKind string
	Reason    string
}

// Manager reconciles declared definitions against their design
// documents at a use-case level, i.e. agnostic of how the underlying
// store is reached.
type Manager struct {
	repo    Repo
	logger  logrus.FieldLogger
	metrics *Metrics
}

// NewManager creates a new manager
func NewManager(repo Repo, logger logrus.FieldLogger,
	prom *monitoring.PrometheusMetrics,
) (*Manager, error) {
	metrics, err := NewMetrics(prom)
	if err != nil {
		return nil, err
	}

	return &Manager{
		repo:    repo,
		logger:  logger,
		metrics: metrics,
	}, nil
}
