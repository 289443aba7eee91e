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
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/weaviate/couchsync/usecases/monitoring"
)

// ~1ms to 136s
var syncDurationBuckets = prometheus.ExponentialBuckets(0.001, 2, 18)

type Metrics struct {
	monitoring bool

	documentsChanged prometheus.Counter
	commitRejections prometheus.Counter
	syncsFailed      prometheus.Counter
	syncDuration     prometheus.Histogram
}

func NewMetrics(prom *monitoring.PrometheusMetrics) (*Metrics, error) {
	m := &Metrics{}

	if prom == nil {
		return m, nil
	}
	m.monitoring = true

	if prom.Registerer == nil {
		prom.Registerer = prometheus.DefaultRegisterer
	}

	var err error

	m.documentsChanged, err = newCounter(prom.Registerer,
		"sync_documents_changed", "Count of design documents submitted for commit")
	if err != nil {
		return nil, err
	}
	m.commitRejections, err = newCounter(prom.Registerer,
		"sync_commit_rejections", "Count of per-document rejections reported by the store, e.g. revision conflicts")
	if err != nil {
		return nil, err
	}
	m.syncsFailed, err = newCounter(prom.Registerer,
		"sync_calls_failed", "Count of sync calls that failed with an error")
	if err != nil {
		return nil, err
	}
	m.syncDuration, err = newHistogram(prom.Registerer,
		"sync_duration", "Duration of whole sync calls", syncDurationBuckets)
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Metrics) AddDocumentsChanged(n int) {
	if m.monitoring {
		m.documentsChanged.Add(float64(n))
	}
}

func (m *Metrics) IncCommitRejections() {
	if m.monitoring {
		m.commitRejections.Inc()
	}
}

func (m *Metrics) IncSyncsFailed() {
	if m.monitoring {
		m.syncsFailed.Inc()
	}
}

func (m *Metrics) ObserveSyncDuration(start time.Time) {
	if m.monitoring {
		m.syncDuration.Observe(time.Since(start).Seconds())
	}
}

func newCounter(reg prometheus.Registerer, name, help string) (prometheus.Counter, error) {
	c := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "couchsync",
		Name:      name,
		Help:      help,
	})
	if err := reg.Register(c); err != nil {
		var e prometheus.AlreadyRegisteredError
		if errors.As(err, &e) {
			if counter, ok := e.ExistingCollector.(prometheus.Counter); ok {
				return counter, nil
			}
			return nil, fmt.Errorf("metric %s already registered but not as a Counter", name)
		}
		return nil, err
	}
	return c, nil
}

func newHistogram(reg prometheus.Registerer, name, help string, buckets []float64) (prometheus.Histogram, error) {
	h := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "couchsync",
		Name:      name,
		Help:      help,
		Buckets:   buckets,
	})
	if err := reg.Register(h); err != nil {
		var e prometheus.AlreadyRegisteredError
		if errors.As(err, &e) {
			return e.ExistingCollector.(prometheus.Histogram), nil
		}
		return nil, err
	}
	return h, nil
}
