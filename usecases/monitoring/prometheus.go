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

package monitoring

import "github.com/prometheus/client_golang/prometheus"

// PrometheusMetrics carries the registerer components register their
// metrics against. A nil *PrometheusMetrics disables monitoring
// entirely.
type PrometheusMetrics struct {
	Registerer prometheus.Registerer
}

// NewPrometheusMetrics returns a carrier backed by the default
// registerer.
func NewPrometheusMetrics() *PrometheusMetrics {
	return &PrometheusMetrics{
		Registerer: prometheus.DefaultRegisterer,
	}
}

// NoopRegisterer accepts and discards all collectors. It is mainly
// used to silence metrics in tests.
var NoopRegisterer prometheus.Registerer = noopRegisterer{}

type noopRegisterer struct{}

func (noopRegisterer) Register(prometheus.Collector) error { return nil }

func (noopRegisterer) MustRegister(...prometheus.Collector) {}

func (noopRegisterer) Unregister(prometheus.Collector) bool { return true }
