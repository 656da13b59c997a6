package storage

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/rl1809/inventory-index/internal/core/domain"
	"github.com/rl1809/inventory-index/internal/port"
)

const (
	resultHit   = "hit"
	resultMiss  = "miss"
	resultOK    = "ok"
	resultError = "error"
)

// Metrics holds the collectors shared by every instrumented repository.
type Metrics struct {
	Saves          *prometheus.CounterVec
	Lookups        *prometheus.CounterVec
	LookupDuration *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Saves: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inventory",
			Name:      "saves_total",
			Help:      "Inventory saves by backend and result.",
		}, []string{"backend", "result"}),
		Lookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inventory",
			Name:      "lookups_total",
			Help:      "Inventory lookups by backend and result.",
		}, []string{"backend", "result"}),
		LookupDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "inventory",
			Name:      "lookup_duration_seconds",
			Help:      "Inventory lookup latency.",
			Buckets:   prometheus.ExponentialBuckets(1e-7, 4, 12),
		}, []string{"backend"}),
	}
}

// Instrumented wraps a repository and records save and lookup metrics.
type Instrumented struct {
	next    port.InventoryRepository
	backend string
	metrics *Metrics
}

func NewInstrumented(next port.InventoryRepository, backend string, metrics *Metrics) *Instrumented {
	return &Instrumented{next: next, backend: backend, metrics: metrics}
}

func (i *Instrumented) Save(ctx context.Context, inv domain.Inventory) error {
	err := i.next.Save(ctx, inv)
	result := resultOK
	if err != nil {
		result = resultError
	}
	i.metrics.Saves.WithLabelValues(i.backend, result).Inc()
	return err
}

func (i *Instrumented) FindByID(ctx context.Context, id string) (*domain.Inventory, error) {
	start := time.Now()
	inv, err := i.next.FindByID(ctx, id)
	i.metrics.LookupDuration.WithLabelValues(i.backend).Observe(time.Since(start).Seconds())

	result := resultHit
	switch {
	case err != nil:
		result = resultError
	case inv == nil:
		result = resultMiss
	}
	i.metrics.Lookups.WithLabelValues(i.backend, result).Inc()
	return inv, err
}

// CountPrefix delegates to the wrapped repository when it can count prefixes.
func (i *Instrumented) CountPrefix(ctx context.Context, prefix string) (int, error) {
	counter, ok := i.next.(port.PrefixCounter)
	if !ok {
		return 0, errors.ErrUnsupported
	}
	return counter.CountPrefix(ctx, prefix)
}
