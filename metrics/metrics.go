// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package metrics gives package-wide access to meters. Meters are no-ops until
// InitializePrometheusMetrics is called; nothing reads them back, so they never
// influence a verification.
package metrics

import (
	"io"
	"sync"
)

// the active implementation, no-op by default
var metrics = defaultNoopMetrics()

// Metrics is a metrics implementation.
type Metrics interface {
	GetOrCreateCountMeter(name string) CountMeter
	GetOrCreateCountVecMeter(name string, labels []string) CountVecMeter
	GetOrCreateGaugeMeter(name string) GaugeMeter
	GetOrCreateHistogramMeter(name string, buckets []int64) HistogramMeter
	GetOrCreateHistogramVecMeter(name string, labels []string, buckets []int64) HistogramVecMeter
	Write(w io.Writer) error
}

// BucketMicros spans verification durations in microseconds.
var BucketMicros = []int64{1, 2, 5, 10, 20, 50, 100, 200, 500, 1000, 2000, 5000, 10_000}

type (
	// CountMeter only goes up.
	CountMeter interface {
		Add(int64)
	}
	// CountVecMeter is a CountMeter per label set.
	CountVecMeter interface {
		AddWithLabel(int64, map[string]string)
	}
	// GaugeMeter holds a value that may go either way.
	GaugeMeter interface {
		Add(int64)
		Set(int64)
	}
	// HistogramMeter buckets observations.
	HistogramMeter interface {
		Observe(int64)
	}
	// HistogramVecMeter is a HistogramMeter per label set.
	HistogramVecMeter interface {
		ObserveWithLabels(int64, map[string]string)
	}
)

// Write dumps every meter in the prometheus text format. It writes nothing
// while metrics are disabled.
func Write(w io.Writer) error {
	return metrics.Write(w)
}

func Counter(name string) CountMeter {
	return metrics.GetOrCreateCountMeter(name)
}

func CounterVec(name string, labels []string) CountVecMeter {
	return metrics.GetOrCreateCountVecMeter(name, labels)
}

func Gauge(name string) GaugeMeter {
	return metrics.GetOrCreateGaugeMeter(name)
}

func Histogram(name string, buckets []int64) HistogramMeter {
	return metrics.GetOrCreateHistogramMeter(name, buckets)
}

func HistogramVec(name string, labels []string, buckets []int64) HistogramVecMeter {
	return metrics.GetOrCreateHistogramVecMeter(name, labels, buckets)
}

// LazyLoad defers creating a meter to its first use, so meters can be declared
// as package variables before the implementation is chosen.
func LazyLoad[T any](f func() T) func() T {
	var (
		once   sync.Once
		result T
	)
	return func() T {
		once.Do(func() { result = f() })
		return result
	}
}

func LazyLoadCounter(name string) func() CountMeter {
	return LazyLoad(func() CountMeter { return Counter(name) })
}

func LazyLoadCounterVec(name string, labels []string) func() CountVecMeter {
	return LazyLoad(func() CountVecMeter { return CounterVec(name, labels) })
}

func LazyLoadGauge(name string) func() GaugeMeter {
	return LazyLoad(func() GaugeMeter { return Gauge(name) })
}

func LazyLoadHistogram(name string, buckets []int64) func() HistogramMeter {
	return LazyLoad(func() HistogramMeter { return Histogram(name, buckets) })
}

func LazyLoadHistogramVec(name string, labels []string, buckets []int64) func() HistogramVecMeter {
	return LazyLoad(func() HistogramVecMeter { return HistogramVec(name, labels, buckets) })
}
