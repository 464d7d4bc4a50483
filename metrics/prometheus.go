// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"io"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/clerkb/clerk/log"
)

const namespace = "clerk"

var logger = log.WithContext("pkg", "metrics")

// InitializePrometheusMetrics creates a new instance of the Prometheus service and
// sets the implementation as the default metrics services
func InitializePrometheusMetrics() {
	// don't allow for reset
	if _, ok := metrics.(*prometheusMetrics); !ok {
		metrics = newPrometheusMetrics()
	}
}

type prometheusMetrics struct {
	registry *prometheus.Registry

	mu            sync.Mutex
	counters      map[string]CountMeter
	counterVecs   map[string]CountVecMeter
	gauges        map[string]GaugeMeter
	histograms    map[string]HistogramMeter
	histogramVecs map[string]HistogramVecMeter
}

func newPrometheusMetrics() *prometheusMetrics {
	return &prometheusMetrics{
		registry:      prometheus.NewRegistry(),
		counters:      make(map[string]CountMeter),
		counterVecs:   make(map[string]CountVecMeter),
		gauges:        make(map[string]GaugeMeter),
		histograms:    make(map[string]HistogramMeter),
		histogramVecs: make(map[string]HistogramVecMeter),
	}
}

// getOrCreate looks name up in meters, creating and registering it on a miss.
func getOrCreate[T any](o *prometheusMetrics, meters map[string]T, name string, create func() (prometheus.Collector, T)) T {
	o.mu.Lock()
	defer o.mu.Unlock()

	if meter, ok := meters[name]; ok {
		return meter
	}
	collector, meter := create()
	if err := o.registry.Register(collector); err != nil {
		logger.Warn("unable to register metric", "name", name, "err", err)
	}
	meters[name] = meter
	return meter
}

func (o *prometheusMetrics) GetOrCreateCountMeter(name string) CountMeter {
	return getOrCreate(o, o.counters, name, func() (prometheus.Collector, CountMeter) {
		meter := prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
		})
		return meter, &promCountMeter{meter}
	})
}

func (o *prometheusMetrics) GetOrCreateCountVecMeter(name string, labels []string) CountVecMeter {
	return getOrCreate(o, o.counterVecs, name, func() (prometheus.Collector, CountVecMeter) {
		meter := prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
		}, labels)
		return meter, &promCountVecMeter{meter}
	})
}

func (o *prometheusMetrics) GetOrCreateGaugeMeter(name string) GaugeMeter {
	return getOrCreate(o, o.gauges, name, func() (prometheus.Collector, GaugeMeter) {
		meter := prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
		})
		return meter, &promGaugeMeter{meter}
	})
}

func (o *prometheusMetrics) GetOrCreateHistogramMeter(name string, buckets []int64) HistogramMeter {
	return getOrCreate(o, o.histograms, name, func() (prometheus.Collector, HistogramMeter) {
		meter := prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Buckets:   floatBuckets(buckets),
		})
		return meter, &promHistogramMeter{meter}
	})
}

func (o *prometheusMetrics) GetOrCreateHistogramVecMeter(name string, labels []string, buckets []int64) HistogramVecMeter {
	return getOrCreate(o, o.histogramVecs, name, func() (prometheus.Collector, HistogramVecMeter) {
		meter := prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Buckets:   floatBuckets(buckets),
		}, labels)
		return meter, &promHistogramVecMeter{meter}
	})
}

func (o *prometheusMetrics) Write(w io.Writer) error {
	families, err := o.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

// floatBuckets converts buckets; nil selects the prometheus defaults.
func floatBuckets(buckets []int64) []float64 {
	if len(buckets) == 0 {
		return nil
	}
	fb := make([]float64, 0, len(buckets))
	for _, bucket := range buckets {
		fb = append(fb, float64(bucket))
	}
	return fb
}

type promHistogramMeter struct {
	histogram prometheus.Histogram
}

func (c *promHistogramMeter) Observe(i int64) {
	c.histogram.Observe(float64(i))
}

type promHistogramVecMeter struct {
	histogram *prometheus.HistogramVec
}

func (c *promHistogramVecMeter) ObserveWithLabels(i int64, labels map[string]string) {
	c.histogram.With(labels).Observe(float64(i))
}

type promCountMeter struct {
	counter prometheus.Counter
}

func (c *promCountMeter) Add(i int64) {
	c.counter.Add(float64(i))
}

type promCountVecMeter struct {
	counter *prometheus.CounterVec
}

func (c *promCountVecMeter) AddWithLabel(i int64, labels map[string]string) {
	c.counter.With(labels).Add(float64(i))
}

type promGaugeMeter struct {
	gauge prometheus.Gauge
}

func (c *promGaugeMeter) Add(i int64) {
	c.gauge.Add(float64(i))
}

func (c *promGaugeMeter) Set(i int64) {
	c.gauge.Set(float64(i))
}
