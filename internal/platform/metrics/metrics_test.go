package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncrementPersonsAdded()
	m.IncrementPersonsAdded()
	m.IncrementCountriesAdded()
	m.RecordCacheLookup("hit")
	m.ObserveOperation("list_persons", time.Now())

	assert.Equal(t, 2.0, testutil.ToFloat64(m.PersonsAdded))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CountriesAdded))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CountryCache.WithLabelValues("hit")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementPersonsAdded()
		m.IncrementPersonsDeleted()
		m.ObserveOperation("noop", time.Now())
		m.ObserveHTTP("GET", "/persons", "200", time.Millisecond)
		m.RecordCacheLookup("miss")
	})
}
