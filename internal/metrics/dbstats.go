package metrics

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
)

// StatsFunc returns a snapshot of connection pool statistics.
type StatsFunc func() sql.DBStats

// DBStatsCollector exports database/sql pool statistics on every scrape.
type DBStatsCollector struct {
	stats StatsFunc

	maxOpen      *prometheus.Desc
	open         *prometheus.Desc
	inUse        *prometheus.Desc
	idle         *prometheus.Desc
	waitCount    *prometheus.Desc
	waitDuration *prometheus.Desc
}

// NewDBStatsCollector creates a collector reading from stats.
func NewDBStatsCollector(stats StatsFunc) *DBStatsCollector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "db_pool", name), help, nil, nil)
	}
	return &DBStatsCollector{
		stats:        stats,
		maxOpen:      desc("max_open_connections", "Maximum number of open connections"),
		open:         desc("open_connections", "Number of established connections"),
		inUse:        desc("in_use_connections", "Number of connections currently in use"),
		idle:         desc("idle_connections", "Number of idle connections"),
		waitCount:    desc("wait_count_total", "Total number of waits for a connection"),
		waitDuration: desc("wait_duration_seconds_total", "Total time spent waiting for a connection"),
	}
}

// Describe implements prometheus.Collector.
func (c *DBStatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.maxOpen
	ch <- c.open
	ch <- c.inUse
	ch <- c.idle
	ch <- c.waitCount
	ch <- c.waitDuration
}

// Collect implements prometheus.Collector.
func (c *DBStatsCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.stats()
	ch <- prometheus.MustNewConstMetric(c.maxOpen, prometheus.GaugeValue, float64(s.MaxOpenConnections))
	ch <- prometheus.MustNewConstMetric(c.open, prometheus.GaugeValue, float64(s.OpenConnections))
	ch <- prometheus.MustNewConstMetric(c.inUse, prometheus.GaugeValue, float64(s.InUse))
	ch <- prometheus.MustNewConstMetric(c.idle, prometheus.GaugeValue, float64(s.Idle))
	ch <- prometheus.MustNewConstMetric(c.waitCount, prometheus.CounterValue, float64(s.WaitCount))
	ch <- prometheus.MustNewConstMetric(c.waitDuration, prometheus.CounterValue, s.WaitDuration.Seconds())
}

// RegisterDBStats adds a pool statistics collector to the registry.
func (m *Metrics) RegisterDBStats(stats StatsFunc) error {
	return m.registry.Register(NewDBStatsCollector(stats))
}
