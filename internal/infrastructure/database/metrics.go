package database

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PoolCollector exports pgxpool statistics to Prometheus.
type PoolCollector struct {
	db *PostgresDB

	acquired *prometheus.Desc
	idle     *prometheus.Desc
	total    *prometheus.Desc
	max      *prometheus.Desc
	acquires *prometheus.Desc
	canceled *prometheus.Desc
	empty    *prometheus.Desc
}

func NewPoolCollector(db *PostgresDB) *PoolCollector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc("megheza_db_pool_"+name, help, nil, nil)
	}
	return &PoolCollector{
		db:       db,
		acquired: desc("acquired_conns", "Connections currently in use"),
		idle:     desc("idle_conns", "Idle connections"),
		total:    desc("total_conns", "Total open connections"),
		max:      desc("max_conns", "Configured connection limit"),
		acquires: desc("acquire_total", "Connection acquisitions"),
		canceled: desc("canceled_acquire_total", "Acquisitions canceled by context"),
		empty:    desc("empty_acquire_total", "Acquisitions that waited on an empty pool"),
	}
}

func (c *PoolCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range []*prometheus.Desc{c.acquired, c.idle, c.total, c.max, c.acquires, c.canceled, c.empty} {
		ch <- d
	}
}

func (c *PoolCollector) Collect(ch chan<- prometheus.Metric) {
	stats, err := c.db.Stats()
	if err != nil {
		return
	}
	ch <- prometheus.MustNewConstMetric(c.acquired, prometheus.GaugeValue, float64(stats.AcquiredConns))
	ch <- prometheus.MustNewConstMetric(c.idle, prometheus.GaugeValue, float64(stats.IdleConns))
	ch <- prometheus.MustNewConstMetric(c.total, prometheus.GaugeValue, float64(stats.TotalConns))
	ch <- prometheus.MustNewConstMetric(c.max, prometheus.GaugeValue, float64(stats.MaxConns))
	ch <- prometheus.MustNewConstMetric(c.acquires, prometheus.CounterValue, float64(stats.AcquireCount))
	ch <- prometheus.MustNewConstMetric(c.canceled, prometheus.CounterValue, float64(stats.CanceledAcquireCount))
	ch <- prometheus.MustNewConstMetric(c.empty, prometheus.CounterValue, float64(stats.EmptyAcquireCount))
}
