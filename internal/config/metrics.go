package config

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DaemonInfo = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "protod_build_info",
		Help: "Protocol daemon build information",
		ConstLabels: map[string]string{
			"version":    Version,
			"commit":     Commit,
			"build_date": BuildDate,
		},
	})
)
