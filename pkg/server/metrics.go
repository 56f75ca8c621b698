package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "protod_requests_total",
		Help: "Requests handled, by plugin and request tag",
	}, []string{"plugin", "request"})

	requestErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "protod_request_errors_total",
		Help: "Requests answered with an error envelope, by plugin and request tag",
	}, []string{"plugin", "request"})
)
