/* SPDX-License-Identifier: Apache-2.0 */
/* Copyright(c) 2024-2026 Pure Storage, Inc. */

package flasharray

import (
	"github.com/prometheus/client_golang/prometheus"
)

// RequestsTotal counts every request issued against an array, partitioned by
// HTTP method and response status code.  The counters are plain collectors so
// that the operator entrypoint can register them on whichever registry backs
// its metrics endpoint.
var RequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "flasharray_requests_total",
		Help: "Number of REST requests issued to FlashArray endpoints.",
	},
	[]string{"method", "code"},
)

// RequestErrorsTotal counts requests that failed before a response was
// received, partitioned by HTTP method.
var RequestErrorsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "flasharray_request_errors_total",
		Help: "Number of FlashArray REST requests that failed without a response.",
	},
	[]string{"method"},
)

// Collectors returns the client collectors for registration.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{RequestsTotal, RequestErrorsTotal}
}
