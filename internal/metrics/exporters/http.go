// Package exporters serves acquisition metrics over HTTP.
package exporters

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPHandler returns the Prometheus metrics handler for all
// promauto-registered collectors.
func HTTPHandler() http.Handler {
	return promhttp.Handler()
}
