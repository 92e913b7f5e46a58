// Package metrics holds utilities for instrumenting instance-terminator
// with Prometheus metrics.
package metrics

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"      // Prometheus metrics.
	"github.com/prometheus/client_golang/prometheus/push" // Push to a Pushgateway.
)

// Push pushes every metric gathered from g to the Prometheus Pushgateway
// at url, replacing any metrics previously pushed under job.
//
// Short lived invocations such as AWS Lambda functions can't be scraped,
// so they push instead.
func Push(url, job string, g prometheus.Gatherer) error {
	err := push.New(url, job).Gatherer(g).Push()
	return errors.Wrapf(err, "error pushing metrics to %s", url)
}
