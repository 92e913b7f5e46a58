package terminator

import (
	"sync/atomic"

	"github.com/mintel/healthcheck"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Healthchecks serves liveness and readiness checks
// for the serve command.
type Healthchecks struct {
	Handler healthcheck.Handler

	// Set true once the AWS clients have been created.
	AWSSessionCreated atomic.Bool

	// Set true when a pass fails, and false
	// again when one succeeds.
	LastPassFailed atomic.Bool
}

// NewHealthchecks returns a new Healthchecks.
func NewHealthchecks(r prometheus.Registerer, namespace string) *Healthchecks {
	h := &Healthchecks{
		Handler: healthcheck.NewMetricsHandler(r, namespace),
	}

	h.Handler.AddLivenessCheck("alive", func() error { return nil })

	h.Handler.AddReadinessCheck("aws-session", func() error {
		if !h.AWSSessionCreated.Load() {
			return errors.New("AWS session not yet ready")
		}
		return nil
	})

	h.Handler.AddReadinessCheck("last-pass", func() error {
		if h.LastPassFailed.Load() {
			return errors.New("last pass failed")
		}
		return nil
	})

	return h
}
