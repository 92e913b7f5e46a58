package mocks

import (
	"github.com/prometheus/client_golang/prometheus" // Prometheus metrics.
	"github.com/stretchr/testify/mock"               // Mocking for tests.
)

// ObserverVec is a mock prometheus.ObserverVec.
// Only With is implemented.
type ObserverVec struct {
	prometheus.ObserverVec
	mock.Mock
}

// With returns the Observer given to Return.
func (m *ObserverVec) With(lbls prometheus.Labels) prometheus.Observer {
	ret := m.Called(lbls)
	return ret.Get(0).(prometheus.Observer)
}
