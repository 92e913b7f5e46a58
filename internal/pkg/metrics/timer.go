package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// VecTimer times a function, like prometheus.Timer, but observes into
// a prometheus.ObserverVec with labels chosen when the timer stops.
type VecTimer struct {
	begin time.Time
	vec   prometheus.ObserverVec
}

// NewVecTimer starts a new VecTimer. Typical use:
//
//	timer := NewVecTimer(myHistogramVec)
//	defer func() { timer.ObserveErr(err) }()
func NewVecTimer(v prometheus.ObserverVec) *VecTimer {
	return &VecTimer{
		begin: time.Now(),
		vec:   v,
	}
}

// ObserveWith observes the seconds since the VecTimer started with the
// given labels, and returns the duration.
func (t *VecTimer) ObserveWith(labels prometheus.Labels) time.Duration {
	d := time.Since(t.begin)
	if t.vec != nil {
		t.vec.With(labels).Observe(d.Seconds())
	}
	return d
}

// ObserveErr observes the seconds since the VecTimer started, with
// LabelStatus set to "success" or "error" depending on err.
func (t *VecTimer) ObserveErr(err error) time.Duration {
	status := "success"
	if err != nil {
		status = "error"
	}
	return t.ObserveWith(prometheus.Labels{LabelStatus: status})
}
