// Package monitor observes the commands the mongo driver sends. It records
// prometheus metrics per command and logs each command at debug level.
package monitor

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/event"
)

const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Metrics holds the command metrics.
type Metrics struct {
	Commands *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewMetrics creates and registers the command metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Commands: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cardstore",
			Subsystem: "mongo",
			Name:      "commands_total",
			Help:      "Number of commands sent to the database",
		}, []string{"command", "status"}),
		Duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cardstore",
			Subsystem: "mongo",
			Name:      "command_duration_seconds",
			Help:      "Duration of database commands",
			Buckets:   prometheus.DefBuckets,
		}, []string{"command"}),
	}
}

// CommandMonitor returns a driver monitor feeding m and logger. Either may
// be nil.
func CommandMonitor(m *Metrics, logger logrus.FieldLogger) *event.CommandMonitor {
	return &event.CommandMonitor{
		Started: func(_ context.Context, evt *event.CommandStartedEvent) {
			if logger == nil {
				return
			}

			logger.WithFields(logrus.Fields{
				"command":    evt.CommandName,
				"database":   evt.DatabaseName,
				"request_id": evt.RequestID,
			}).Debug("mongo command started")
		},
		Succeeded: func(_ context.Context, evt *event.CommandSucceededEvent) {
			finished(m, logger, evt.CommandFinishedEvent, StatusSucceeded, "")
		},
		Failed: func(_ context.Context, evt *event.CommandFailedEvent) {
			finished(m, logger, evt.CommandFinishedEvent, StatusFailed, evt.Failure)
		},
	}
}

func finished(m *Metrics, logger logrus.FieldLogger, evt event.CommandFinishedEvent, status, failure string) {
	elapsed := time.Duration(evt.DurationNanos)
	if m != nil {
		m.Commands.WithLabelValues(evt.CommandName, status).Inc()
		m.Duration.WithLabelValues(evt.CommandName).Observe(elapsed.Seconds())
	}

	if logger == nil {
		return
	}

	entry := logger.WithFields(logrus.Fields{
		"command":    evt.CommandName,
		"request_id": evt.RequestID,
		"elapsed":    elapsed,
		"status":     status,
	})
	if failure != "" {
		entry.WithField("failure", failure).Debug("mongo command failed")
		return
	}

	entry.Debug("mongo command finished")
}
