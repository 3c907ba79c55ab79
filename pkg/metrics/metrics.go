package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CollaboratorRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gobasera_collaborator_requests_total",
		Help: "Requests sent to the announcements service",
	}, []string{"operation", "outcome"})

	CollaboratorRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gobasera_collaborator_request_duration_seconds",
		Help:    "Duration of requests to the announcements service",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	LocalMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gobasera_local_mutations_total",
		Help: "Client-local changes (likes, dislikes, comments)",
	}, []string{"kind"})

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gobasera_sessions",
		Help: "Current number of live view sessions",
	})
)

// ObserveCollaboratorRequest учитывает один запрос к сервису объявлений.
func ObserveCollaboratorRequest(operation string, duration time.Duration, err error) {
	label := strings.TrimSpace(operation)
	if label == "" {
		label = "unknown"
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	CollaboratorRequests.WithLabelValues(label, outcome).Inc()
	CollaboratorRequestDuration.WithLabelValues(label).Observe(duration.Seconds())
}

func IncLocalMutation(kind string) {
	LocalMutations.WithLabelValues(kind).Inc()
}

func SetActiveSessions(count int) {
	if count < 0 {
		count = 0
	}
	ActiveSessions.Set(float64(count))
}
