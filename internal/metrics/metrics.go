// Package metrics - прометеевские метрики сервиса.
// Все методы безопасны на nil-получателе: сервис и тесты могут работать без метрик.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pribylovaa/commentary/internal/models"
)

const namespace = "commentary"

type Metrics struct {
	created      *prometheus.CounterVec
	deleted      *prometheus.CounterVec
	reactions    *prometheus.CounterVec
	conflicts    prometheus.Counter
	cascadeHops  prometheus.Histogram
	reorderKeys  prometheus.Counter
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New создаёт и регистрирует метрики в reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		created: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comments_created_total",
			Help:      "Created comments by kind (root/reply).",
		}, []string{"kind"}),
		deleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comments_deleted_total",
			Help:      "Soft-deleted comments by resulting state.",
		}, []string{"state"}),
		reactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reactions_total",
			Help:      "Reaction toggles by action and type.",
		}, []string{"action", "type"}),
		conflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sort_key_conflicts_total",
			Help:      "Sort key collisions detected on create.",
		}),
		cascadeHops: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cascade_hops",
			Help:      "Ancestors moved to deleted_leaf by one cascade.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
		}),
		reorderKeys: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reorder_updated_keys_total",
			Help:      "Sort keys rewritten by reorder runs.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}

	reg.MustRegister(
		m.created, m.deleted, m.reactions, m.conflicts,
		m.cascadeHops, m.reorderKeys, m.httpRequests, m.httpDuration,
	)

	return m
}

func (m *Metrics) CommentCreated(reply bool) {
	if m == nil {
		return
	}

	kind := "root"
	if reply {
		kind = "reply"
	}
	m.created.WithLabelValues(kind).Inc()
}

func (m *Metrics) CommentDeleted(state models.CommentState) {
	if m == nil {
		return
	}
	m.deleted.WithLabelValues(string(state)).Inc()
}

func (m *Metrics) Reaction(action models.ReactionAction, t models.ReactionType) {
	if m == nil {
		return
	}
	m.reactions.WithLabelValues(string(action), string(t)).Inc()
}

func (m *Metrics) SortKeyConflict() {
	if m == nil {
		return
	}
	m.conflicts.Inc()
}

func (m *Metrics) Cascade(hops int) {
	if m == nil {
		return
	}
	m.cascadeHops.Observe(float64(hops))
}

func (m *Metrics) Reordered(updated int) {
	if m == nil {
		return
	}
	m.reorderKeys.Add(float64(updated))
}

// HTTPRequest учитывает один обработанный HTTP-запрос. route - шаблон chi, а не сырой путь.
func (m *Metrics) HTTPRequest(route, method string, status int, took time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(took.Seconds())
}
