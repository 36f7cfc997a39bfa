package metrics

import "github.com/prometheus/client_golang/prometheus"

// ChatMetrics exposes counters/gauges/histograms for widget sessions.
type ChatMetrics struct {
	messagesTotal  *prometheus.CounterVec
	activeSessions prometheus.Gauge
	replyLatency   prometheus.Histogram
}

func NewChatMetrics(reg prometheus.Registerer) *ChatMetrics {
	m := &ChatMetrics{
		messagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "frontdesk",
			Subsystem: "webchat",
			Name:      "messages_total",
			Help:      "Total chat messages by sender",
		}, []string{"sender"}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "frontdesk",
			Subsystem: "webchat",
			Name:      "active_sessions",
			Help:      "Currently connected widget sessions",
		}),
		replyLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "frontdesk",
			Subsystem: "webchat",
			Name:      "reply_latency_seconds",
			Help:      "Time from user input to visible bot reply",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.messagesTotal, m.activeSessions, m.replyLatency)
	return m
}

func (m *ChatMetrics) ObserveMessage(sender string) {
	if m == nil {
		return
	}
	m.messagesTotal.WithLabelValues(sender).Inc()
}

func (m *ChatMetrics) SessionOpened() {
	if m == nil {
		return
	}
	m.activeSessions.Inc()
}

func (m *ChatMetrics) SessionClosed() {
	if m == nil {
		return
	}
	m.activeSessions.Dec()
}

func (m *ChatMetrics) ObserveReplyLatency(seconds float64) {
	if m == nil {
		return
	}
	m.replyLatency.Observe(seconds)
}

// LeadsMetrics counts lead-capture outcomes.
type LeadsMetrics struct {
	createdTotal *prometheus.CounterVec
}

func NewLeadsMetrics(reg prometheus.Registerer) *LeadsMetrics {
	m := &LeadsMetrics{
		createdTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "frontdesk",
			Subsystem: "leads",
			Name:      "created_total",
			Help:      "Total lead creation attempts",
		}, []string{"status", "source"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.createdTotal)
	return m
}

func (m *LeadsMetrics) ObserveCreated(status, source string) {
	if m == nil {
		return
	}
	m.createdTotal.WithLabelValues(status, source).Inc()
}
