package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes counters for the webhook message flows.
type Metrics struct {
	inboundTotal  *prometheus.CounterVec
	outboundTotal *prometheus.CounterVec
	leadsTotal    *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		inboundTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rerafybot",
			Subsystem: "webhook",
			Name:      "inbound_events_total",
			Help:      "Inbound webhook events by normalized kind",
		}, []string{"kind"}),
		outboundTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rerafybot",
			Subsystem: "whatsapp",
			Name:      "outbound_messages_total",
			Help:      "Outbound WhatsApp sends by message type and status",
		}, []string{"type", "status"}),
		leadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rerafybot",
			Subsystem: "leads",
			Name:      "forwarded_total",
			Help:      "Lead records forwarded to the collector by status",
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.inboundTotal, m.outboundTotal, m.leadsTotal)
	return m
}

func (m *Metrics) ObserveInbound(kind string) {
	if m == nil {
		return
	}
	m.inboundTotal.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveOutbound(msgType, status string) {
	if m == nil {
		return
	}
	m.outboundTotal.WithLabelValues(msgType, status).Inc()
}

func (m *Metrics) ObserveLead(status string) {
	if m == nil {
		return
	}
	m.leadsTotal.WithLabelValues(status).Inc()
}
