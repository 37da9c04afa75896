// Package observability expone las métricas Prometheus de la API.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	appbilling "github.com/jhoicas/ephone-api/internal/application/billing"
)

var _ appbilling.ApprovalMetrics = (*Metrics)(nil)

// Metrics agrupa las métricas de la aplicación en un registry propio.
// Un registry privado evita pánicos por colectores duplicados cuando se crea más de una vez (tests).
type Metrics struct {
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
	approvals       *prometheus.CounterVec
	approvedAmount  prometheus.Counter
	eventsPublished *prometheus.CounterVec
}

// NewMetrics crea el registry y registra todas las métricas, más las de Go y del proceso.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ephone_http_request_duration_seconds",
				Help:    "Duración de las peticiones HTTP por ruta.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ephone_http_requests_total",
				Help: "Peticiones HTTP por ruta y código.",
			},
			[]string{"method", "route", "status"},
		),
		approvals: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ephone_invoice_approvals_total",
				Help: "Intentos de aprobación de facturas por resultado.",
			},
			[]string{"result"},
		),
		approvedAmount: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "ephone_invoice_approved_amount_total",
				Help: "Suma de los totales aprobados.",
			},
		),
		eventsPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ephone_events_published_total",
				Help: "Eventos de aprobación publicados por resultado.",
			},
			[]string{"result"},
		),
	}
}

// ObserveApproval registra el resultado de un intento de aprobación.
func (m *Metrics) ObserveApproval(result string, total decimal.Decimal) {
	m.approvals.WithLabelValues(result).Inc()
	if result == appbilling.ApprovalResultApproved {
		m.approvedAmount.Add(total.InexactFloat64())
	}
}

// ObserveRequest registra una petición HTTP terminada.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	m.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// ObserveEvent registra la publicación de un evento ("ok" o "error").
func (m *Metrics) ObserveEvent(result string) {
	m.eventsPublished.WithLabelValues(result).Inc()
}

// Handler expone el registry en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
