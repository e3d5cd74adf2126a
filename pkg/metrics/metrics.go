// Package metrics expone los colectores Prometheus de la API en un registro propio.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Resultados usados como etiqueta outcome.
const (
	OutcomeOK          = "ok"
	OutcomeRejected    = "rejected"
	OutcomeBusy        = "busy"
	OutcomeUnavailable = "unavailable"
	OutcomeError       = "error"
)

var (
	// Registry contiene los colectores de la aplicación.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bancassurance",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total de peticiones HTTP atendidas.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bancassurance",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duración de las peticiones HTTP.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "route"},
	)

	walletRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bancassurance",
			Subsystem: "wallet",
			Name:      "requests_total",
			Help:      "Solicitudes a la billetera por operación y resultado.",
		},
		[]string{"operation", "outcome"},
	)

	policyMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bancassurance",
			Subsystem: "admin",
			Name:      "policy_mutations_total",
			Help:      "Altas, ediciones y bajas de pólizas administrables.",
		},
		[]string{"action", "outcome"},
	)

	claimsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bancassurance",
			Subsystem: "bank",
			Name:      "claims_total",
			Help:      "Reclamos procesados sobre pólizas de cliente.",
		},
		[]string{"outcome"},
	)

	applicationTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bancassurance",
			Subsystem: "enrollment",
			Name:      "stage_transitions_total",
			Help:      "Transiciones de etapa de las solicitudes de póliza.",
		},
		[]string{"stage"},
	)

	paymentsUSD = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "bancassurance",
			Subsystem: "enrollment",
			Name:      "premiums_paid_usd_total",
			Help:      "Suma de primas pagadas en USD.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		walletRequests,
		policyMutations,
		claimsProcessed,
		applicationTransitions,
		paymentsUSD,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler devuelve el handler HTTP que expone el registro.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest registra una petición atendida. route debe ser el patrón, no la ruta con IDs.
func RecordHTTPRequest(method, route string, status int, d time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// RecordWallet registra una solicitud a la billetera.
func RecordWallet(operation, outcome string) {
	walletRequests.WithLabelValues(operation, outcome).Inc()
}

// RecordPolicyMutation registra create/update/delete de pólizas administrables.
func RecordPolicyMutation(action, outcome string) {
	policyMutations.WithLabelValues(action, outcome).Inc()
}

// RecordClaim registra el resultado de un reclamo.
func RecordClaim(outcome string) {
	claimsProcessed.WithLabelValues(outcome).Inc()
}

// RecordStage registra la llegada de una solicitud a una etapa.
func RecordStage(stage string) {
	applicationTransitions.WithLabelValues(stage).Inc()
}

// RecordPremiumPaid suma una prima pagada.
func RecordPremiumPaid(usd float64) {
	paymentsUSD.Add(usd)
}
