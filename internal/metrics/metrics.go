package metrics

import (
	"errors"
	"net/http"

	"foodgram/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "foodgram"

var (
	Registry = prometheus.NewRegistry()

	RelationToggles = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "relation_toggles_total",
		Help:      "Relation toggle calls by kind, direction and outcome.",
	}, []string{"kind", "direction", "outcome"})

	ShoppingLists = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shopping_lists_total",
		Help:      "Shopping list builds by outcome.",
	}, []string{"outcome"})

	ShortLinkResolutions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "short_link_resolutions_total",
		Help:      "Short link resolutions by outcome.",
	}, []string{"outcome"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		RelationToggles,
		ShoppingLists,
		ShortLinkResolutions,
	)
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Outcome labels err as "ok", its domain code, or "error" for server faults.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		return string(domainErr.Code)
	}
	return "error"
}
