package streets

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const resultLabel = "result"

var (
	pathNodesAdded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "procede_dyn_astar_nodes_added_total",
		Help: "The number of graph nodes materialised by path finding.",
	})

	pathSearches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "procede_dyn_astar_searches_total",
		Help: "The number of path searches run.",
	}, []string{resultLabel})
)

func instrumentNodeAdded() {
	pathNodesAdded.Inc()
}

func instrumentSearch(found bool) {
	result := "found"
	if !found {
		result = "unreachable"
	}
	pathSearches.With(prometheus.Labels{resultLabel: result}).Inc()
}
