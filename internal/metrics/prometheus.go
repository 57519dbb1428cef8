package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	loginCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "staffhub_logins_total",
		Help: "Total number of successful operator logins",
	})
	refreshCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "staffhub_token_refreshes_total",
		Help: "Total number of successful access token refreshes",
	})
	uploadCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "staffhub_avatar_uploads_total",
		Help: "Total number of avatar images pushed to the media host",
	})
)

func Handler() http.Handler {
	return promhttp.Handler()
}

func RecordLogin() {
	loginCounter.Inc()
}

func RecordRefresh() {
	refreshCounter.Inc()
}

func RecordUpload() {
	uploadCounter.Inc()
}
