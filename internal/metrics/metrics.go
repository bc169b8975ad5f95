package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobsift_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	IngestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "jobsift_ingest_duration_seconds",
			Help:    "Duration of each ingest run in seconds.",
			Buckets: []float64{60, 300, 900, 1800, 3600},
		},
	)
	IngestStepDuration = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "jobsift_ingest_step_duration_seconds",
			Help:       "Duration of each step in the ingest pipeline.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"step"},
	)
	IngestedJobsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobsift_jobs_ingested_total",
			Help: "Total number of jobs persisted by ingest.",
		},
	)
	SkippedRowsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobsift_rows_skipped_total",
			Help: "Total number of scraped rows skipped as duplicates.",
		},
	)
	EnrichedCompaniesCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobsift_companies_enriched_total",
			Help: "Total number of companies enriched via the profile API.",
		},
	)
	InsightFallbacksCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobsift_insight_fallbacks_total",
			Help: "Total number of company insights decided by heuristics instead of AI.",
		},
	)
)

func StartMetricsServer() {

	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(IngestDuration)
	prometheus.MustRegister(IngestStepDuration)
	prometheus.MustRegister(IngestedJobsCounter)
	prometheus.MustRegister(SkippedRowsCounter)
	prometheus.MustRegister(EnrichedCompaniesCounter)
	prometheus.MustRegister(InsightFallbacksCounter)

	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(":8080", nil))
	}()
}
