package logger

import (
	"github.com/jobsift/jobsift/internal/metrics"
	log "github.com/sirupsen/logrus"
)

// errorCounterHook feeds every error-level entry into the errors-by-type
// counter, keyed by the entry's error_type field.
type errorCounterHook struct{}

func (errorCounterHook) Fire(entry *log.Entry) error {

	errorType, ok := entry.Data[ErrorTypeField].(string)
	if !ok {
		errorType = "unknown"
	}
	metrics.ErrorsCounter.WithLabelValues(errorType).Inc()
	return nil
}

func (errorCounterHook) Levels() []log.Level {
	return []log.Level{log.ErrorLevel, log.FatalLevel, log.PanicLevel}
}

func addPrometheusHook() {
	log.AddHook(errorCounterHook{})
	log.Info("Prometheus error counting enabled")
}
