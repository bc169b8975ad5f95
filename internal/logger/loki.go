package logger

import (
	"context"
	"path/filepath"
	"strconv"

	"github.com/jobsift/jobsift/pkg/loki"
	log "github.com/sirupsen/logrus"
)

// pusherLogger routes the loki pusher's own delivery failures back through
// logrus, tagged so the hook below can recognize and skip them.
type pusherLogger struct{}

func (pusherLogger) Error(msg string, args ...any) {
	log.WithFields(log.Fields{"args": args, "source": "loki"}).Error(msg)
}

type lokiHook struct {
	pusher   *loki.Pusher
	minLevel log.Level
}

func (h *lokiHook) Fire(entry *log.Entry) error {

	// forwarding the pusher's own error entries would loop
	if entry.Data["source"] == "loki" {
		return nil
	}

	var caller string
	if entry.Caller != nil {
		caller = filepath.Base(entry.Caller.Function) + ":" + strconv.Itoa(entry.Caller.Line)
	}

	return h.pusher.Push(loki.LogEntry{
		Level:   entry.Level.String(),
		Message: entry.Message,
		Caller:  caller,
	})
}

func (h *lokiHook) Levels() []log.Level {
	levels := make([]log.Level, 0, len(log.AllLevels))
	for _, level := range log.AllLevels {
		if level <= h.minLevel {
			levels = append(levels, level)
		}
	}
	return levels
}

func addLokiHook(ctx context.Context, cfg loki.Config, minLevel log.Level) error {
	pusher, err := loki.New(ctx, cfg, pusherLogger{})
	if err != nil {
		return err
	}
	log.AddHook(&lokiHook{pusher: pusher, minLevel: minLevel})
	log.Info("Loki log forwarding enabled")
	return nil
}
