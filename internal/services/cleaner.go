package services

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type jobCleanupRepository interface {
	RemoveOlderThan(ctx context.Context, expirationTime time.Time) (int64, error)
}

// JobsCleaner prunes postings that have sat in the store longer than the
// configured expiration, once a day at midnight.
type JobsCleaner struct {
	jobs             jobCleanupRepository
	cron             *cron.Cron
	expirationInDays int
}

func NewJobsCleaner(jobs jobCleanupRepository, expirationInDays int) (*JobsCleaner, error) {

	if expirationInDays <= 0 {
		return nil, errors.New("expiration in days must be greater than zero")
	}

	jc := &JobsCleaner{
		jobs:             jobs,
		cron:             cron.New(),
		expirationInDays: expirationInDays,
	}

	_, err := jc.cron.AddFunc("0 0 * * *", jc.cleanOldJobs)
	if err != nil {
		return nil, err
	}

	jc.cron.Start()
	log.Infof("jobs cleaner started, expiration in days: %d", jc.expirationInDays)
	return jc, nil
}

func (jc *JobsCleaner) Stop() {
	jc.cron.Stop()
}

func (jc *JobsCleaner) cleanOldJobs() {
	expirationTime := time.Now().Add(-time.Duration(jc.expirationInDays) * 24 * time.Hour)
	rowsAffected, err := jc.jobs.RemoveOlderThan(context.Background(), expirationTime)
	if err != nil {
		log.Errorf("failed to clean old jobs: %v", err)
	} else {
		log.Infof("old jobs cleaned at %v, affected rows: %v", time.Now(), rowsAffected)
	}
}
