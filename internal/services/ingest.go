package services

import (
	"context"
	"strings"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/jobsift/jobsift/internal/clients/enrichlayer"
	"github.com/jobsift/jobsift/internal/entities"
	"github.com/jobsift/jobsift/internal/events"
	"github.com/jobsift/jobsift/internal/extraction"
	"github.com/jobsift/jobsift/internal/linkedin"
	"github.com/jobsift/jobsift/internal/logger"
	"github.com/jobsift/jobsift/internal/metrics"
	"github.com/jobsift/jobsift/internal/repositories"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type jobFieldExtractor interface {
	Extract(ctx context.Context, description string) (*extraction.JobFields, error)
}

// IngestResult summarizes one ingest run.
type IngestResult struct {
	RowsReceived     int
	RowsSkipped      int
	CompaniesCreated int
	JobsCreated      int
	RowsFailed       int
}

// Ingestor runs the scrape-to-store pipeline: dedup against stored job URLs,
// enrich companies first sighted in this batch, extract structured fields
// per job, then persist. Dedup runs before any network call, so a known URL
// costs neither an enrichment nor an LLM request.
type Ingestor struct {
	bus       EventBus.Bus
	dbCtx     *repositories.DbContext
	jobs      *repositories.Jobs
	companies *repositories.Companies
	enricher  *CompanyEnricher
	extractor jobFieldExtractor
}

func NewIngestor(bus EventBus.Bus, dbCtx *repositories.DbContext, jobs *repositories.Jobs,
	companies *repositories.Companies, enricher *CompanyEnricher, extractor jobFieldExtractor) *Ingestor {

	return &Ingestor{
		bus:       bus,
		dbCtx:     dbCtx,
		jobs:      jobs,
		companies: companies,
		enricher:  enricher,
		extractor: extractor,
	}
}

func (i *Ingestor) Run(ctx context.Context, rows []entities.ScrapedRow) (*IngestResult, error) {

	startTime := time.Now()
	log.Infof("running ingest for %v scraped rows", len(rows))

	result := &IngestResult{RowsReceived: len(rows)}

	newRows, err := i.dropKnownRows(ctx, rows, result)
	if err != nil {
		return nil, err
	}

	if err = i.enrichNewCompanies(ctx, newRows, result); err != nil {
		return nil, err
	}

	if err = i.persistRows(ctx, newRows, result); err != nil {
		return nil, err
	}

	executionTime := time.Since(startTime)
	metrics.IngestDuration.Observe(executionTime.Seconds())
	log.Infof("ingest ended after %v: %v jobs created, %v companies created, %v rows skipped, %v rows failed",
		executionTime, result.JobsCreated, result.CompaniesCreated, result.RowsSkipped, result.RowsFailed)

	i.bus.Publish(events.IngestFinishedTopic, events.IngestFinished{
		RowsReceived:     result.RowsReceived,
		JobsCreated:      result.JobsCreated,
		CompaniesCreated: result.CompaniesCreated,
		RowsSkipped:      result.RowsSkipped,
	})
	return result, nil
}

// dropKnownRows removes rows whose exact job URL is already stored. Rows
// without a job URL or title never make it past this point either.
func (i *Ingestor) dropKnownRows(ctx context.Context, rows []entities.ScrapedRow,
	result *IngestResult) ([]entities.ScrapedRow, error) {

	start := time.Now()
	defer func() {
		metrics.IngestStepDuration.WithLabelValues("dedup").Observe(time.Since(start).Seconds())
	}()

	valid := lo.Filter(rows, func(row entities.ScrapedRow, _ int) bool {
		return row.JobURL != "" && row.Title != ""
	})
	if dropped := len(rows) - len(valid); dropped > 0 {
		log.Warnf("dropped %v rows without a job url or title", dropped)
		result.RowsFailed += dropped
	}

	urls := lo.Map(valid, func(row entities.ScrapedRow, _ int) string { return row.JobURL })
	existing, err := i.jobs.ExistingURLs(ctx, urls)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to check existing job urls: %v", err)
		return nil, err
	}

	newRows := lo.Filter(valid, func(row entities.ScrapedRow, _ int) bool {
		return !existing[row.JobURL]
	})

	result.RowsSkipped = len(valid) - len(newRows)
	metrics.SkippedRowsCounter.Add(float64(result.RowsSkipped))
	log.Infof("%v of %v rows are new", len(newRows), len(valid))
	return newRows, nil
}

// enrichNewCompanies resolves every distinct normalized company URL in the
// batch, enriching the ones the store has never seen. A credentials
// rejection aborts the run; any other per-company failure only costs that
// company its link.
func (i *Ingestor) enrichNewCompanies(ctx context.Context, rows []entities.ScrapedRow,
	result *IngestResult) error {

	start := time.Now()
	defer func() {
		metrics.IngestStepDuration.WithLabelValues("enrichment").Observe(time.Since(start).Seconds())
	}()

	urls := lo.Uniq(lo.FilterMap(rows, func(row entities.ScrapedRow, _ int) (string, bool) {
		normalized := normalizedCompanyURL(row)
		return normalized, normalized != ""
	}))
	if len(urls) == 0 {
		return nil
	}

	known, err := i.companies.ExistingURLs(ctx, urls)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to check existing companies: %v", err)
		return err
	}
	for url, id := range known {
		i.enricher.Remember(url, id)
	}

	missing := lo.Filter(urls, func(url string, _ int) bool {
		_, found := known[url]
		return !found
	})
	log.Infof("%v of %v companies in batch need enrichment", len(missing), len(urls))

	return i.dbCtx.RunStage(ctx, func(tx *gorm.DB) error {
		companies := i.companies.WithTx(tx)

		for _, url := range missing {
			id, err := i.enricher.Enrich(ctx, companies, url)
			if errors.Is(err, enrichlayer.ErrBadCredentials) {
				return err
			}
			if err != nil {
				log.WithField(logger.ErrorTypeField, logger.ErrorTypeEnrichApi).
					Errorf("failed to enrich company %v: %v", url, err)
				continue
			}
			if id != nil {
				result.CompaniesCreated++
			}
		}
		return nil
	})
}

// persistRows extracts structured fields and writes jobs. Each insert gets
// its own savepoint, so one bad row cannot take the stage down with it.
func (i *Ingestor) persistRows(ctx context.Context, rows []entities.ScrapedRow,
	result *IngestResult) error {

	start := time.Now()
	defer func() {
		metrics.IngestStepDuration.WithLabelValues("persistence").Observe(time.Since(start).Seconds())
	}()

	return i.dbCtx.RunStage(ctx, func(tx *gorm.DB) error {
		jobs := i.jobs.WithTx(tx)
		companies := i.companies.WithTx(tx)

		for _, row := range rows {
			job := mapRowToJob(row)

			if normalized := normalizedCompanyURL(row); normalized != "" {
				companyID, err := i.enricher.Enrich(ctx, companies, normalized)
				if errors.Is(err, enrichlayer.ErrBadCredentials) {
					return err
				}
				if err == nil {
					job.CompanyID = companyID
				}
			}

			i.extractJobFields(ctx, row, job)

			if err := jobs.Create(ctx, job); err != nil {
				log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
					Errorf("failed to create job %v: %v", row.JobURL, err)
				result.RowsFailed++
				continue
			}

			result.JobsCreated++
			metrics.IngestedJobsCounter.Inc()
			i.bus.Publish(events.JobIngestedTopic, events.JobIngested{
				JobID: job.ID,
				Title: job.Title,
				Url:   job.JobURL,
			})
		}
		return nil
	})
}

func (i *Ingestor) extractJobFields(ctx context.Context, row entities.ScrapedRow, job *entities.Job) {

	if i.extractor == nil || row.Description == nil || strings.TrimSpace(*row.Description) == "" {
		return
	}

	start := time.Now()
	fields, err := i.extractor.Extract(ctx, *row.Description)
	metrics.IngestStepDuration.WithLabelValues("extraction").Observe(time.Since(start).Seconds())

	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeAiApi).
			Errorf("failed to extract fields for job %v: %v", row.JobURL, err)
		return
	}

	fields.ApplyToJob(job)
}

func normalizedCompanyURL(row entities.ScrapedRow) string {
	if row.CompanyURL == nil {
		return ""
	}
	return linkedin.NormalizeCompanyURL(*row.CompanyURL)
}

func mapRowToJob(row entities.ScrapedRow) *entities.Job {

	job := &entities.Job{
		JobURL:                row.JobURL,
		JobURLDirect:          row.JobURLDirect,
		Title:                 row.Title,
		CompanyName:           row.Company,
		CompanyURL:            row.CompanyURL,
		Description:           row.Description,
		CompensationMin:       row.MinAmount,
		CompensationMax:       row.MaxAmount,
		CompensationCurrency:  row.Currency,
		CompensationInterval:  row.Interval,
		DatePosted:            row.DatePosted,
		IsRemote:              row.IsRemote,
		ListingType:           row.ListingType,
		JobLevel:              row.JobLevel,
		JobFunction:           row.JobFunction,
		CompanyIndustry:       row.CompanyIndustry,
		CompanyHeadquarters:   row.CompanyHeadquarters,
		CompanyEmployeesCount: row.CompanyEmployeesCount,
		ApplicantsCount:       row.ApplicantsCount,
	}

	if row.JobType != nil && *row.JobType != "" {
		job.JobType = splitCommaList(*row.JobType)
	}
	if row.Emails != nil && *row.Emails != "" {
		job.Emails = splitCommaList(*row.Emails)
	}

	job.LocationCity, job.LocationState, job.LocationCountry = splitLocation(row.Location)
	return job
}

// splitLocation breaks a scraped "City, State, Country" string into its
// parts. Two segments are read as city and state, one as just the city.
func splitLocation(location *string) (city, state, country *string) {

	if location == nil {
		return nil, nil, nil
	}

	parts := lo.FilterMap(strings.Split(*location, ","), func(part string, _ int) (string, bool) {
		trimmed := strings.TrimSpace(part)
		return trimmed, trimmed != ""
	})

	switch len(parts) {
	case 0:
		return nil, nil, nil
	case 1:
		return &parts[0], nil, nil
	case 2:
		return &parts[0], &parts[1], nil
	default:
		return &parts[0], &parts[1], &parts[2]
	}
}

func splitCommaList(raw string) entities.StringList {
	return entities.StringList(lo.FilterMap(strings.Split(raw, ","), func(part string, _ int) (string, bool) {
		trimmed := strings.TrimSpace(part)
		return trimmed, trimmed != ""
	}))
}
