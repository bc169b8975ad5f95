package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/asaskevich/EventBus"
	"github.com/jobsift/jobsift/internal/clients/enrichlayer"
	"github.com/jobsift/jobsift/internal/clients/gemini"
	"github.com/jobsift/jobsift/internal/clients/llama"
	"github.com/jobsift/jobsift/internal/config"
	"github.com/jobsift/jobsift/internal/events"
	"github.com/jobsift/jobsift/internal/extraction"
	"github.com/jobsift/jobsift/internal/logger"
	"github.com/jobsift/jobsift/internal/metrics"
	"github.com/jobsift/jobsift/internal/repositories"
	"github.com/jobsift/jobsift/internal/scrape"
	"github.com/jobsift/jobsift/internal/services"
	log "github.com/sirupsen/logrus"
)

type aiClient interface {
	GenerateResponse(ctx context.Context, request string) (string, error)
}

func newAiClient(ctx context.Context, cfg config.AIConfig) aiClient {

	switch cfg.Provider {
	case config.ProviderGemini:
		model := gemini.Model15Flash
		if cfg.GeminiModel != "" {
			model = gemini.Model(cfg.GeminiModel)
		}
		client, err := gemini.NewClient(ctx, cfg.GeminiKey, model)
		if err != nil {
			log.Fatalf("can't create gemini client: %v", err)
		}
		if cfg.MaxRequestsPerMinute > 0 {
			client.SetMinuteRateLimit(cfg.MaxRequestsPerMinute)
		}
		if cfg.MaxRequestsPerDay > 0 {
			client.SetDayRateLimit(cfg.MaxRequestsPerDay)
		}
		return client
	default:
		client := llama.NewClient(cfg.LlamaURL, cfg.LlamaModel, cfg.RequestTimeout)
		if cfg.MaxRequestsPerMinute > 0 {
			client.SetMinuteRateLimit(cfg.MaxRequestsPerMinute)
		}
		return client
	}
}

func runIngest(ctx context.Context, cfg *config.Config, dbContext *repositories.DbContext,
	jobs *repositories.Jobs, companies *repositories.Companies, bus EventBus.Bus) {

	ai := newAiClient(ctx, cfg.AI)

	enrichClient := enrichlayer.NewClient(cfg.Enrich.APIKey, cfg.Enrich.BaseURL, cfg.Enrich.RequestTimeout)
	if cfg.Enrich.MaxRequestsPerSecond > 0 {
		enrichClient.SetRateLimit(cfg.Enrich.MaxRequestsPerSecond)
	}

	insights := extraction.NewInsightExtractor(ai, cfg.AI.HeuristicFallback)
	enricher := services.NewCompanyEnricher(bus, enrichClient, insights)

	ingestor := services.NewIngestor(bus, dbContext, jobs, companies, enricher, nil)
	if !cfg.Ingest.DisableJobExtraction {
		ingestor = services.NewIngestor(bus, dbContext, jobs, companies, enricher,
			extraction.NewJobFieldExtractor(ai))
	}

	rows, err := scrape.LoadRows(cfg.Ingest.RowsFile)
	if err != nil {
		log.Fatalf("can't load scraped rows: %v", err)
	}

	if _, err = ingestor.Run(ctx, rows); err != nil {
		log.Fatalf("ingest failed: %v", err)
	}
}

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(cfg.Logger)
	defer logger.Cleanup()

	metrics.StartMetricsServer()

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	err = dbContext.Migrate()
	if err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	jobs := repositories.NewJobsRepository(dbContext.DB)
	companies := repositories.NewCompaniesRepository(dbContext.DB)

	bus := EventBus.New()
	err = bus.Subscribe(events.JobIngestedTopic, func(event events.JobIngested) {
		log.Infof("job %v ingested: %v", event.JobID, event.Url)
	})
	if err != nil {
		log.Fatalf("can't subscribe to ingest events: %v", err)
	}

	var cleaner *services.JobsCleaner
	if cfg.Ingest.JobExpirationInDays > 0 {
		if cleaner, err = services.NewJobsCleaner(jobs, cfg.Ingest.JobExpirationInDays); err != nil {
			log.Fatalf("can't create jobs cleaner: %v", err)
		}
		defer cleaner.Stop()
	}

	if cfg.Ingest.RowsFile != "" {
		runIngest(ctx, cfg, dbContext, jobs, companies, bus)
	}

	if cleaner == nil {
		return
	}

	<-ctx.Done()
	log.Info("Shutting down services...")
}
