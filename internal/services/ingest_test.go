package services

import (
	"context"
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/jobsift/jobsift/internal/clients/enrichlayer"
	"github.com/jobsift/jobsift/internal/entities"
	"github.com/jobsift/jobsift/internal/extraction"
	"github.com/jobsift/jobsift/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockFieldExtractor struct {
	mock.Mock
}

func (m *mockFieldExtractor) Extract(ctx context.Context, description string) (*extraction.JobFields, error) {
	args := m.Called(ctx, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*extraction.JobFields), args.Error(1)
}

type ingestFixture struct {
	dbCtx     *repositories.DbContext
	jobs      *repositories.Jobs
	companies *repositories.Companies
	client    *mockProfileClient
	extractor *mockFieldExtractor
	ingestor  *Ingestor
}

func newIngestFixture(t *testing.T) *ingestFixture {
	t.Helper()

	dbCtx := newTestDb(t)
	jobs := repositories.NewJobsRepository(dbCtx.DB)
	companies := repositories.NewCompaniesRepository(dbCtx.DB)

	client := &mockProfileClient{}
	insights := &mockInsightExtractor{}
	insights.On("Extract", mock.Anything, mock.Anything).Return(extraction.CompanyInsights{}).Maybe()
	extractor := &mockFieldExtractor{}

	bus := EventBus.New()
	enricher := NewCompanyEnricher(bus, client, insights)

	return &ingestFixture{
		dbCtx:     dbCtx,
		jobs:      jobs,
		companies: companies,
		client:    client,
		extractor: extractor,
		ingestor:  NewIngestor(bus, dbCtx, jobs, companies, enricher, extractor),
	}
}

func scrapedRow(jobURL, title string) entities.ScrapedRow {
	return entities.ScrapedRow{JobURL: jobURL, Title: title}
}

func Test_Ingest_PersistsNewRowsAndLinksCompanies(t *testing.T) {

	f := newIngestFixture(t)

	f.client.On("GetCompany", mock.Anything, acmeURL).Return(acmeProfile(), nil).Once()

	description := "We are hiring a backend engineer."
	f.extractor.On("Extract", mock.Anything, description).
		Return(&extraction.JobFields{
			Technologies:  []string{"Go"},
			JobCategories: []string{"Backend"},
		}, nil).Twice()

	// two differently spelled references to the same company
	rowA := scrapedRow("https://example.com/jobs/1", "Backend Engineer")
	rowA.CompanyURL = strPtr("LinkedIn.com/company/acme?trk=feed")
	rowA.Description = &description
	rowB := scrapedRow("https://example.com/jobs/2", "Senior Backend Engineer")
	rowB.CompanyURL = strPtr("https://www.linkedin.com/company/acme/")
	rowB.Description = &description

	result, err := f.ingestor.Run(context.Background(), []entities.ScrapedRow{rowA, rowB})
	require.NoError(t, err)

	assert.Equal(t, 2, result.RowsReceived)
	assert.Equal(t, 2, result.JobsCreated)
	assert.Equal(t, 1, result.CompaniesCreated)
	assert.Equal(t, 0, result.RowsSkipped)
	assert.Equal(t, 0, result.RowsFailed)

	f.client.AssertNumberOfCalls(t, "GetCompany", 1)

	listed, err := f.jobs.List(context.Background(), repositories.ListFilter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, listed.Items, 2)
	for _, job := range listed.Items {
		require.NotNil(t, job.CompanyID)
		assert.Equal(t, entities.StringList{"Go"}, job.Technologies)
	}
}

func Test_Ingest_KnownURLsCostNoEnrichmentOrExtraction(t *testing.T) {

	f := newIngestFixture(t)

	description := "Existing posting."
	row := scrapedRow("https://example.com/jobs/1", "Engineer")
	row.CompanyURL = strPtr(acmeURL)
	row.Description = &description

	require.NoError(t, f.jobs.Create(context.Background(), &entities.Job{
		JobURL: row.JobURL, Title: row.Title,
	}))

	result, err := f.ingestor.Run(context.Background(), []entities.ScrapedRow{row})
	require.NoError(t, err)

	assert.Equal(t, 1, result.RowsSkipped)
	assert.Equal(t, 0, result.JobsCreated)
	f.client.AssertNotCalled(t, "GetCompany")
	f.extractor.AssertNotCalled(t, "Extract")
}

func Test_Ingest_RowsWithoutRequiredFieldsAreDropped(t *testing.T) {

	f := newIngestFixture(t)

	result, err := f.ingestor.Run(context.Background(), []entities.ScrapedRow{
		scrapedRow("", "No URL"),
		scrapedRow("https://example.com/jobs/1", ""),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.RowsFailed)
	assert.Equal(t, 0, result.JobsCreated)
}

func Test_Ingest_ExtractionFailureStillPersistsJob(t *testing.T) {

	f := newIngestFixture(t)

	description := "Unparseable description."
	row := scrapedRow("https://example.com/jobs/1", "Engineer")
	row.Description = &description

	f.extractor.On("Extract", mock.Anything, description).
		Return(nil, assert.AnError).Once()

	result, err := f.ingestor.Run(context.Background(), []entities.ScrapedRow{row})
	require.NoError(t, err)
	assert.Equal(t, 1, result.JobsCreated)

	listed, err := f.jobs.List(context.Background(), repositories.ListFilter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, listed.Items, 1)
	assert.Nil(t, listed.Items[0].Technologies)
	assert.Nil(t, listed.Items[0].Summary)
}

func Test_Ingest_EnrichmentFailureOnlyCostsTheLink(t *testing.T) {

	f := newIngestFixture(t)

	f.client.On("GetCompany", mock.Anything, acmeURL).Return(nil, enrichlayer.ErrRateLimited)

	row := scrapedRow("https://example.com/jobs/1", "Engineer")
	row.CompanyURL = strPtr(acmeURL)

	result, err := f.ingestor.Run(context.Background(), []entities.ScrapedRow{row})
	require.NoError(t, err)
	assert.Equal(t, 1, result.JobsCreated)
	assert.Equal(t, 0, result.CompaniesCreated)

	listed, err := f.jobs.List(context.Background(), repositories.ListFilter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, listed.Items, 1)
	assert.Nil(t, listed.Items[0].CompanyID)
}

func Test_Ingest_BadCredentialsAbortTheRun(t *testing.T) {

	f := newIngestFixture(t)

	f.client.On("GetCompany", mock.Anything, acmeURL).Return(nil, enrichlayer.ErrBadCredentials)

	row := scrapedRow("https://example.com/jobs/1", "Engineer")
	row.CompanyURL = strPtr(acmeURL)

	_, err := f.ingestor.Run(context.Background(), []entities.ScrapedRow{row})
	assert.ErrorIs(t, err, enrichlayer.ErrBadCredentials)

	listed, err := f.jobs.List(context.Background(), repositories.ListFilter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, listed.Items)
}

func Test_Ingest_SecondRunIsIdempotent(t *testing.T) {

	f := newIngestFixture(t)

	rows := []entities.ScrapedRow{
		scrapedRow("https://example.com/jobs/1", "Engineer"),
		scrapedRow("https://example.com/jobs/2", "Senior Engineer"),
	}

	first, err := f.ingestor.Run(context.Background(), rows)
	require.NoError(t, err)
	assert.Equal(t, 2, first.JobsCreated)

	second, err := f.ingestor.Run(context.Background(), rows)
	require.NoError(t, err)
	assert.Equal(t, 0, second.JobsCreated)
	assert.Equal(t, 2, second.RowsSkipped)
}

func Test_MapRowToJob_SplitsLocationAndLists(t *testing.T) {

	row := scrapedRow("https://example.com/jobs/1", "Engineer")
	row.Location = strPtr("Austin, TX, US")
	row.JobType = strPtr("fulltime, contract")
	row.Emails = strPtr("jobs@acme.example, hr@acme.example")

	job := mapRowToJob(row)
	assert.Equal(t, "Austin", *job.LocationCity)
	assert.Equal(t, "TX", *job.LocationState)
	assert.Equal(t, "US", *job.LocationCountry)
	assert.Equal(t, entities.StringList{"fulltime", "contract"}, job.JobType)
	assert.Equal(t, entities.StringList{"jobs@acme.example", "hr@acme.example"}, job.Emails)

	row.Location = strPtr("Berlin")
	job = mapRowToJob(row)
	assert.Equal(t, "Berlin", *job.LocationCity)
	assert.Nil(t, job.LocationState)
	assert.Nil(t, job.LocationCountry)
}
