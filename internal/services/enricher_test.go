package services

import (
	"context"
	"path/filepath"
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

type mockProfileClient struct {
	mock.Mock
}

func (m *mockProfileClient) GetCompany(ctx context.Context, linkedinURL string) (*enrichlayer.CompanyProfile, error) {
	args := m.Called(ctx, linkedinURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*enrichlayer.CompanyProfile), args.Error(1)
}

type mockInsightExtractor struct {
	mock.Mock
}

func (m *mockInsightExtractor) Extract(ctx context.Context, description string) extraction.CompanyInsights {
	args := m.Called(ctx, description)
	return args.Get(0).(extraction.CompanyInsights)
}

func newTestDb(t *testing.T) *repositories.DbContext {
	t.Helper()

	dbCtx, err := repositories.NewDbContext(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, dbCtx.Migrate())

	t.Cleanup(func() { _ = dbCtx.Close() })
	return dbCtx
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }

const acmeURL = "https://www.linkedin.com/company/acme/"

func entitiesCompany(url, name string) *entities.Company {
	return &entities.Company{LinkedinURL: url, Name: name}
}

func acmeProfile() *enrichlayer.CompanyProfile {
	return &enrichlayer.CompanyProfile{
		Name:                  "Acme",
		Description:           strPtr("Acme builds its own SaaS platform."),
		CompanySize:           []*int{intPtr(11), intPtr(50)},
		CompanySizeOnLinkedin: intPtr(42),
		HQ:                    &enrichlayer.Address{Country: strPtr("US"), City: strPtr("Austin")},
	}
}

func Test_Enricher_CreatesCompanyOnFirstSighting(t *testing.T) {

	dbCtx := newTestDb(t)
	companies := repositories.NewCompaniesRepository(dbCtx.DB)

	client := &mockProfileClient{}
	client.On("GetCompany", mock.Anything, acmeURL).Return(acmeProfile(), nil).Once()

	insights := &mockInsightExtractor{}
	insights.On("Extract", mock.Anything, mock.Anything).
		Return(extraction.CompanyInsights{HasOwnProducts: boolPtr(true)}).Once()

	enricher := NewCompanyEnricher(EventBus.New(), client, insights)

	id, err := enricher.Enrich(context.Background(), companies, acmeURL)
	require.NoError(t, err)
	require.NotNil(t, id)

	stored, err := companies.GetByURL(context.Background(), acmeURL)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Acme", stored.Name)
	assert.Equal(t, 11, *stored.CompanySizeMin)
	assert.Equal(t, 50, *stored.CompanySizeMax)
	assert.Equal(t, 42, *stored.CompanySizeOnLinkedin)
	assert.Equal(t, "Austin", *stored.HQCity)
	assert.Equal(t, true, *stored.HasOwnProducts)
	assert.Nil(t, stored.IsRecruitingCompany)

	client.AssertExpectations(t)
	insights.AssertExpectations(t)
}

func Test_Enricher_SecondSightingHitsSessionCache(t *testing.T) {

	dbCtx := newTestDb(t)
	companies := repositories.NewCompaniesRepository(dbCtx.DB)

	client := &mockProfileClient{}
	client.On("GetCompany", mock.Anything, acmeURL).Return(acmeProfile(), nil).Once()

	insights := &mockInsightExtractor{}
	insights.On("Extract", mock.Anything, mock.Anything).Return(extraction.CompanyInsights{}).Once()

	enricher := NewCompanyEnricher(EventBus.New(), client, insights)

	first, err := enricher.Enrich(context.Background(), companies, acmeURL)
	require.NoError(t, err)
	second, err := enricher.Enrich(context.Background(), companies, acmeURL)
	require.NoError(t, err)

	assert.Equal(t, *first, *second)
	client.AssertNumberOfCalls(t, "GetCompany", 1)
}

func Test_Enricher_StoredCompanyNeedsNoProfileCall(t *testing.T) {

	dbCtx := newTestDb(t)
	companies := repositories.NewCompaniesRepository(dbCtx.DB)

	existing := entitiesCompany(acmeURL, "Acme")
	require.NoError(t, companies.Create(context.Background(), existing))

	client := &mockProfileClient{}
	enricher := NewCompanyEnricher(EventBus.New(), client, &mockInsightExtractor{})

	id, err := enricher.Enrich(context.Background(), companies, acmeURL)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, *id)
	client.AssertNotCalled(t, "GetCompany")
}

func Test_Enricher_NoProfileDataIsNotAnError(t *testing.T) {

	dbCtx := newTestDb(t)
	companies := repositories.NewCompaniesRepository(dbCtx.DB)

	client := &mockProfileClient{}
	client.On("GetCompany", mock.Anything, acmeURL).Return(nil, enrichlayer.ErrNotFound).Once()

	enricher := NewCompanyEnricher(EventBus.New(), client, &mockInsightExtractor{})

	id, err := enricher.Enrich(context.Background(), companies, acmeURL)
	assert.NoError(t, err)
	assert.Nil(t, id)

	// the miss is remembered for the rest of the session
	id, err = enricher.Enrich(context.Background(), companies, acmeURL)
	assert.NoError(t, err)
	assert.Nil(t, id)
	client.AssertNumberOfCalls(t, "GetCompany", 1)
}

func Test_Enricher_BadCredentialsPropagate(t *testing.T) {

	dbCtx := newTestDb(t)
	companies := repositories.NewCompaniesRepository(dbCtx.DB)

	client := &mockProfileClient{}
	client.On("GetCompany", mock.Anything, acmeURL).Return(nil, enrichlayer.ErrBadCredentials)

	enricher := NewCompanyEnricher(EventBus.New(), client, &mockInsightExtractor{})

	_, err := enricher.Enrich(context.Background(), companies, acmeURL)
	assert.ErrorIs(t, err, enrichlayer.ErrBadCredentials)
}
