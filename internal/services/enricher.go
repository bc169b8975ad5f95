package services

import (
	"context"
	"encoding/json"

	"github.com/asaskevich/EventBus"
	"github.com/jobsift/jobsift/internal/clients/enrichlayer"
	"github.com/jobsift/jobsift/internal/entities"
	"github.com/jobsift/jobsift/internal/events"
	"github.com/jobsift/jobsift/internal/extraction"
	"github.com/jobsift/jobsift/internal/logger"
	"github.com/jobsift/jobsift/internal/metrics"
	"github.com/jobsift/jobsift/internal/repositories"
	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type profileClient interface {
	GetCompany(ctx context.Context, linkedinURL string) (*enrichlayer.CompanyProfile, error)
}

type insightExtractor interface {
	Extract(ctx context.Context, description string) extraction.CompanyInsights
}

// noProfileData marks normalized URLs the profile API answered 404 for, so
// one run never asks about the same company twice.
const noProfileData = -1

// CompanyEnricher resolves a normalized company URL to a stored company row,
// calling the profile API and the insight extractor only for companies the
// store has never seen.
type CompanyEnricher struct {
	bus      EventBus.Bus
	client   profileClient
	insights insightExtractor
	cache    *gocache.Cache
}

func NewCompanyEnricher(bus EventBus.Bus, client profileClient, insights insightExtractor) *CompanyEnricher {
	return &CompanyEnricher{
		bus:      bus,
		client:   client,
		insights: insights,
		cache:    gocache.New(gocache.NoExpiration, gocache.NoExpiration),
	}
}

// Remember seeds the session cache with already-stored companies, letting
// ingest skip lookups for URLs it resolved in bulk.
func (e *CompanyEnricher) Remember(normalizedURL string, companyID int) {
	e.cache.Set(normalizedURL, companyID, gocache.NoExpiration)
}

// Enrich returns the company id for a normalized URL, creating the row on
// first sighting. A nil id with a nil error means the profile API has no
// data; enrichlayer.ErrBadCredentials is returned as-is so the caller can
// abort the whole run.
func (e *CompanyEnricher) Enrich(ctx context.Context, companies *repositories.Companies,
	normalizedURL string) (*int, error) {

	if cached, found := e.cache.Get(normalizedURL); found {
		id := cached.(int)
		if id == noProfileData {
			return nil, nil
		}
		return &id, nil
	}

	existing, err := companies.GetByURL(ctx, normalizedURL)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		e.Remember(normalizedURL, existing.ID)
		return &existing.ID, nil
	}

	profile, err := e.client.GetCompany(ctx, normalizedURL)
	if err != nil {
		if errors.Is(err, enrichlayer.ErrNotFound) {
			e.Remember(normalizedURL, noProfileData)
			return nil, nil
		}
		return nil, err
	}

	company := e.mapProfile(ctx, normalizedURL, profile)
	if err = companies.Create(ctx, company); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to create company %v: %v", normalizedURL, err)
		return nil, err
	}

	e.Remember(normalizedURL, company.ID)
	metrics.EnrichedCompaniesCounter.Inc()
	e.bus.Publish(events.CompanyEnrichedTopic, events.CompanyEnriched{
		CompanyID:   company.ID,
		Name:        company.Name,
		LinkedinUrl: normalizedURL,
	})
	return &company.ID, nil
}

func (e *CompanyEnricher) mapProfile(ctx context.Context, normalizedURL string,
	profile *enrichlayer.CompanyProfile) *entities.Company {

	company := &entities.Company{
		LinkedinURL:             normalizedURL,
		LinkedinInternalID:      profile.LinkedinInternalID,
		Name:                    profile.Name,
		Description:             profile.Description,
		Website:                 profile.Website,
		Industry:                profile.Industry,
		CompanySizeMin:          profile.SizeMin(),
		CompanySizeMax:          profile.SizeMax(),
		CompanySizeOnLinkedin:   profile.CompanySizeOnLinkedin,
		CompanyType:             profile.CompanyType,
		FoundedYear:             profile.FoundedYear,
		Tagline:                 profile.Tagline,
		UniversalNameID:         profile.UniversalNameID,
		ProfilePicURL:           profile.ProfilePicURL,
		BackgroundCoverImageURL: profile.BackgroundCoverImageURL,
		Specialities:            profile.Specialities,
	}

	if profile.HQ != nil {
		company.HQCountry = profile.HQ.Country
		company.HQCity = profile.HQ.City
		company.HQState = profile.HQ.State
		company.HQPostalCode = profile.HQ.PostalCode
	}

	if locations := mapLocations(profile.Locations); len(locations) > 0 {
		if raw, err := json.Marshal(locations); err == nil {
			rawStr := string(raw)
			company.Locations = &rawStr
		}
	}

	if profile.Description != nil {
		insights := e.insights.Extract(ctx, *profile.Description)
		company.HasOwnProducts = insights.HasOwnProducts
		company.IsRecruitingCompany = insights.IsRecruitingCompany
	}

	return company
}

func mapLocations(locations []enrichlayer.Location) []entities.CompanyLocation {

	mapped := make([]entities.CompanyLocation, 0, len(locations))
	for _, loc := range locations {
		mapped = append(mapped, entities.CompanyLocation{
			Country:    deref(loc.Country),
			City:       deref(loc.City),
			State:      deref(loc.State),
			PostalCode: deref(loc.PostalCode),
			Line1:      deref(loc.Line1),
			IsHQ:       loc.IsHQ,
		})
	}
	return mapped
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
