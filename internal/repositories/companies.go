package repositories

import (
	"context"
	"errors"

	"github.com/jobsift/jobsift/internal/entities"
	"gorm.io/gorm"
)

type Companies struct {
	db *gorm.DB
}

func NewCompaniesRepository(db *gorm.DB) *Companies {
	return &Companies{db: db}
}

// WithTx returns a copy bound to an open transaction, so callers can scope
// repository work to an ingest stage.
func (repo *Companies) WithTx(tx *gorm.DB) *Companies {
	return &Companies{db: tx}
}

func (repo *Companies) GetByURL(ctx context.Context, normalizedURL string) (*entities.Company, error) {

	var company entities.Company
	err := repo.db.WithContext(ctx).First(&company, "linkedin_url = ?", normalizedURL).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &company, nil
}

// ExistingURLs returns the normalized URL to id mapping for the subset of
// urls that already have a company row.
func (repo *Companies) ExistingURLs(ctx context.Context, urls []string) (map[string]int, error) {

	existing := map[string]int{}
	if len(urls) == 0 {
		return existing, nil
	}

	var rows []entities.Company
	err := repo.db.WithContext(ctx).
		Select("id", "linkedin_url").
		Find(&rows, "linkedin_url IN ?", urls).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		existing[row.LinkedinURL] = row.ID
	}
	return existing, nil
}

// Create inserts one company inside its own nested transaction; a failure
// rolls back only this row, never previously inserted companies.
func (repo *Companies) Create(ctx context.Context, company *entities.Company) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(company).Error
	})
}
