package repositories

import (
	"context"
	"errors"

	"github.com/jobsift/jobsift/internal/entities"
	"gorm.io/gorm"
)

// UserState covers the per-user association rows the listing engine
// consumes as exclusion predicates. Their full CRUD surface lives in the
// API layer; ingest and listings only need membership checks and inserts.
type UserState struct {
	db *gorm.DB
}

func NewUserStateRepository(db *gorm.DB) *UserState {
	return &UserState{db: db}
}

func (repo *UserState) BlockCompany(ctx context.Context, userID int, companyID int) error {
	return repo.db.WithContext(ctx).Create(&entities.BlockedCompany{
		UserID:    userID,
		CompanyID: companyID,
	}).Error
}

func (repo *UserState) IsCompanyBlocked(ctx context.Context, userID int, companyID int) (bool, error) {

	var blocked entities.BlockedCompany
	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND company_id = ?", userID, companyID).
		First(&blocked).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (repo *UserState) MarkJobSeen(ctx context.Context, userID int, jobID int) error {
	return repo.db.WithContext(ctx).Create(&entities.SeenJob{
		UserID: userID,
		JobID:  jobID,
	}).Error
}

func (repo *UserState) SaveJob(ctx context.Context, userID int, jobID int) error {
	return repo.db.WithContext(ctx).Create(&entities.SavedJob{
		UserID: userID,
		JobID:  jobID,
	}).Error
}
