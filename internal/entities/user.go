package entities

import "time"

type User struct {
	ID           int    `gorm:"primaryKey"`
	Email        string `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string `gorm:"size:255;not null"`
	ResumeJSON   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// The association records below are pure relational state. The listing
// filter engine consumes BlockedCompany and SeenJob as exclusion predicates;
// the rest is CRUD owned by the API layer.

type SavedJob struct {
	ID        int  `gorm:"primaryKey"`
	UserID    int  `gorm:"not null;uniqueIndex:idx_saved_user_job"`
	User      User `gorm:"constraint:OnDelete:CASCADE"`
	JobID     int  `gorm:"not null;uniqueIndex:idx_saved_user_job"`
	Job       Job  `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

type BlockedCompany struct {
	ID        int     `gorm:"primaryKey"`
	UserID    int     `gorm:"not null;uniqueIndex:idx_blocked_user_company"`
	User      User    `gorm:"constraint:OnDelete:CASCADE"`
	CompanyID int     `gorm:"not null;uniqueIndex:idx_blocked_user_company"`
	Company   Company `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

type SeenJob struct {
	ID        int  `gorm:"primaryKey"`
	UserID    int  `gorm:"not null;uniqueIndex:idx_seen_user_job"`
	User      User `gorm:"constraint:OnDelete:CASCADE"`
	JobID     int  `gorm:"not null;uniqueIndex:idx_seen_user_job"`
	Job       Job  `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

type TailoredResume struct {
	ID         int    `gorm:"primaryKey"`
	UserID     int    `gorm:"not null;index"`
	User       User   `gorm:"constraint:OnDelete:CASCADE"`
	JobID      int    `gorm:"not null;index"`
	Job        Job    `gorm:"constraint:OnDelete:CASCADE"`
	ResumeJSON string `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
