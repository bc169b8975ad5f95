package entities

import "time"

// CompanyLocation is one structured office location from the enrichment payload.
type CompanyLocation struct {
	Country    string `json:"country"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Line1      string `json:"line_1"`
	IsHQ       bool   `json:"is_hq"`
}

// Company is keyed by its normalized LinkedIn URL; one row per company,
// created on first sighting during ingest and never re-enriched.
type Company struct {
	ID                      int     `gorm:"primaryKey"`
	LinkedinURL             string  `gorm:"size:512;not null;uniqueIndex"`
	LinkedinInternalID      *string `gorm:"size:255"`
	Name                    string  `gorm:"size:255;not null;index"`
	Description             *string
	Website                 *string `gorm:"size:512"`
	Industry                *string `gorm:"size:255"`
	CompanySizeMin          *int
	CompanySizeMax          *int
	CompanySizeOnLinkedin   *int
	HQCountry               *string `gorm:"size:128"`
	HQCity                  *string `gorm:"size:128"`
	HQState                 *string `gorm:"size:128"`
	HQPostalCode            *string `gorm:"size:64"`
	CompanyType             *string `gorm:"size:128"`
	FoundedYear             *int
	Tagline                 *string `gorm:"size:255"`
	UniversalNameID         *string `gorm:"size:255"`
	ProfilePicURL           *string `gorm:"size:1024"`
	BackgroundCoverImageURL *string `gorm:"size:1024"`
	Specialities            StringList
	Locations               *string // raw JSON array of CompanyLocation

	// Tri-state insights derived from the description at creation time.
	HasOwnProducts      *bool
	IsRecruitingCompany *bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
