package entities

import "time"

// ScrapedRow is one raw tabular row produced by the scraping library.
// Every column except JobURL and Title may be absent.
type ScrapedRow struct {
	JobURL       string
	JobURLDirect *string
	Title        string
	Company      *string
	CompanyURL   *string
	Location     *string
	Description  *string
	JobType      *string
	MinAmount    *float64
	MaxAmount    *float64
	Currency     *string
	Interval     *string
	IsRemote     *bool
	DatePosted   *time.Time
	ListingType  *string
	JobLevel     *string
	JobFunction  *string
	CompanyIndustry       *string
	CompanyHeadquarters   *string
	CompanyEmployeesCount *string
	ApplicantsCount       *int
	Emails                *string // comma-separated
}
