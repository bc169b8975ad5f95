package entities

import "time"

// WorkArrangement is the extracted on-site policy of a posting.
type WorkArrangement string

const (
	Remote WorkArrangement = "Remote"
	Hybrid WorkArrangement = "Hybrid"
	OnSite WorkArrangement = "On-site"
)

// CompensationBasis is the cadence of an extracted salary figure.
type CompensationBasis string

const (
	BasisHourly   CompensationBasis = "Hourly"
	BasisAnnual   CompensationBasis = "Annual"
	BasisMonthly  CompensationBasis = "Monthly"
	BasisContract CompensationBasis = "Contract"
	BasisOther    CompensationBasis = "Other"
)

// JobCategories is the closed category vocabulary the extractor may emit.
var JobCategories = []string{
	"AI/ML",
	"Blockchain/Crypto",
	"Data Engineering",
	"Full Stack",
	"Frontend",
	"Backend",
	"DevOps/SRE",
	"Mobile",
	"Product/Design",
}

// Job is keyed by the exact posting URL. Rows are write-once: re-scraping
// an existing URL is a skip, never an update.
//
// Compensation appears twice on purpose. The scrape-reported figures and the
// LLM-parsed figures disagree often enough that neither can overwrite the
// other without product guidance.
type Job struct {
	ID        int     `gorm:"primaryKey"`
	JobURL    string  `gorm:"size:1024;not null;uniqueIndex"`
	JobURLDirect *string `gorm:"size:1024"`
	Title     string  `gorm:"size:512;not null"`

	CompanyName *string `gorm:"size:255"`
	CompanyID   *int    `gorm:"index"`
	Company     *Company `gorm:"constraint:OnDelete:SET NULL"`

	Description      *string
	CompanyURL       *string `gorm:"size:1024"`
	CompanyURLDirect *string `gorm:"size:1024"`

	LocationCity    *string `gorm:"size:255"`
	LocationState   *string `gorm:"size:255"`
	LocationCountry *string `gorm:"size:255"`

	// Compensation as reported by the scrape.
	CompensationMin      *float64
	CompensationMax      *float64
	CompensationCurrency *string `gorm:"size:16"`
	CompensationInterval *string `gorm:"size:64"`

	JobType    StringList
	DatePosted *time.Time `gorm:"type:date;index"`
	IsRemote   *bool
	ListingType *string `gorm:"size:128"`
	JobLevel    *string `gorm:"size:128"`
	JobFunction *string `gorm:"size:128"`

	CompanyIndustry       *string `gorm:"size:255"`
	CompanyHeadquarters   *string `gorm:"size:255"`
	CompanyEmployeesCount *string `gorm:"size:128"`
	ApplicantsCount       *int
	Emails                StringList

	// Fields extracted from the description by the LLM. All nullable;
	// a failed extraction leaves every one of them nil.
	RequiredSkills           StringList
	PreferredSkills          StringList
	RequiredYearsExperience  *int
	RequiredEducation        *string `gorm:"size:255"`
	PreferredEducation       *string `gorm:"size:255"`
	Responsibilities         StringList
	Benefits                 StringList
	WorkArrangement          *WorkArrangement `gorm:"size:64"`
	TeamSize                 *string          `gorm:"size:128"`
	Technologies             StringList
	CultureKeywords          StringList
	Summary                  *string
	JobCategories            StringList
	IndependentContractorFriendly *bool

	// Compensation as parsed from the description text.
	ParsedSalaryCurrency *string `gorm:"size:16"`
	ParsedSalaryMin      *float64
	ParsedSalaryMax      *float64
	CompensationBasis    *CompensationBasis `gorm:"size:64"`

	LocationRestrictions         StringList
	ExclusiveLocationRequirement *bool

	// Second extraction pass.
	IsPythonMain      *bool
	ContractFeasible  *bool
	RelocateRequired  *bool
	SpecificLocations *string `gorm:"size:512"`
	AcceptsNonUS      *bool
	ScreeningRequired *bool
	CompanySizeBucket *string `gorm:"size:32"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}
