package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jobsift/jobsift/internal/entities"
	"gorm.io/gorm"
)

// ErrQueryFailed hides storage details from listing callers; it is the
// single retryable "failed to fetch" signal, distinct from ErrJobNotFound.
var ErrQueryFailed = errors.New("failed to fetch jobs")

var ErrJobNotFound = errors.New("job not found")

type Jobs struct {
	db *gorm.DB
}

func NewJobsRepository(db *gorm.DB) *Jobs {
	return &Jobs{db: db}
}

func (repo *Jobs) WithTx(tx *gorm.DB) *Jobs {
	return &Jobs{db: tx}
}

// ExistingURLs reports which of the given job URLs already have rows.
// Matching is exact and case-sensitive; job URLs are never normalized.
func (repo *Jobs) ExistingURLs(ctx context.Context, urls []string) (map[string]bool, error) {

	existing := map[string]bool{}
	if len(urls) == 0 {
		return existing, nil
	}

	var rows []entities.Job
	err := repo.db.WithContext(ctx).
		Select("job_url").
		Find(&rows, "job_url IN ?", urls).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		existing[row.JobURL] = true
	}
	return existing, nil
}

// Create inserts one job inside its own nested transaction.
func (repo *Jobs) Create(ctx context.Context, job *entities.Job) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(job).Error
	})
}

func (repo *Jobs) GetByID(ctx context.Context, id int) (*entities.Job, error) {

	var job entities.Job
	err := repo.db.WithContext(ctx).Preload("Company").First(&job, "jobs.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, ErrQueryFailed
	}
	return &job, nil
}

func (repo *Jobs) RemoveOlderThan(ctx context.Context, expirationTime time.Time) (int64, error) {
	res := repo.db.WithContext(ctx).Delete(&entities.Job{}, "created_at < ?", expirationTime)
	return res.RowsAffected, res.Error
}

// ListFilter is the full predicate set of the listing engine. List-valued
// filters are OR within the field and AND across fields. Nil pointers mean
// "not filtered".
type ListFilter struct {
	Page     int `validate:"gte=1"`
	PageSize int `validate:"gte=1,lte=100"`

	Categories     []string
	Technologies   []string
	RequiredSkills []string

	WorkArrangement    *entities.WorkArrangement
	MinYearsExperience *int `validate:"omitempty,gte=0"`
	ContractorFriendly *bool

	HasOwnProducts      *bool
	IsRecruitingCompany *bool

	ApplicantsMin *int
	ApplicantsMax *int
	EmployeesMin  *int
	EmployeesMax  *int

	DatePostedFrom *time.Time
	DatePostedTo   *time.Time

	IsPythonMain      *bool
	ContractFeasible  *bool
	AcceptsNonUS      *bool
	ScreeningRequired *bool

	// Relocation-required jobs are hidden by default; set this to see them.
	IncludeRelocationRequired bool

	// UserID scopes the always-on blocked-company and seen-job exclusions.
	UserID *int
}

func (f ListFilter) hasCompanyFilter() bool {
	return f.HasOwnProducts != nil || f.IsRecruitingCompany != nil ||
		f.EmployeesMin != nil || f.EmployeesMax != nil
}

type ListResult struct {
	Items      []entities.Job
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

// List runs one filtered, deterministically ordered, paginated query.
// Any storage error surfaces as ErrQueryFailed with no partial results.
func (repo *Jobs) List(ctx context.Context, filter ListFilter) (*ListResult, error) {

	// the count and the page run the same predicate set on fresh sessions
	var total int64
	countQuery := applyFilter(repo.db.WithContext(ctx).Model(&entities.Job{}), filter)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, ErrQueryFailed
	}

	var jobs []entities.Job
	err := applyFilter(repo.db.WithContext(ctx).Model(&entities.Job{}), filter).
		Preload("Company").
		Order("(jobs.date_posted IS NULL) ASC").
		Order("jobs.date_posted DESC").
		Order("jobs.created_at DESC").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&jobs).Error
	if err != nil {
		return nil, ErrQueryFailed
	}

	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(filter.PageSize) - 1) / int64(filter.PageSize))
	}

	return &ListResult{
		Items:      jobs,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}, nil
}

func applyFilter(query *gorm.DB, filter ListFilter) *gorm.DB {

	// company-level predicates narrow the set, so they get an inner join;
	// without them jobs with no linked company must still appear
	if filter.hasCompanyFilter() {
		query = query.Joins("JOIN companies ON companies.id = jobs.company_id")
	}

	query = applyListContains(query, "jobs.job_categories", filter.Categories)
	query = applyListContains(query, "jobs.technologies", filter.Technologies)
	query = applyListContains(query, "jobs.required_skills", filter.RequiredSkills)

	if filter.WorkArrangement != nil {
		query = query.Where("jobs.work_arrangement = ?", *filter.WorkArrangement)
	}
	if filter.MinYearsExperience != nil {
		query = query.Where("jobs.required_years_experience >= ?", *filter.MinYearsExperience)
	}
	if filter.ContractorFriendly != nil {
		query = query.Where("jobs.independent_contractor_friendly = ?", *filter.ContractorFriendly)
	}

	if filter.HasOwnProducts != nil {
		query = query.Where("companies.has_own_products = ?", *filter.HasOwnProducts)
	}
	if filter.IsRecruitingCompany != nil {
		query = query.Where("companies.is_recruiting_company = ?", *filter.IsRecruitingCompany)
	}

	if filter.ApplicantsMin != nil {
		query = query.Where("jobs.applicants_count >= ?", *filter.ApplicantsMin)
	}
	if filter.ApplicantsMax != nil {
		query = query.Where("jobs.applicants_count <= ?", *filter.ApplicantsMax)
	}

	// company headcount arrives from inconsistent upstream fields, so each
	// bound checks a priority chain: platform-reported count first, then the
	// opposite bound of the self-reported range, then the remaining field
	if filter.EmployeesMin != nil {
		query = query.Where(
			"COALESCE(companies.company_size_on_linkedin, companies.company_size_max, companies.company_size_min) >= ?",
			*filter.EmployeesMin)
	}
	if filter.EmployeesMax != nil {
		query = query.Where(
			"COALESCE(companies.company_size_on_linkedin, companies.company_size_min, companies.company_size_max) <= ?",
			*filter.EmployeesMax)
	}

	if filter.DatePostedFrom != nil {
		query = query.Where("jobs.date_posted >= ?", *filter.DatePostedFrom)
	}
	if filter.DatePostedTo != nil {
		query = query.Where("jobs.date_posted <= ?", *filter.DatePostedTo)
	}

	if filter.IsPythonMain != nil {
		query = query.Where("jobs.is_python_main = ?", *filter.IsPythonMain)
	}
	if filter.ContractFeasible != nil {
		query = query.Where("jobs.contract_feasible = ?", *filter.ContractFeasible)
	}
	if filter.AcceptsNonUS != nil {
		query = query.Where("jobs.accepts_non_us = ?", *filter.AcceptsNonUS)
	}
	if filter.ScreeningRequired != nil {
		query = query.Where("jobs.screening_required = ?", *filter.ScreeningRequired)
	}

	// inverted default: only an explicit true is excluded, so null and
	// false rows stay visible without the caller asking
	if !filter.IncludeRelocationRequired {
		query = query.Where("jobs.relocate_required IS NULL OR jobs.relocate_required = ?", false)
	}

	if filter.UserID != nil {
		query = query.Where(
			"jobs.company_id IS NULL OR jobs.company_id NOT IN (SELECT company_id FROM blocked_companies WHERE user_id = ?)",
			*filter.UserID)
		query = query.Where(
			"jobs.id NOT IN (SELECT job_id FROM seen_jobs WHERE user_id = ?)",
			*filter.UserID)
	}

	return query
}

// applyListContains matches a JSON list column against any of the requested
// values (OR within the field).
func applyListContains(query *gorm.DB, column string, values []string) *gorm.DB {
	if len(values) == 0 {
		return query
	}
	return query.Where(
		"EXISTS (SELECT 1 FROM json_each("+column+") WHERE json_each.value IN ?)",
		values)
}
