package extraction

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jobsift/jobsift/internal/entities"
	"github.com/samber/lo"
)

const jobFieldsPrompt = `You are a JSON extraction assistant. Extract structured data from job descriptions.

CRITICAL: Output ONLY a valid JSON object. NO explanations, NO thinking out loud, NO additional text.

Required JSON structure:
{
  "required_skills": ["skill1", "skill2"],
  "preferred_skills": ["skill1", "skill2"],
  "required_years_experience": integer_or_null,
  "required_education": "string_or_null",
  "preferred_education": "string_or_null",
  "responsibilities": ["item1", "item2"],
  "benefits": ["item1", "item2"],
  "work_arrangement": "Remote|Hybrid|On-site|null",
  "team_size": "string_or_null",
  "technologies": ["tech1", "tech2"],
  "culture_keywords": ["keyword1", "keyword2"],
  "summary": "string_or_null",
  "job_categories": ["category1", "category2"],
  "independent_contractor_friendly": true|false|null,
  "salary_currency": "ISO_code_or_null",
  "salary_min": number_or_null,
  "salary_max": number_or_null,
  "compensation_basis": "Hourly|Annual|Monthly|Contract|Other|null",
  "location_restrictions": ["string1", "string2"],
  "exclusive_location_requirement": true|false|null,
  "is_python_main": true|false,
  "contract_feasible": true|false,
  "relocate_required": true|false,
  "specific_locations": "string",
  "accepts_non_us": true|false,
  "screening_required": true|false,
  "company_size": "startup|small|medium|large|unknown"
}

Job categories MUST be drawn from: "Blockchain/Crypto", "AI/ML", "Data Engineering",
"Full Stack", "Frontend", "Backend", "DevOps/SRE", "Mobile", "Product/Design".
Include every category that clearly applies; leave the array empty if none match.

Field rules:
- required_years_experience: extract the minimum from explicit numeric phrases like "5+ years", "minimum 3 years", "at least 7 years". Return 0 if not specified or if only preferred experience is mentioned. Never infer a number.
- independent_contractor_friendly: true when the posting explicitly mentions 1099, independent contractors, or similar arrangements being accepted; false when it states contractors are NOT allowed; null if unspecified.
- Salary: parse any stated salary, rate, or range. Strip currency symbols; set salary_currency to the ISO code (default USD when symbols like $ appear). Convert to pure numbers ("$120k" -> 120000, "$65/hr" -> 65). Use the single value for both bounds if only one number is given. Set compensation_basis to the cadence mentioned or null if unclear.
- location_restrictions: explicit region/country/state requirements. exclusive_location_requirement is true only when the posting clearly says applicants outside the listed areas are NOT accepted; false when it explicitly welcomes multiple regions; null if ambiguous.
- is_python_main: true ONLY if Python is explicitly mentioned AND is listed first/prominently OR 70%+ of mentioned technologies are Python-related. False if Python is not mentioned at all.
- contract_feasible: true if the posting mentions contractors, 1099, C2C, freelance, or signals like "open to contractors". False if "W-2 only" or "no contractors" is stated. Do not assume feasibility from silence.
- relocate_required: true ONLY if the posting explicitly states "relocation required", "must relocate", or "must be based in [city]". Do not infer from on-site requirements or office location mentions.
- specific_locations: comma-separated list of specific US states, regions, or cities mentioned (e.g., "Texas, California"), including timezone requirements. Empty string if only generic USA/Remote is mentioned.
- accepts_non_us: true if the posting mentions "global role", "international", "worldwide", or "any location". False if "US only" or "US work authorization required" is stated. Assume US-only unless clearly stated otherwise.
- screening_required: true if the posting mentions ANY of: security clearance, background check, credit check, fingerprinting, drug screening, comprehensive screening.
- company_size: "startup" (<20 employees, seed/Series A, founding team), "small" (20-200, Series B), "medium" (200-1000), "large" (1000+, Fortune 500, big tech), or "unknown" if unclear.

Please parse the following job description and return structured data in JSON format:

Job Description:
%DESCRIPTION%

Return ONLY the JSON object with the extracted information.`

// JobFields is the full structured record extracted from one job
// description, with advisory per-field confidence scores.
type JobFields struct {
	RequiredSkills          []string
	PreferredSkills         []string
	RequiredYearsExperience *int
	RequiredEducation       *string
	PreferredEducation      *string
	Responsibilities        []string
	Benefits                []string
	WorkArrangement         *entities.WorkArrangement
	TeamSize                *string
	Technologies            []string
	CultureKeywords         []string
	Summary                 *string
	JobCategories           []string
	IndependentContractorFriendly *bool

	SalaryCurrency    *string
	SalaryMin         *float64
	SalaryMax         *float64
	CompensationBasis *entities.CompensationBasis

	LocationRestrictions         []string
	ExclusiveLocationRequirement *bool

	IsPythonMain      *bool
	ContractFeasible  *bool
	RelocateRequired  *bool
	SpecificLocations *string
	AcceptsNonUS      *bool
	ScreeningRequired *bool
	CompanySizeBucket *string

	Confidences map[string]float64
}

// JobFieldExtractor turns a job description into JobFields with a single
// LLM call. There is no heuristic fallback: a failed extraction surfaces
// as an error and the job keeps null structured fields.
type JobFieldExtractor struct {
	aiClient aiClient
}

func NewJobFieldExtractor(aiClient aiClient) *JobFieldExtractor {
	return &JobFieldExtractor{aiClient: aiClient}
}

func (e *JobFieldExtractor) Extract(ctx context.Context, description string) (*JobFields, error) {

	request := strings.Replace(jobFieldsPrompt, "%DESCRIPTION%", description, 1)
	response, err := e.aiClient.GenerateResponse(ctx, request)
	if err != nil {
		return nil, err
	}

	return parseJobFieldsResponse(response)
}

type jobFieldsPayload struct {
	RequiredSkills          []string   `json:"required_skills"`
	PreferredSkills         []string   `json:"preferred_skills"`
	RequiredYearsExperience looseInt   `json:"required_years_experience"`
	RequiredEducation       *string    `json:"required_education"`
	PreferredEducation      *string    `json:"preferred_education"`
	Responsibilities        []string   `json:"responsibilities"`
	Benefits                []string   `json:"benefits"`
	WorkArrangement         *string    `json:"work_arrangement"`
	TeamSize                *string    `json:"team_size"`
	Technologies            []string   `json:"technologies"`
	CultureKeywords         []string   `json:"culture_keywords"`
	Summary                 *string    `json:"summary"`
	JobCategories           []string   `json:"job_categories"`
	IndependentContractorFriendly looseBool `json:"independent_contractor_friendly"`
	SalaryCurrency          *string    `json:"salary_currency"`
	SalaryMin               looseFloat `json:"salary_min"`
	SalaryMax               looseFloat `json:"salary_max"`
	CompensationBasis       *string    `json:"compensation_basis"`
	LocationRestrictions    []string   `json:"location_restrictions"`
	ExclusiveLocationRequirement looseBool `json:"exclusive_location_requirement"`
	IsPythonMain            looseBool  `json:"is_python_main"`
	ContractFeasible        looseBool  `json:"contract_feasible"`
	RelocateRequired        looseBool  `json:"relocate_required"`
	SpecificLocations       *string    `json:"specific_locations"`
	AcceptsNonUS            looseBool  `json:"accepts_non_us"`
	ScreeningRequired       looseBool  `json:"screening_required"`
	CompanySize             *string    `json:"company_size"`
}

func parseJobFieldsResponse(raw string) (*JobFields, error) {

	var payload jobFieldsPayload
	if err := json.Unmarshal([]byte(cleanModelOutput(raw)), &payload); err != nil {
		return nil, err
	}

	fields := &JobFields{
		RequiredSkills:          cleanList(payload.RequiredSkills),
		PreferredSkills:         cleanList(payload.PreferredSkills),
		RequiredYearsExperience: payload.RequiredYearsExperience.Val,
		RequiredEducation:       cleanString(payload.RequiredEducation),
		PreferredEducation:      cleanString(payload.PreferredEducation),
		Responsibilities:        cleanList(payload.Responsibilities),
		Benefits:                cleanList(payload.Benefits),
		WorkArrangement:         parseWorkArrangement(payload.WorkArrangement),
		TeamSize:                cleanString(payload.TeamSize),
		Technologies:            cleanList(payload.Technologies),
		CultureKeywords:         cleanList(payload.CultureKeywords),
		Summary:                 cleanString(payload.Summary),
		JobCategories:           filterCategories(payload.JobCategories),
		IndependentContractorFriendly: payload.IndependentContractorFriendly.Val,
		SalaryCurrency:          cleanString(payload.SalaryCurrency),
		SalaryMin:               payload.SalaryMin.Val,
		SalaryMax:               payload.SalaryMax.Val,
		CompensationBasis:       parseCompensationBasis(payload.CompensationBasis),
		LocationRestrictions:    cleanList(payload.LocationRestrictions),
		ExclusiveLocationRequirement: payload.ExclusiveLocationRequirement.Val,
		IsPythonMain:            payload.IsPythonMain.Val,
		ContractFeasible:        payload.ContractFeasible.Val,
		RelocateRequired:        payload.RelocateRequired.Val,
		SpecificLocations:       cleanString(payload.SpecificLocations),
		AcceptsNonUS:            payload.AcceptsNonUS.Val,
		ScreeningRequired:       payload.ScreeningRequired.Val,
		CompanySizeBucket:       parseCompanySizeBucket(payload.CompanySize),
	}

	fields.Confidences = computeConfidences(fields)
	return fields, nil
}

func computeConfidences(f *JobFields) map[string]float64 {
	return map[string]float64{
		"required_skills":           listConfidence(f.RequiredSkills),
		"preferred_skills":          listConfidence(f.PreferredSkills),
		"required_years_experience": intConfidence(f.RequiredYearsExperience),
		"required_education":        stringConfidence(f.RequiredEducation),
		"preferred_education":       stringConfidence(f.PreferredEducation),
		"responsibilities":          listConfidence(f.Responsibilities),
		"benefits":                  listConfidence(f.Benefits),
		"work_arrangement":          stringConfidence((*string)(f.WorkArrangement)),
		"team_size":                 stringConfidence(f.TeamSize),
		"technologies":              listConfidence(f.Technologies),
		"culture_keywords":          listConfidence(f.CultureKeywords),
		"summary":                   stringConfidence(f.Summary),
		"job_categories":            listConfidence(f.JobCategories),
		"independent_contractor_friendly": boolConfidence(f.IndependentContractorFriendly),
		"salary_currency":           stringConfidence(f.SalaryCurrency),
		"salary_min":                floatConfidence(f.SalaryMin),
		"salary_max":                floatConfidence(f.SalaryMax),
		"compensation_basis":        stringConfidence((*string)(f.CompensationBasis)),
		"location_restrictions":     listConfidence(f.LocationRestrictions),
		"exclusive_location_requirement": boolConfidence(f.ExclusiveLocationRequirement),
		"is_python_main":            boolConfidence(f.IsPythonMain),
		"contract_feasible":         boolConfidence(f.ContractFeasible),
		"relocate_required":         boolConfidence(f.RelocateRequired),
		"specific_locations":        stringConfidence(f.SpecificLocations),
		"accepts_non_us":            boolConfidence(f.AcceptsNonUS),
		"screening_required":        boolConfidence(f.ScreeningRequired),
		"company_size":              stringConfidence(f.CompanySizeBucket),
	}
}

// ApplyToJob merges extracted fields into a job record, overwriting a
// column only when the extraction actually produced a value for it.
func (f *JobFields) ApplyToJob(job *entities.Job) {
	if f == nil {
		return
	}

	if f.RequiredSkills != nil {
		job.RequiredSkills = entities.StringList(f.RequiredSkills)
	}
	if f.PreferredSkills != nil {
		job.PreferredSkills = entities.StringList(f.PreferredSkills)
	}
	if f.RequiredYearsExperience != nil {
		job.RequiredYearsExperience = f.RequiredYearsExperience
	}
	if f.RequiredEducation != nil {
		job.RequiredEducation = f.RequiredEducation
	}
	if f.PreferredEducation != nil {
		job.PreferredEducation = f.PreferredEducation
	}
	if f.Responsibilities != nil {
		job.Responsibilities = entities.StringList(f.Responsibilities)
	}
	if f.Benefits != nil {
		job.Benefits = entities.StringList(f.Benefits)
	}
	if f.WorkArrangement != nil {
		job.WorkArrangement = f.WorkArrangement
	}
	if f.TeamSize != nil {
		job.TeamSize = f.TeamSize
	}
	if f.Technologies != nil {
		job.Technologies = entities.StringList(f.Technologies)
	}
	if f.CultureKeywords != nil {
		job.CultureKeywords = entities.StringList(f.CultureKeywords)
	}
	if f.Summary != nil {
		job.Summary = f.Summary
	}
	if f.JobCategories != nil {
		job.JobCategories = entities.StringList(f.JobCategories)
	}
	if f.IndependentContractorFriendly != nil {
		job.IndependentContractorFriendly = f.IndependentContractorFriendly
	}
	if f.SalaryCurrency != nil {
		job.ParsedSalaryCurrency = f.SalaryCurrency
	}
	if f.SalaryMin != nil {
		job.ParsedSalaryMin = f.SalaryMin
	}
	if f.SalaryMax != nil {
		job.ParsedSalaryMax = f.SalaryMax
	}
	if f.CompensationBasis != nil {
		job.CompensationBasis = f.CompensationBasis
	}
	if f.LocationRestrictions != nil {
		job.LocationRestrictions = entities.StringList(f.LocationRestrictions)
	}
	if f.ExclusiveLocationRequirement != nil {
		job.ExclusiveLocationRequirement = f.ExclusiveLocationRequirement
	}
	if f.IsPythonMain != nil {
		job.IsPythonMain = f.IsPythonMain
	}
	if f.ContractFeasible != nil {
		job.ContractFeasible = f.ContractFeasible
	}
	if f.RelocateRequired != nil {
		job.RelocateRequired = f.RelocateRequired
	}
	if f.SpecificLocations != nil {
		job.SpecificLocations = f.SpecificLocations
	}
	if f.AcceptsNonUS != nil {
		job.AcceptsNonUS = f.AcceptsNonUS
	}
	if f.ScreeningRequired != nil {
		job.ScreeningRequired = f.ScreeningRequired
	}
	if f.CompanySizeBucket != nil {
		job.CompanySizeBucket = f.CompanySizeBucket
	}
}

func parseWorkArrangement(raw *string) *entities.WorkArrangement {
	if raw == nil {
		return nil
	}
	for _, arrangement := range []entities.WorkArrangement{entities.Remote, entities.Hybrid, entities.OnSite} {
		if strings.EqualFold(*raw, string(arrangement)) {
			return &arrangement
		}
	}
	return nil
}

func parseCompensationBasis(raw *string) *entities.CompensationBasis {
	if raw == nil {
		return nil
	}
	for _, basis := range []entities.CompensationBasis{
		entities.BasisHourly, entities.BasisAnnual, entities.BasisMonthly, entities.BasisContract, entities.BasisOther,
	} {
		if strings.EqualFold(*raw, string(basis)) {
			return &basis
		}
	}
	return nil
}

func parseCompanySizeBucket(raw *string) *string {
	if raw == nil {
		return nil
	}
	lowered := strings.ToLower(strings.TrimSpace(*raw))
	switch lowered {
	case "startup", "small", "medium", "large":
		return &lowered
	default:
		return nil
	}
}

// filterCategories drops anything outside the closed category vocabulary.
func filterCategories(categories []string) []string {
	if categories == nil {
		return nil
	}
	return lo.Filter(categories, func(category string, _ int) bool {
		return lo.ContainsBy(entities.JobCategories, func(known string) bool {
			return strings.EqualFold(known, strings.TrimSpace(category))
		})
	})
}

func cleanString(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func cleanList(items []string) []string {
	if items == nil {
		return nil
	}
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}
