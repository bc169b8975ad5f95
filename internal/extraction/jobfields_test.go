package extraction

import (
	"context"
	"testing"

	"github.com/jobsift/jobsift/internal/entities"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const pythonJobResponse = `Here is the extracted data:
` + "```json" + `
{
  "required_skills": ["Python", "Django", "FastAPI"],
  "preferred_skills": [],
  "required_years_experience": 5,
  "required_education": null,
  "preferred_education": null,
  "responsibilities": ["Build backend services"],
  "benefits": [],
  "work_arrangement": "Remote",
  "team_size": null,
  "technologies": ["Python", "Django", "FastAPI"],
  "culture_keywords": [],
  "summary": "Senior Python backend role.",
  "job_categories": ["Backend", "Machine Learning"],
  "independent_contractor_friendly": null,
  "salary_currency": "USD",
  "salary_min": 120000,
  "salary_max": 150000,
  "compensation_basis": "Annual",
  "location_restrictions": [],
  "exclusive_location_requirement": null,
  "is_python_main": true,
  "contract_feasible": false,
  "relocate_required": false,
  "specific_locations": "",
  "accepts_non_us": false,
  "screening_required": false,
  "company_size": "unknown"
}
` + "```"

func Test_JobFieldExtractor_PythonCentricDescription(t *testing.T) {

	ai := &mockAiClient{}
	ai.On("GenerateResponse", mock.Anything, mock.Anything).Return(pythonJobResponse, nil).Once()

	extractor := NewJobFieldExtractor(ai)
	fields, err := extractor.Extract(context.Background(),
		"5+ years of Python, Django, FastAPI required.")

	assert.NoError(t, err)
	assert.NotNil(t, fields.IsPythonMain)
	assert.True(t, *fields.IsPythonMain)
	assert.GreaterOrEqual(t, *fields.RequiredYearsExperience, 5)
	assert.Equal(t, entities.Remote, *fields.WorkArrangement)

	// "Machine Learning" is outside the closed vocabulary and must be dropped
	assert.Equal(t, []string{"Backend"}, fields.JobCategories)

	// on-site city mention without explicit relocation language stays false
	assert.False(t, *fields.RelocateRequired)
	ai.AssertExpectations(t)
}

func Test_JobFieldExtractor_ConfidenceFollowsValueShape(t *testing.T) {

	ai := &mockAiClient{}
	ai.On("GenerateResponse", mock.Anything, mock.Anything).Return(pythonJobResponse, nil).Once()

	extractor := NewJobFieldExtractor(ai)
	fields, err := extractor.Extract(context.Background(), "description")
	assert.NoError(t, err)

	assert.Equal(t, 0.85, fields.Confidences["required_skills"])
	assert.Equal(t, 0.85, fields.Confidences["required_years_experience"])
	assert.Equal(t, 0.85, fields.Confidences["is_python_main"])
	assert.Equal(t, 0.75, fields.Confidences["summary"])

	// empty list means explicitly-checked-but-empty
	assert.Equal(t, 0.60, fields.Confidences["benefits"])

	// "unknown" company size and null education carry no confidence
	assert.Equal(t, 0.0, fields.Confidences["company_size"])
	assert.Equal(t, 0.0, fields.Confidences["required_education"])
}

func Test_JobFieldExtractor_ZeroYearsMeansUnspecified(t *testing.T) {

	response := `{"required_years_experience": 0, "required_skills": ["Go"], "is_python_main": false,
		"contract_feasible": false, "relocate_required": false, "accepts_non_us": false,
		"screening_required": false, "company_size": "large"}`

	fields, err := parseJobFieldsResponse(response)
	assert.NoError(t, err)

	assert.Equal(t, 0, *fields.RequiredYearsExperience)
	assert.Equal(t, 0.0, fields.Confidences["required_years_experience"])
	assert.Equal(t, "large", *fields.CompanySizeBucket)
}

func Test_JobFieldExtractor_NullsStayAbsent(t *testing.T) {

	response := `{
		"required_years_experience": null,
		"team_size": null,
		"salary_min": null,
		"independent_contractor_friendly": null,
		"relocate_required": null,
		"required_skills": ["Go"]
	}`

	fields, err := parseJobFieldsResponse(response)
	assert.NoError(t, err)

	// a null token must never surface as an explicit zero or false
	assert.Nil(t, fields.RequiredYearsExperience)
	assert.Nil(t, fields.TeamSize)
	assert.Nil(t, fields.SalaryMin)
	assert.Nil(t, fields.IndependentContractorFriendly)
	assert.Nil(t, fields.RelocateRequired)
	assert.Equal(t, []string{"Go"}, fields.RequiredSkills)
}

func Test_JobFieldExtractor_ErrorPropagates(t *testing.T) {

	ai := &mockAiClient{}
	ai.On("GenerateResponse", mock.Anything, mock.Anything).
		Return("", errors.New("timeout")).Once()

	extractor := NewJobFieldExtractor(ai)
	fields, err := extractor.Extract(context.Background(), "description")

	assert.Error(t, err)
	assert.Nil(t, fields)
}

func Test_JobFields_ApplyToJob_OverwritesOnlyPresentFields(t *testing.T) {

	existingYears := 3
	job := entities.Job{RequiredYearsExperience: &existingYears}

	fields := &JobFields{
		RequiredSkills: []string{"Go", "SQL"},
		IsPythonMain:   boolPtr(false),
	}
	fields.ApplyToJob(&job)

	assert.Equal(t, entities.StringList{"Go", "SQL"}, job.RequiredSkills)
	assert.False(t, *job.IsPythonMain)

	// absent source fields leave the target untouched
	assert.Equal(t, 3, *job.RequiredYearsExperience)
	assert.Nil(t, job.WorkArrangement)
}

func Test_CleanModelOutput_ExtractsFirstObjectSpan(t *testing.T) {

	raw := "Sure! Here you go:\n{\"a\": 1}\nLet me know if you need anything else."
	assert.Equal(t, `{"a": 1}`, cleanModelOutput(raw))

	fenced := "```json\n{\"b\": 2}\n```"
	assert.Equal(t, `{"b": 2}`, cleanModelOutput(fenced))
}
