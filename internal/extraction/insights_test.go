package extraction

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockAiClient struct {
	mock.Mock
}

func (m *mockAiClient) GenerateResponse(ctx context.Context, request string) (string, error) {
	args := m.Called(ctx, request)
	return args.String(0), args.Error(1)
}

func Test_InsightExtractor_ParsesCodeFencedResponse(t *testing.T) {

	ai := &mockAiClient{}
	ai.On("GenerateResponse", mock.Anything, mock.Anything).
		Return("```json\n{\"has_own_products\": true, \"is_recruiting_company\": null}\n```", nil).Once()

	extractor := NewInsightExtractor(ai, true)
	insights := extractor.Extract(context.Background(), "Some company description.")

	assert.NotNil(t, insights.HasOwnProducts)
	assert.True(t, *insights.HasOwnProducts)
	assert.Nil(t, insights.IsRecruitingCompany)
	ai.AssertExpectations(t)
}

func Test_InsightExtractor_CoercesStringBooleans(t *testing.T) {

	ai := &mockAiClient{}
	ai.On("GenerateResponse", mock.Anything, mock.Anything).
		Return(`{"has_own_products": "false", "is_recruiting_company": "true"}`, nil).Once()

	extractor := NewInsightExtractor(ai, false)
	insights := extractor.Extract(context.Background(), "description")

	assert.False(t, *insights.HasOwnProducts)
	assert.True(t, *insights.IsRecruitingCompany)
}

func Test_InsightExtractor_EmptyDescriptionSkipsLLM(t *testing.T) {

	ai := &mockAiClient{}

	extractor := NewInsightExtractor(ai, true)
	insights := extractor.Extract(context.Background(), "   \n\t ")

	assert.Nil(t, insights.HasOwnProducts)
	assert.Nil(t, insights.IsRecruitingCompany)
	ai.AssertNotCalled(t, "GenerateResponse", mock.Anything, mock.Anything)
}

func Test_InsightExtractor_FallsBackOnLLMError(t *testing.T) {

	ai := &mockAiClient{}
	ai.On("GenerateResponse", mock.Anything, mock.Anything).
		Return("", errors.New("connection refused")).Once()

	extractor := NewInsightExtractor(ai, true)
	insights := extractor.Extract(context.Background(),
		"We are a staffing agency specializing in executive search and placement.")

	assert.NotNil(t, insights.IsRecruitingCompany)
	assert.True(t, *insights.IsRecruitingCompany)
}

func Test_InsightExtractor_BothNullTreatedAsNoSignal(t *testing.T) {

	ai := &mockAiClient{}
	ai.On("GenerateResponse", mock.Anything, mock.Anything).
		Return(`{"has_own_products": null, "is_recruiting_company": null}`, nil).Once()

	extractor := NewInsightExtractor(ai, true)
	insights := extractor.Extract(context.Background(),
		"Our proprietary SaaS platform helps developers ship faster.")

	// no-signal LLM result falls through to heuristics, which see the strong product signal
	assert.NotNil(t, insights.HasOwnProducts)
	assert.True(t, *insights.HasOwnProducts)
}

func Test_InsightExtractor_NoFallbackLeavesNulls(t *testing.T) {

	ai := &mockAiClient{}
	ai.On("GenerateResponse", mock.Anything, mock.Anything).
		Return("not json at all", nil).Once()

	extractor := NewInsightExtractor(ai, false)
	insights := extractor.Extract(context.Background(),
		"We are a staffing agency specializing in executive search and placement.")

	assert.Nil(t, insights.HasOwnProducts)
	assert.Nil(t, insights.IsRecruitingCompany)
}
