package extraction

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jobsift/jobsift/internal/metrics"
	log "github.com/sirupsen/logrus"
)

type aiClient interface {
	GenerateResponse(ctx context.Context, request string) (string, error)
}

// CompanyInsights are two independent tri-state classifications of a
// company description. nil always means "no signal", never "false".
type CompanyInsights struct {
	HasOwnProducts      *bool
	IsRecruitingCompany *bool
}

const insightsPrompt = `You are an analyst who classifies companies based on their descriptions.

Output ONLY a JSON object with this EXACT structure:
{
  "has_own_products": true|false|null,
  "is_recruiting_company": true|false|null
}

Definition guidelines:
- has_own_products: true when the description clearly states the company builds or sells its own software/platform/product. false when it explicitly only provides services built on other vendors' products (e.g., pure consulting or staffing firms). null when there isn't enough information.
- is_recruiting_company: true when the description indicates staffing, recruiting, talent placement, or headhunting services. false when the company is clearly a product or service company that is NOT a staffing/recruiting firm. null when unclear.

When uncertain, prefer null instead of guessing. Do not include any explanation or additional fields.

Company Description:
%DESCRIPTION%

Return ONLY the JSON object.`

// InsightExtractor derives CompanyInsights from free-text descriptions,
// preferring the LLM and falling back to regex heuristics when enabled.
type InsightExtractor struct {
	aiClient          aiClient
	heuristicFallback bool
}

func NewInsightExtractor(aiClient aiClient, heuristicFallback bool) *InsightExtractor {
	return &InsightExtractor{aiClient: aiClient, heuristicFallback: heuristicFallback}
}

func (e *InsightExtractor) Extract(ctx context.Context, description string) CompanyInsights {

	normalized := strings.Join(strings.Fields(description), " ")
	if normalized == "" {
		return CompanyInsights{}
	}

	insights, err := e.extractWithAI(ctx, normalized)
	if err == nil && !insights.empty() {
		return insights
	}
	if err != nil {
		log.Errorf("failed to derive company insights via LLM: %v", err)
	} else {
		log.Warn("LLM returned no usable signal for company description")
	}

	if e.heuristicFallback {
		log.Info("falling back to heuristic company description parsing")
		metrics.InsightFallbacksCounter.Inc()
		return heuristicInsights(normalized)
	}

	return CompanyInsights{}
}

func (e *InsightExtractor) extractWithAI(ctx context.Context, description string) (CompanyInsights, error) {

	request := strings.Replace(insightsPrompt, "%DESCRIPTION%", description, 1)
	response, err := e.aiClient.GenerateResponse(ctx, request)
	if err != nil {
		return CompanyInsights{}, err
	}

	return parseInsightsResponse(response)
}

type insightsPayload struct {
	HasOwnProducts      looseBool `json:"has_own_products"`
	IsRecruitingCompany looseBool `json:"is_recruiting_company"`
}

func parseInsightsResponse(raw string) (CompanyInsights, error) {

	var payload insightsPayload
	if err := json.Unmarshal([]byte(cleanModelOutput(raw)), &payload); err != nil {
		return CompanyInsights{}, err
	}

	return CompanyInsights{
		HasOwnProducts:      payload.HasOwnProducts.Val,
		IsRecruitingCompany: payload.IsRecruitingCompany.Val,
	}, nil
}

// empty reports whether the extraction produced no signal at all; a
// both-null result is treated the same as a parse failure.
func (i CompanyInsights) empty() bool {
	return i.HasOwnProducts == nil && i.IsRecruitingCompany == nil
}
