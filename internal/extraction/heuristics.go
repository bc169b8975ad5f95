package extraction

import "regexp"

// Regex fallback for company insights, used when the LLM path fails or
// returns no signal. Each insight has two pattern tiers: a "strong" match
// decides on its own, "support" matches accumulate a score and a score of
// two or more also decides.

var productStrongPatterns = compilePatterns([]string{
	`(?i)\bwe (?:build|develop|ship|deliver|maintain)\b.*\b(?:platform|product|software|technology|application)s?\b`,
	`(?i)\bour (?:flagship|core)\s+(?:platform|product|solution)`,
	`(?i)\bsoftware-as-a-service\b`,
	`(?i)\bsaas\b`,
	`(?i)\bproprietary (?:technology|platform|product)\b`,
})

var productSupportPatterns = compilePatterns([]string{
	`(?i)\bplatform\b`,
	`(?i)\bproduct\b`,
	`(?i)\bapplication\b`,
	`(?i)\bsoftware\b`,
	`(?i)\bmobile app\b`,
	`(?i)\bapi\b`,
	`(?i)\btool\b`,
	`(?i)\bdigital solution\b`,
	`(?i)\bdata platform\b`,
})

var recruitingStrongPatterns = compilePatterns([]string{
	`(?i)\bstaff(?:ing| augmentation)\b`,
	`(?i)\brecruit(?:er|ing|ment)\b (?:agency|firm|services|solutions|partner)`,
	`(?i)\btalent acquisition\b`,
	`(?i)\bplacement (?:services|firm|agency)\b`,
	`(?i)\bheadhunt(?:ers|ing)?\b`,
	`(?i)\bexecutive search\b`,
	`(?i)\brpo\b`,
})

var recruitingSupportPatterns = compilePatterns([]string{
	`(?i)\brecruit(?:ing|ment)\b`,
	`(?i)\btalent\b`,
	`(?i)\bhiring solutions\b`,
	`(?i)\bstaff augmentation\b`,
	`(?i)\bcontract staffing\b`,
})

func compilePatterns(patterns []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, pattern := range patterns {
		compiled[i] = regexp.MustCompile(pattern)
	}
	return compiled
}

// descriptionSignals is everything the rules below may look at.
type descriptionSignals struct {
	strongProduct    bool
	productScore     int
	strongRecruiting bool
	recruitingScore  int
	hasOwnProducts   *bool // resolved by the first rule table, input to the second
}

// insightRule is one row of a cascading decision table: the first rule whose
// predicate holds decides the value, later rules are never consulted.
type insightRule struct {
	applies func(descriptionSignals) bool
	value   bool
}

var hasOwnProductsRules = []insightRule{
	{
		applies: func(s descriptionSignals) bool { return s.strongProduct || s.productScore >= 2 },
		value:   true,
	},
	{
		applies: func(s descriptionSignals) bool { return s.strongRecruiting && s.productScore == 0 },
		value:   false,
	},
}

var isRecruitingCompanyRules = []insightRule{
	{
		applies: func(s descriptionSignals) bool { return s.strongRecruiting || s.recruitingScore >= 2 },
		value:   true,
	},
	{
		// a confirmed product company is assumed non-recruiting
		applies: func(s descriptionSignals) bool { return s.hasOwnProducts != nil && *s.hasOwnProducts },
		value:   false,
	},
}

func evaluateRules(rules []insightRule, signals descriptionSignals) *bool {
	for _, rule := range rules {
		if rule.applies(signals) {
			return boolPtr(rule.value)
		}
	}
	return nil
}

// heuristicInsights classifies a description with the regex decision tables.
// Absent signal leaves both fields nil; the heuristics never guess.
func heuristicInsights(description string) CompanyInsights {

	signals := descriptionSignals{
		strongProduct:    matchesAny(productStrongPatterns, description),
		productScore:     scoreMatches(productSupportPatterns, description),
		strongRecruiting: matchesAny(recruitingStrongPatterns, description),
		recruitingScore:  scoreMatches(recruitingSupportPatterns, description),
	}

	signals.hasOwnProducts = evaluateRules(hasOwnProductsRules, signals)
	isRecruiting := evaluateRules(isRecruitingCompanyRules, signals)

	return CompanyInsights{
		HasOwnProducts:      signals.hasOwnProducts,
		IsRecruitingCompany: isRecruiting,
	}
}

func matchesAny(patterns []*regexp.Regexp, text string) bool {
	for _, pattern := range patterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}

func scoreMatches(patterns []*regexp.Regexp, text string) int {
	score := 0
	for _, pattern := range patterns {
		if pattern.MatchString(text) {
			score++
		}
	}
	return score
}
