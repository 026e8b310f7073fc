package prospect

import (
	"strconv"
	"strings"
)

// MergeCompany folds a freshly parsed candidate into an existing
// company record in place. Rules, applied independently per field:
//
//   - quality score: overwrite only when strictly greater
//   - everything else: overwrite when the existing value is empty or
//     the candidate's text is strictly longer (a proxy for "more
//     informative"; wordier later research can displace terser earlier
//     data, which is accepted)
//   - display name: always refreshed to the latest candidate, since
//     normalized identity is unaffected by formatting fixes
//
// Merging the same candidate twice is a no-op the second time.
func MergeCompany(existing, candidate *Company) {
	if candidate.Name != "" {
		existing.Name = candidate.Name
	}

	mergeStr(&existing.Website, candidate.Website)
	mergeStr(&existing.Description, candidate.Description)
	mergeStr(&existing.Industry, candidate.Industry)
	mergeStr(&existing.Sector, candidate.Sector)
	mergeStr(&existing.EmployeeCount, candidate.EmployeeCount)
	mergeIntPtr(&existing.EmployeeCountExact, candidate.EmployeeCountExact)
	mergeStr(&existing.HQLocation, candidate.HQLocation)
	mergeIntPtr(&existing.FoundedYear, candidate.FoundedYear)

	mergeStr(&existing.IPOStatus, candidate.IPOStatus)
	mergeStr(&existing.TotalFunding, candidate.TotalFunding)
	mergeStr(&existing.Valuation, candidate.Valuation)
	mergeStr(&existing.Revenue, candidate.Revenue)
	mergeStr(&existing.RevenueGrowth, candidate.RevenueGrowth)

	mergeStr(&existing.BusinessModel, candidate.BusinessModel)
	mergeList(&existing.KeyProducts, candidate.KeyProducts)
	mergeList(&existing.KeyTechnologies, candidate.KeyTechnologies)
	mergeList(&existing.Competitors, candidate.Competitors)

	mergeStr(&existing.AIUsage, candidate.AIUsage)
	mergeStr(&existing.AIInfrastructure, candidate.AIInfrastructure)
	mergeList(&existing.AIInitiatives, candidate.AIInitiatives)
	mergeList(&existing.MLUseCases, candidate.MLUseCases)
	mergeStr(&existing.DataTeamSize, candidate.DataTeamSize)

	mergeStr(&existing.RecommendedProduct, candidate.RecommendedProduct)
	mergeIntPtr(&existing.FitScore, candidate.FitScore)
	mergeStr(&existing.ValueProposition, candidate.ValueProposition)
	mergeList(&existing.UseCases, candidate.UseCases)
	mergeStr(&existing.Timeline, candidate.Timeline)
	mergeStr(&existing.BudgetRange, candidate.BudgetRange)

	if candidate.QualityScore > existing.QualityScore {
		existing.QualityScore = candidate.QualityScore
	}
	mergeList(&existing.Sources, candidate.Sources)
	mergeStr(&existing.Notes, candidate.Notes)

	existing.Priority = PriorityForFitScore(existing.FitScore)
}

// MergeContact folds a freshly parsed candidate into an existing
// contact record in place. Same rules as MergeCompany, plus the email
// rule: a real (well-formed, non-placeholder) candidate email always
// displaces whatever is stored; anything else never does.
func MergeContact(existing, candidate *Contact) {
	if IsRealEmail(candidate.Email) {
		existing.Email = candidate.Email
	}

	mergeStr(&existing.FirstName, candidate.FirstName)
	mergeStr(&existing.LastName, candidate.LastName)
	mergeStr(&existing.FullName, candidate.FullName)
	mergeStr(&existing.Title, candidate.Title)
	mergeStr(&existing.Dept, candidate.Dept)
	mergeStr(&existing.Seniority, candidate.Seniority)

	mergeStr(&existing.Phone, candidate.Phone)
	mergeStr(&existing.LinkedInURL, candidate.LinkedInURL)
	mergeStr(&existing.Twitter, candidate.Twitter)

	mergeStr(&existing.Tenure, candidate.Tenure)
	mergeList(&existing.PreviousCompanies, candidate.PreviousCompanies)
	mergeList(&existing.Education, candidate.Education)
	mergeList(&existing.Certifications, candidate.Certifications)

	if candidate.DecisionMaker {
		existing.DecisionMaker = true
	}
	mergeStr(&existing.InfluenceLevel, candidate.InfluenceLevel)
	if candidate.BudgetAuthority {
		existing.BudgetAuthority = true
	}
	if candidate.TechnicalBackground {
		existing.TechnicalBackground = true
	}

	mergeStr(&existing.AIExperience, candidate.AIExperience)
	mergeList(&existing.AIInterests, candidate.AIInterests)
	mergeList(&existing.Papers, candidate.Papers)
	mergeList(&existing.Talks, candidate.Talks)

	mergeStr(&existing.CommunicationStyle, candidate.CommunicationStyle)
	mergeList(&existing.Interests, candidate.Interests)
	mergeList(&existing.PainPoints, candidate.PainPoints)
	mergeList(&existing.Achievements, candidate.Achievements)

	mergeStr(&existing.Priority, candidate.Priority)
	mergeStr(&existing.PreferredChannel, candidate.PreferredChannel)

	if candidate.QualityScore > existing.QualityScore {
		existing.QualityScore = candidate.QualityScore
	}
	mergeList(&existing.Sources, candidate.Sources)
}

func mergeStr(existing *string, candidate string) {
	cand := strings.TrimSpace(candidate)
	if cand == "" {
		return
	}
	cur := strings.TrimSpace(*existing)
	if cur == "" || len(cand) > len(cur) {
		*existing = candidate
	}
}

// mergeList compares joined text length, so a candidate list wins when
// it carries strictly more text, not merely more entries.
func mergeList(existing *[]string, candidate []string) {
	if len(candidate) == 0 {
		return
	}
	if len(*existing) == 0 || textLen(candidate) > textLen(*existing) {
		*existing = candidate
	}
}

func textLen(items []string) int {
	n := 0
	for _, s := range items {
		n += len(strings.TrimSpace(s))
	}
	return n
}

func mergeIntPtr(existing **int, candidate *int) {
	if candidate == nil {
		return
	}
	if *existing == nil || len(strconv.Itoa(*candidate)) > len(strconv.Itoa(**existing)) {
		v := *candidate
		*existing = &v
	}
}
