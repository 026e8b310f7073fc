// Package prospect defines the golden records for researched companies
// and contacts, name-based identity resolution, and the field-level
// merge policy applied on repeat research passes.
package prospect

import (
	"errors"
	"time"
)

// ErrNoName marks a parsed contact entry that carries neither a first
// nor a last name. Callers skip such entries rather than persisting
// unidentifiable records.
var ErrNoName = errors.New("prospect: contact has no name")

// Priority classifications derived from the fit score.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Contact priority classifications.
const (
	ContactPrimary   = "primary"
	ContactSecondary = "secondary"
	ContactTertiary  = "tertiary"
)

// ContactPriorityRank orders contact priorities for outreach, lowest
// first. Unknown values sort last.
func ContactPriorityRank(priority string) int {
	switch priority {
	case ContactPrimary:
		return 0
	case ContactSecondary:
		return 1
	case ContactTertiary:
		return 2
	default:
		return 3
	}
}

// PlaceholderEmailPrefix marks synthesized addresses that were never
// observed in research. Placeholder emails are never treated as
// authoritative during matching or merge.
const PlaceholderEmailPrefix = "unknown_"

// Company is the golden record for a researched company.
type Company struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`

	// Basic information
	Website            string `json:"website,omitempty" db:"website"`
	Description        string `json:"description,omitempty" db:"description"`
	Industry           string `json:"industry,omitempty" db:"industry"`
	Sector             string `json:"sector,omitempty" db:"sector"`
	EmployeeCount      string `json:"employee_count,omitempty" db:"employee_count"`
	EmployeeCountExact *int   `json:"employee_count_exact,omitempty" db:"employee_count_exact"`
	HQLocation         string `json:"headquarters_location,omitempty" db:"headquarters_location"`
	FoundedYear        *int   `json:"founded_year,omitempty" db:"founded_year"`

	// Financial
	IPOStatus     string `json:"ipo_status,omitempty" db:"ipo_status"`
	TotalFunding  string `json:"total_funding,omitempty" db:"total_funding"`
	Valuation     string `json:"valuation,omitempty" db:"valuation"`
	Revenue       string `json:"revenue,omitempty" db:"revenue"`
	RevenueGrowth string `json:"revenue_growth,omitempty" db:"revenue_growth"`

	// Business intelligence
	BusinessModel   string   `json:"business_model,omitempty" db:"business_model"`
	KeyProducts     []string `json:"key_products,omitempty" db:"key_products"`
	KeyTechnologies []string `json:"key_technologies,omitempty" db:"key_technologies"`
	Competitors     []string `json:"competitors,omitempty" db:"competitors"`

	// AI/ML profile
	AIUsage          string   `json:"ai_ml_usage,omitempty" db:"ai_ml_usage"`
	AIInfrastructure string   `json:"ai_infrastructure,omitempty" db:"ai_infrastructure"`
	AIInitiatives    []string `json:"ai_initiatives,omitempty" db:"ai_initiatives"`
	MLUseCases       []string `json:"ml_use_cases,omitempty" db:"ml_use_cases"`
	DataTeamSize     string   `json:"data_team_size,omitempty" db:"data_team_size"`

	// Fit analysis
	RecommendedProduct string   `json:"recommended_product,omitempty" db:"recommended_product"`
	FitScore           *int     `json:"fit_score,omitempty" db:"fit_score"`
	ValueProposition   string   `json:"value_proposition,omitempty" db:"value_proposition"`
	UseCases           []string `json:"potential_use_cases,omitempty" db:"potential_use_cases"`
	Timeline           string   `json:"implementation_timeline,omitempty" db:"implementation_timeline"`
	BudgetRange        string   `json:"estimated_budget_range,omitempty" db:"estimated_budget_range"`

	// Research metadata
	QualityScore int      `json:"quality_score" db:"quality_score"`
	Sources      []string `json:"sources,omitempty" db:"sources"`
	Notes        string   `json:"notes,omitempty" db:"notes"`
	Priority     string   `json:"priority" db:"priority"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Readiness returns a 0-100 outreach readiness figure: 20 points for
// each of the five profile fields a tailored outreach needs.
func (c *Company) Readiness() int {
	score := 0
	for _, field := range []string{
		c.Description,
		c.Industry,
		c.AIUsage,
		c.RecommendedProduct,
		c.ValueProposition,
	} {
		if field != "" {
			score += 20
		}
	}
	return score
}

// PriorityForFitScore maps a fit score to a priority classification.
// A missing score defaults to medium.
func PriorityForFitScore(fitScore *int) string {
	if fitScore == nil {
		return PriorityMedium
	}
	switch {
	case *fitScore >= 8:
		return PriorityHigh
	case *fitScore >= 6:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// Contact is a person at a researched company. Identity within a
// company is the normalized (first, last) name pair; email is a
// secondary matching key when it is real.
type Contact struct {
	ID        int64  `json:"id" db:"id"`
	CompanyID int64  `json:"company_id" db:"company_id"`
	FirstName string `json:"first_name" db:"first_name"`
	LastName  string `json:"last_name" db:"last_name"`
	FullName  string `json:"full_name,omitempty" db:"full_name"`
	Title     string `json:"title,omitempty" db:"title"`
	Dept      string `json:"department,omitempty" db:"department"`
	Seniority string `json:"seniority_level,omitempty" db:"seniority_level"`

	Email       string `json:"email,omitempty" db:"email"`
	Phone       string `json:"phone,omitempty" db:"phone"`
	LinkedInURL string `json:"linkedin_url,omitempty" db:"linkedin_url"`
	Twitter     string `json:"twitter_handle,omitempty" db:"twitter_handle"`

	Tenure            string   `json:"tenure,omitempty" db:"tenure"`
	PreviousCompanies []string `json:"previous_companies,omitempty" db:"previous_companies"`
	Education         []string `json:"education,omitempty" db:"education"`
	Certifications    []string `json:"certifications,omitempty" db:"certifications"`

	DecisionMaker       bool   `json:"decision_maker" db:"decision_maker"`
	InfluenceLevel      string `json:"influence_level,omitempty" db:"influence_level"`
	BudgetAuthority     bool   `json:"budget_authority" db:"budget_authority"`
	TechnicalBackground bool   `json:"technical_background" db:"technical_background"`

	AIExperience string   `json:"ai_experience,omitempty" db:"ai_experience"`
	AIInterests  []string `json:"ai_interests,omitempty" db:"ai_interests"`
	Papers       []string `json:"published_papers,omitempty" db:"published_papers"`
	Talks        []string `json:"conference_speaking,omitempty" db:"conference_speaking"`

	CommunicationStyle string   `json:"communication_style,omitempty" db:"communication_style"`
	Interests          []string `json:"interests,omitempty" db:"interests"`
	PainPoints         []string `json:"pain_points,omitempty" db:"pain_points"`
	Achievements       []string `json:"recent_achievements,omitempty" db:"recent_achievements"`

	Priority         string `json:"contact_priority,omitempty" db:"contact_priority"`
	PreferredChannel string `json:"preferred_channel,omitempty" db:"preferred_channel"`

	QualityScore int      `json:"quality_score" db:"quality_score"`
	Sources      []string `json:"sources,omitempty" db:"sources"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// DisplayName returns the contact's full name, falling back to the
// name parts when the full name was never researched.
func (c *Contact) DisplayName() string {
	if c.FullName != "" {
		return c.FullName
	}
	name := c.FirstName
	if c.LastName != "" {
		if name != "" {
			name += " "
		}
		name += c.LastName
	}
	return name
}

// IsPlaceholderEmail reports whether email was synthesized rather than
// observed in research.
func IsPlaceholderEmail(email string) bool {
	return len(email) >= len(PlaceholderEmailPrefix) &&
		email[:len(PlaceholderEmailPrefix)] == PlaceholderEmailPrefix
}
