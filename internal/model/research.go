// Package model defines the ephemeral value types that flow through the
// research pipeline: structured research parsed from generation output
// and per-target batch outcomes. Nothing here is persisted directly;
// parsed research always passes through resolution and merge first.
package model

// CompanyResearch is structured company research parsed from the
// structuring provider's JSON output. Fields mirror the schema sent in
// the structuring prompt; missing keys stay at their zero value.
type CompanyResearch struct {
	BasicInfo     CompanyBasicInfo    `json:"basic_info"`
	FinancialInfo CompanyFinancial    `json:"financial_info"`
	BusinessIntel CompanyBusiness     `json:"business_intelligence"`
	AIProfile     CompanyAIProfile    `json:"ai_ml_info"`
	FitAnalysis   CompanyFitAnalysis  `json:"fit_analysis"`
	Meta          CompanyResearchMeta `json:"research_metadata"`

	// ParseError and Raw carry degraded output when the structuring
	// response was not valid JSON. BasicInfo.Name is still set so a
	// minimal record can be persisted.
	ParseError string `json:"error,omitempty"`
	Raw        string `json:"raw_content,omitempty"`
}

// CompanyBasicInfo is the identity block of parsed company research.
type CompanyBasicInfo struct {
	Name               string `json:"name"`
	Website            string `json:"website"`
	Description        string `json:"description"`
	Industry           string `json:"industry"`
	Sector             string `json:"sector"`
	HQLocation         string `json:"headquarters_location"`
	FoundedYear        *int   `json:"founded_year"`
	EmployeeCount      string `json:"employee_count"`
	EmployeeCountExact *int   `json:"employee_count_exact"`
}

// CompanyFinancial is the funding and revenue block.
type CompanyFinancial struct {
	IPOStatus     string `json:"ipo_status"`
	TotalFunding  string `json:"total_funding"`
	Valuation     string `json:"valuation"`
	Revenue       string `json:"revenue"`
	RevenueGrowth string `json:"revenue_growth"`
}

// CompanyBusiness is the business-intelligence block.
type CompanyBusiness struct {
	BusinessModel   string   `json:"business_model"`
	KeyProducts     []string `json:"key_products"`
	KeyTechnologies []string `json:"key_technologies"`
	Competitors     []string `json:"competitors"`
}

// CompanyAIProfile describes the target's AI/ML posture.
type CompanyAIProfile struct {
	AIUsage          string   `json:"ai_ml_usage"`
	AIInfrastructure string   `json:"current_ai_infrastructure"`
	AIInitiatives    []string `json:"ai_initiatives"`
	MLUseCases       []string `json:"ml_use_cases"`
	DataTeamSize     string   `json:"data_science_team_size"`
}

// CompanyFitAnalysis maps the target onto the seller's catalog.
type CompanyFitAnalysis struct {
	RecommendedProduct string   `json:"recommended_product"`
	FitScore           *int     `json:"fit_score"`
	ValueProposition   string   `json:"value_proposition"`
	UseCases           []string `json:"potential_use_cases"`
	Timeline           string   `json:"implementation_timeline"`
	BudgetRange        string   `json:"estimated_budget_range"`
}

// CompanyResearchMeta grades the research itself.
type CompanyResearchMeta struct {
	QualityScore *int     `json:"quality_score"`
	Sources      []string `json:"sources"`
	Notes        string   `json:"notes"`
}

// ContactResearch is one person parsed from contact research.
type ContactResearch struct {
	BasicInfo       ContactBasicInfo       `json:"basic_info"`
	ContactInfo     ContactChannels        `json:"contact_info"`
	Professional    ContactProfessional    `json:"professional_background"`
	DecisionMaking  ContactDecisionMaking  `json:"decision_making"`
	AIProfile       ContactAIProfile       `json:"ai_ml_profile"`
	Personalization ContactPersonalization `json:"personalization"`
	Outreach        ContactOutreach        `json:"outreach_profile"`
	Quality         ContactQuality         `json:"research_quality"`
}

// ContactBasicInfo is the identity block of a parsed contact.
type ContactBasicInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
	Title     string `json:"title"`
	Dept      string `json:"department"`
	Seniority string `json:"seniority_level"`
}

// ContactChannels holds ways to reach the person.
type ContactChannels struct {
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	LinkedInURL string `json:"linkedin_url"`
	Twitter     string `json:"twitter_handle"`
}

// ContactProfessional is the career-history block.
type ContactProfessional struct {
	Tenure            string   `json:"tenure_at_company"`
	PreviousCompanies []string `json:"previous_companies"`
	Education         []string `json:"education"`
	Certifications    []string `json:"certifications"`
}

// ContactDecisionMaking captures purchasing influence.
type ContactDecisionMaking struct {
	DecisionMaker       bool   `json:"decision_maker"`
	InfluenceLevel      string `json:"influence_level"`
	BudgetAuthority     bool   `json:"budget_authority"`
	TechnicalBackground bool   `json:"technical_background"`
}

// ContactAIProfile describes the person's AI/ML background.
type ContactAIProfile struct {
	AIExperience string   `json:"ai_ml_experience"`
	AIInterests  []string `json:"ai_ml_interests"`
	Papers       []string `json:"published_papers"`
	Talks        []string `json:"conference_speaking"`
}

// ContactPersonalization holds hooks for tailored outreach.
type ContactPersonalization struct {
	CommunicationStyle string   `json:"communication_style"`
	Interests          []string `json:"interests"`
	PainPoints         []string `json:"pain_points"`
	Achievements       []string `json:"recent_achievements"`
}

// ContactOutreach classifies how and how urgently to reach out.
type ContactOutreach struct {
	Priority         string `json:"contact_priority"`
	PreferredChannel string `json:"preferred_contact_method"`
}

// ContactQuality grades the contact research.
type ContactQuality struct {
	QualityScore *int     `json:"quality_score"`
	Sources      []string `json:"data_sources"`
}
