// Package report builds account analysis reports for researched
// companies from their stored profile and contact roster.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/prospect-cli/internal/genai"
	"github.com/sells-group/prospect-cli/internal/offerings"
	"github.com/sells-group/prospect-cli/internal/prospect"
)

// Generator produces text for a prompt. Satisfied by *genai.Service.
type Generator interface {
	Generate(ctx context.Context, req genai.Request) (*genai.Result, error)
}

// ContactSummary aggregates the stakeholder roster.
type ContactSummary struct {
	Total          int `json:"total_contacts"`
	Primary        int `json:"primary_contacts"`
	DecisionMakers int `json:"decision_makers"`
	Technical      int `json:"technical_contacts"`
	CLevel         int `json:"c_level_contacts"`
	HighInfluence  int `json:"high_influence_contacts"`
}

// Report is a generated account analysis.
type Report struct {
	CompanyID    int64          `json:"company_id"`
	CompanyName  string         `json:"company_name"`
	GeneratedAt  time.Time      `json:"generated_at"`
	Content      string         `json:"report_content"`
	Readiness    int            `json:"engagement_readiness"`
	Completeness int            `json:"data_completeness_score"`
	Contacts     ContactSummary `json:"contact_summary"`
	QualityScore int            `json:"company_research_score"`
}

// Service generates and caches account reports. Reports are expensive
// to produce and stable between research runs, so they live in a TTL
// cache keyed by company ID.
type Service struct {
	gen     Generator
	store   prospect.Store
	catalog *offerings.Catalog
	cache   *gocache.Cache
}

// Option configures a report Service.
type Option func(*Service)

// WithCacheTTL overrides how long generated reports are kept.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = gocache.New(ttl, 2*ttl)
	}
}

const defaultCacheTTL = 15 * time.Minute

func NewService(gen Generator, store prospect.Store, catalog *offerings.Catalog, opts ...Option) *Service {
	s := &Service{
		gen:     gen,
		store:   store,
		catalog: catalog,
		cache:   gocache.New(defaultCacheTTL, 2*defaultCacheTTL),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AccountReport loads the company and its contacts and generates a
// full analysis report, serving a cached copy when one is fresh.
func (s *Service) AccountReport(ctx context.Context, companyID int64) (*Report, error) {
	key := fmt.Sprintf("report/%d", companyID)
	if cached, ok := s.cache.Get(key); ok {
		zap.L().Debug("report: cache hit", zap.Int64("company_id", companyID))
		return cached.(*Report), nil
	}

	company, err := s.store.GetCompany(ctx, companyID)
	if err != nil {
		return nil, eris.Wrap(err, "report: load company")
	}
	contacts, err := s.store.ListContacts(ctx, companyID)
	if err != nil {
		return nil, eris.Wrap(err, "report: load contacts")
	}

	summary := summarizeContacts(contacts)

	res, err := s.gen.Generate(ctx, s.reportRequest(company, contacts, summary))
	if err != nil {
		return nil, eris.Wrapf(err, "report: generate for %s", company.Name)
	}

	r := &Report{
		CompanyID:    company.ID,
		CompanyName:  company.Name,
		GeneratedAt:  time.Now().UTC(),
		Content:      res.Content,
		Readiness:    company.Readiness(),
		Completeness: Completeness(company, len(contacts)),
		Contacts:     summary,
		QualityScore: company.QualityScore,
	}
	s.cache.Set(key, r, gocache.DefaultExpiration)
	return r, nil
}

func (s *Service) reportRequest(company *prospect.Company, contacts []prospect.Contact, summary ContactSummary) genai.Request {
	companyJSON, _ := json.MarshalIndent(company, "", "  ")
	contactsJSON, _ := json.MarshalIndent(contacts, "", "  ")
	summaryJSON, _ := json.MarshalIndent(summary, "", "  ")

	// Static framing in System so system-caching providers reuse it.
	system := fmt.Sprintf(`You are a senior sales analyst at %s creating a comprehensive customer analysis report.
Generate a detailed report that leverages all available data to provide actionable insights.

PRODUCT OFFERINGS:
%s`, s.catalog.Company, s.catalog.PromptBlock())

	context := fmt.Sprintf(`COMPLETE COMPANY PROFILE:
%s

CONTACT INFORMATION & STAKEHOLDER ANALYSIS:
Contact Summary: %s

Detailed Contacts:
%s`, companyJSON, summaryJSON, contactsJSON)

	prompt := `Create a comprehensive customer analysis report that includes:

# 1. EXECUTIVE SUMMARY
   - Company overview with key business metrics
   - Strategic importance and fit assessment with our offerings
   - Investment opportunity summary and revenue potential

# 2. COMPANY INTELLIGENCE DEEP DIVE
   - Business model and financial profile analysis
   - Key products, technologies, and competitive positioning

# 3. AI/ML INFRASTRUCTURE & REQUIREMENTS ANALYSIS
   - Current AI/ML infrastructure assessment and gaps
   - Specific use cases and technical requirements

# 4. PRODUCT FIT & RECOMMENDATIONS
   - Detailed offering recommendation with technical justification
   - Implementation approach and timeline
   - ROI calculation and business case

# 5. STAKEHOLDER MAPPING & ENGAGEMENT STRATEGY
   - Decision-making hierarchy and influence mapping
   - Personalized outreach strategies by contact

# 6. COMPETITIVE LANDSCAPE & POSITIONING
   - Current vendor relationships and competitive threats
   - Differentiation and value proposition

# 7. SALES STRATEGY & EXECUTION PLAN
   - Go-to-market approach and messaging framework
   - Timeline and milestone planning

# 8. IMMEDIATE ACTION ITEMS
   - Next 30/60/90 day action plan
   - Success milestones and check-in points

Format as a detailed markdown report with data-driven insights, specific recommendations,
and actionable next steps. Use professional business language suitable for C-level presentations.`

	temp := 0.3
	return genai.Request{System: system, Prompt: prompt, Context: context, Temperature: &temp}
}

func summarizeContacts(contacts []prospect.Contact) ContactSummary {
	s := ContactSummary{Total: len(contacts)}
	for _, c := range contacts {
		if c.Priority == prospect.ContactPrimary {
			s.Primary++
		}
		if c.DecisionMaker {
			s.DecisionMakers++
		}
		if c.TechnicalBackground {
			s.Technical++
		}
		if c.Seniority == "c_level" {
			s.CLevel++
		}
		if c.InfluenceLevel == "high" {
			s.HighInfluence++
		}
	}
	return s
}

// Completeness scores how much of the profile research has filled in:
// field coverage carries 70 points, contacts add 5 each up to 20, and
// detailed AI infrastructure adds 10. Capped at 100.
func Completeness(company *prospect.Company, contactCount int) int {
	fields := []bool{
		company.Name != "",
		company.Industry != "",
		company.Description != "",
		company.Website != "",
		company.EmployeeCount != "",
		company.AIUsage != "",
		company.RecommendedProduct != "",
		company.FitScore != nil,
	}
	completed := 0
	for _, ok := range fields {
		if ok {
			completed++
		}
	}
	score := completed * 70 / len(fields)

	contactBonus := contactCount * 5
	if contactBonus > 20 {
		contactBonus = 20
	}
	score += contactBonus

	if company.AIInfrastructure != "" && len(company.MLUseCases) > 0 {
		score += 10
	}

	if score > 100 {
		score = 100
	}
	return score
}
