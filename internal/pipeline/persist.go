package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/prospect"
)

const (
	defaultQualityScore = 5
	rawNotesLimit       = 1000
)

// Persister writes parsed research through the entity resolver and
// merge policy. Resolve-merge-save is a non-atomic read-modify-write,
// so each identity key is serialized with a keyed lock; two pipelines
// landing on the same normalized name cannot lose each other's update.
type Persister struct {
	store    prospect.Store
	resolver *prospect.Resolver
	locks    *prospect.KeyedLock
}

func NewPersister(store prospect.Store) *Persister {
	return &Persister{
		store:    store,
		resolver: prospect.NewResolver(store),
		locks:    prospect.NewKeyedLock(),
	}
}

// SaveCompany resolves the candidate against existing records and
// merges or creates. The returned record always carries a store ID.
func (p *Persister) SaveCompany(ctx context.Context, parsed *model.CompanyResearch, fallbackName, rawResearch string) (*prospect.Company, error) {
	candidate := companyFromResearch(parsed, fallbackName, rawResearch)

	key := "company/" + prospect.NormalizeCompanyName(candidate.Name)
	p.locks.Lock(key)
	defer p.locks.Unlock(key)

	existing, err := p.resolver.FindCompany(ctx, candidate.Name)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: resolve company")
	}

	if existing != nil {
		prospect.MergeCompany(existing, candidate)
		if err := p.store.UpdateCompany(ctx, existing); err != nil {
			return nil, eris.Wrap(err, "pipeline: update company")
		}
		zap.L().Info("pipeline: updated existing company",
			zap.String("name", existing.Name),
			zap.Int64("id", existing.ID),
		)
		return existing, nil
	}

	if err := p.store.CreateCompany(ctx, candidate); err != nil {
		return nil, eris.Wrap(err, "pipeline: create company")
	}
	zap.L().Info("pipeline: created new company",
		zap.String("name", candidate.Name),
		zap.Int64("id", candidate.ID),
	)
	return candidate, nil
}

// SaveContacts persists each parsed contact independently. A nameless
// entry is skipped and a failed entry is logged and skipped; neither
// blocks siblings. Returns the number of contacts saved.
func (p *Persister) SaveContacts(ctx context.Context, company *prospect.Company, parsed []model.ContactResearch) int {
	saved := 0
	for _, pc := range parsed {
		candidate, err := contactFromResearch(pc, company)
		if err != nil {
			if !errors.Is(err, prospect.ErrNoName) {
				zap.L().Warn("pipeline: invalid contact entry", zap.Error(err))
			}
			continue
		}

		if err := p.saveContact(ctx, company.ID, candidate); err != nil {
			zap.L().Warn("pipeline: failed to save contact",
				zap.String("company", company.Name),
				zap.String("contact", candidate.DisplayName()),
				zap.Error(err),
			)
			continue
		}
		saved++
	}
	return saved
}

func (p *Persister) saveContact(ctx context.Context, companyID int64, candidate *prospect.Contact) error {
	key := fmt.Sprintf("contact/%d/%s", companyID, prospect.NormalizeContactName(candidate.FirstName, candidate.LastName))
	p.locks.Lock(key)
	defer p.locks.Unlock(key)

	existing, err := p.resolver.FindContact(ctx, companyID, candidate.FirstName, candidate.LastName, candidate.Email)
	if err != nil {
		return eris.Wrap(err, "pipeline: resolve contact")
	}

	if existing != nil {
		prospect.MergeContact(existing, candidate)
		if err := p.store.UpdateContact(ctx, existing); err != nil {
			return eris.Wrap(err, "pipeline: update contact")
		}
		return nil
	}

	if err := p.store.CreateContact(ctx, candidate); err != nil {
		return eris.Wrap(err, "pipeline: create contact")
	}
	return nil
}

// SavePlaceholder records a minimal company for a target whose run
// produced nothing persistable. Existing records are left untouched.
func (p *Persister) SavePlaceholder(ctx context.Context, name, note string) (*prospect.Company, error) {
	key := "company/" + prospect.NormalizeCompanyName(name)
	p.locks.Lock(key)
	defer p.locks.Unlock(key)

	existing, err := p.resolver.FindCompany(ctx, name)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: resolve placeholder")
	}
	if existing != nil {
		return existing, nil
	}

	candidate := &prospect.Company{
		Name:         name,
		Notes:        note,
		QualityScore: 1,
		Priority:     prospect.PriorityForFitScore(nil),
	}
	if err := p.store.CreateCompany(ctx, candidate); err != nil {
		return nil, eris.Wrap(err, "pipeline: create placeholder")
	}
	return candidate, nil
}

func companyFromResearch(parsed *model.CompanyResearch, fallbackName, rawResearch string) *prospect.Company {
	name := strings.TrimSpace(parsed.BasicInfo.Name)
	if name == "" {
		name = fallbackName
	}

	quality := defaultQualityScore
	if parsed.Meta.QualityScore != nil {
		quality = *parsed.Meta.QualityScore
	}

	notes := parsed.Meta.Notes
	if notes == "" && rawResearch != "" {
		notes = truncate(rawResearch, rawNotesLimit)
	}

	return &prospect.Company{
		Name:               name,
		Website:            parsed.BasicInfo.Website,
		Description:        parsed.BasicInfo.Description,
		Industry:           parsed.BasicInfo.Industry,
		Sector:             parsed.BasicInfo.Sector,
		EmployeeCount:      parsed.BasicInfo.EmployeeCount,
		EmployeeCountExact: parsed.BasicInfo.EmployeeCountExact,
		HQLocation:         parsed.BasicInfo.HQLocation,
		FoundedYear:        parsed.BasicInfo.FoundedYear,

		IPOStatus:     parsed.FinancialInfo.IPOStatus,
		TotalFunding:  parsed.FinancialInfo.TotalFunding,
		Valuation:     parsed.FinancialInfo.Valuation,
		Revenue:       parsed.FinancialInfo.Revenue,
		RevenueGrowth: parsed.FinancialInfo.RevenueGrowth,

		BusinessModel:   parsed.BusinessIntel.BusinessModel,
		KeyProducts:     parsed.BusinessIntel.KeyProducts,
		KeyTechnologies: parsed.BusinessIntel.KeyTechnologies,
		Competitors:     parsed.BusinessIntel.Competitors,

		AIUsage:          parsed.AIProfile.AIUsage,
		AIInfrastructure: parsed.AIProfile.AIInfrastructure,
		AIInitiatives:    parsed.AIProfile.AIInitiatives,
		MLUseCases:       parsed.AIProfile.MLUseCases,
		DataTeamSize:     parsed.AIProfile.DataTeamSize,

		RecommendedProduct: parsed.FitAnalysis.RecommendedProduct,
		FitScore:           parsed.FitAnalysis.FitScore,
		ValueProposition:   parsed.FitAnalysis.ValueProposition,
		UseCases:           parsed.FitAnalysis.UseCases,
		Timeline:           parsed.FitAnalysis.Timeline,
		BudgetRange:        parsed.FitAnalysis.BudgetRange,

		QualityScore: quality,
		Sources:      parsed.Meta.Sources,
		Notes:        notes,
		Priority:     prospect.PriorityForFitScore(parsed.FitAnalysis.FitScore),
	}
}

func contactFromResearch(parsed model.ContactResearch, company *prospect.Company) (*prospect.Contact, error) {
	first := strings.TrimSpace(parsed.BasicInfo.FirstName)
	last := strings.TrimSpace(parsed.BasicInfo.LastName)
	if first == "" && last == "" {
		return nil, prospect.ErrNoName
	}

	email := strings.TrimSpace(parsed.ContactInfo.Email)
	if !prospect.IsRealEmail(email) {
		email = prospect.FallbackEmail(first, last, company.Name)
	}

	fullName := parsed.BasicInfo.FullName
	if fullName == "" {
		fullName = strings.TrimSpace(first + " " + last)
	}

	quality := defaultQualityScore
	if parsed.Quality.QualityScore != nil {
		quality = *parsed.Quality.QualityScore
	}

	return &prospect.Contact{
		CompanyID: company.ID,
		FirstName: first,
		LastName:  last,
		FullName:  fullName,
		Title:     parsed.BasicInfo.Title,
		Dept:      parsed.BasicInfo.Dept,
		Seniority: defaultStr(parsed.BasicInfo.Seniority, "other"),

		Email:       email,
		Phone:       parsed.ContactInfo.Phone,
		LinkedInURL: parsed.ContactInfo.LinkedInURL,
		Twitter:     parsed.ContactInfo.Twitter,

		Tenure:            parsed.Professional.Tenure,
		PreviousCompanies: parsed.Professional.PreviousCompanies,
		Education:         parsed.Professional.Education,
		Certifications:    parsed.Professional.Certifications,

		DecisionMaker:       parsed.DecisionMaking.DecisionMaker,
		InfluenceLevel:      defaultStr(parsed.DecisionMaking.InfluenceLevel, "unknown"),
		BudgetAuthority:     parsed.DecisionMaking.BudgetAuthority,
		TechnicalBackground: parsed.DecisionMaking.TechnicalBackground,

		AIExperience: parsed.AIProfile.AIExperience,
		AIInterests:  parsed.AIProfile.AIInterests,
		Papers:       parsed.AIProfile.Papers,
		Talks:        parsed.AIProfile.Talks,

		CommunicationStyle: defaultStr(parsed.Personalization.CommunicationStyle, "unknown"),
		Interests:          parsed.Personalization.Interests,
		PainPoints:         parsed.Personalization.PainPoints,
		Achievements:       parsed.Personalization.Achievements,

		Priority:         defaultStr(parsed.Outreach.Priority, prospect.ContactSecondary),
		PreferredChannel: defaultStr(parsed.Outreach.PreferredChannel, "email"),

		QualityScore: quality,
		Sources:      parsed.Quality.Sources,
	}, nil
}

func defaultStr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
