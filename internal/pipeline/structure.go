package pipeline

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/sells-group/prospect-cli/internal/genai"
	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/offerings"
)

const companySchema = `{
    "basic_info": {
        "name": "string",
        "website": "string",
        "description": "string",
        "industry": "string",
        "sector": "string",
        "headquarters_location": "string",
        "founded_year": "integer or null",
        "employee_count": "string (range like '1001-5000')",
        "employee_count_exact": "integer or null"
    },
    "financial_info": {
        "ipo_status": "string (Public/Private/Acquired)",
        "total_funding": "string or null",
        "valuation": "string or null",
        "revenue": "string or null",
        "revenue_growth": "string or null"
    },
    "business_intelligence": {
        "business_model": "string",
        "key_products": ["array of product names"],
        "key_technologies": ["array of technologies"],
        "competitors": ["array of competitor names"]
    },
    "ai_ml_info": {
        "ai_ml_usage": "string describing current AI/ML usage",
        "current_ai_infrastructure": "string describing current setup",
        "ai_initiatives": ["array of AI initiatives"],
        "ml_use_cases": ["array of ML use cases"],
        "data_science_team_size": "string or null"
    },
    "fit_analysis": {
        "recommended_product": "string (name of most suitable offering)",
        "fit_score": "integer (1-10 scale)",
        "value_proposition": "string explaining why the offering would be valuable",
        "potential_use_cases": ["array of specific use cases"],
        "implementation_timeline": "string (e.g., '3-6 months')",
        "estimated_budget_range": "string or null"
    },
    "research_metadata": {
        "quality_score": "integer (1-10 scale based on information completeness)",
        "sources": ["array of information sources mentioned"],
        "notes": "string with additional context"
    }
}`

const contactSchema = `[
    {
        "basic_info": {
            "first_name": "string",
            "last_name": "string",
            "full_name": "string",
            "title": "string",
            "department": "string or null",
            "seniority_level": "string (c_level/vp/director/manager/senior/mid/junior/other)"
        },
        "contact_info": {
            "email": "string or null",
            "phone": "string or null",
            "linkedin_url": "string or null",
            "twitter_handle": "string or null"
        },
        "professional_background": {
            "tenure_at_company": "string or null",
            "previous_companies": ["array of company names"],
            "education": ["array of education details"],
            "certifications": ["array of certifications"]
        },
        "decision_making": {
            "decision_maker": "boolean",
            "influence_level": "string (high/medium/low/unknown)",
            "budget_authority": "boolean",
            "technical_background": "boolean"
        },
        "ai_ml_profile": {
            "ai_ml_experience": "string describing their AI/ML background",
            "ai_ml_interests": ["array of AI/ML interests"],
            "published_papers": ["array of paper titles"],
            "conference_speaking": ["array of speaking engagements"]
        },
        "personalization": {
            "communication_style": "string (technical/business/mixed/unknown)",
            "interests": ["array of professional interests"],
            "pain_points": ["array of challenges they face"],
            "recent_achievements": ["array of recent accomplishments"]
        },
        "outreach_profile": {
            "contact_priority": "string (primary/secondary/tertiary)",
            "preferred_contact_method": "string (email/linkedin/phone/unknown)"
        },
        "research_quality": {
            "quality_score": "integer (1-10 scale)",
            "data_sources": ["array of sources"]
        }
    }
]`

// The structuring system blocks carry only static material (schema,
// offerings catalog) so providers that cache system prompts reuse them
// across a whole batch. Per-company text rides in Context.
func structureCompanyRequest(name, researchText string, cat *offerings.Catalog) genai.Request {
	system := fmt.Sprintf(`You parse company research into a structured JSON format.
Extract all available information and organize it according to this schema:

%s

Use null for missing information. Be precise with data types.
For the fit analysis, match the company's needs to the most appropriate offering from:
%s

Return only valid JSON, no additional text.`, companySchema, cat.PromptBlock())

	return genai.Request{
		System:      system,
		Prompt:      "Extract and structure the research data according to the JSON schema provided.",
		Context:     fmt.Sprintf("Research about %q:\n\n%s", name, researchText),
		Temperature: f64(0.1),
	}
}

func structureContactsRequest(name, researchText string) genai.Request {
	system := fmt.Sprintf(`You parse contact research into a structured JSON array format.
Extract information about each contact person found, organized according to this schema:

%s

Extract all contacts found in the research. Use boolean true/false appropriately.
Set contact_priority to "primary" for C-level and VP roles, "secondary" for directors, "tertiary" for others.
Return only valid JSON array, no additional text.`, contactSchema)

	return genai.Request{
		System:      system,
		Prompt:      "Extract and structure the contact research data according to the JSON schema provided.",
		Context:     fmt.Sprintf("Contact research for %q:\n\n%s", name, researchText),
		Temperature: f64(0.1),
	}
}

// ParseCompanyResearch sanitizes and parses structuring output. A
// parse failure degrades to a minimal record carrying the raw text so
// persistence can still proceed with a bare name.
func ParseCompanyResearch(name, raw string) *model.CompanyResearch {
	var parsed model.CompanyResearch
	if err := json.Unmarshal([]byte(ExtractJSON(raw)), &parsed); err != nil {
		zap.L().Warn("pipeline: company research did not parse",
			zap.String("company", name),
			zap.Error(err),
		)
		return &model.CompanyResearch{
			BasicInfo:  model.CompanyBasicInfo{Name: name},
			ParseError: "failed to parse structured data",
			Raw:        raw,
		}
	}
	if parsed.BasicInfo.Name == "" {
		parsed.BasicInfo.Name = name
	}
	return &parsed
}

// ParseContactResearch sanitizes and parses contact structuring
// output. A single object is treated as a one-element list; anything
// unparseable degrades to an empty list.
func ParseContactResearch(name, raw string) []model.ContactResearch {
	cleaned := ExtractJSON(raw)

	var contacts []model.ContactResearch
	if err := json.Unmarshal([]byte(cleaned), &contacts); err == nil {
		return contacts
	}

	var single model.ContactResearch
	if err := json.Unmarshal([]byte(cleaned), &single); err == nil {
		return []model.ContactResearch{single}
	}

	zap.L().Warn("pipeline: contact research did not parse",
		zap.String("company", name),
	)
	return nil
}
