package pipeline

import (
	"fmt"
	"strings"

	"github.com/sells-group/prospect-cli/internal/genai"
	"github.com/sells-group/prospect-cli/internal/offerings"
)

// Stage prompts follow the research playbook: a short instruction plus
// a long context block the instruction refers to. The catalog is
// embedded opaquely wherever the prompt positions the seller's
// offerings.

func f64(v float64) *float64 { return &v }

func broadResearchRequest(name string, cat *offerings.Catalog) genai.Request {
	context := fmt.Sprintf(`Research the company %q and provide comprehensive information for %s sales targeting.
Please provide detailed information in the following categories:

1. BASIC COMPANY INFO:
- Full company name and website
- Industry and sector
- Headquarters location
- Founded year
- Employee count (approximate range and exact if available)
- Brief company description

2. FINANCIAL & FUNDING:
- IPO status (Public/Private/Acquired)
- Last funding round details (amount, date, round type)
- Total funding raised
- Current valuation
- Annual revenue (if available)
- Revenue growth rate

3. BUSINESS INTELLIGENCE:
- Business model
- Key products and services
- Main competitors
- Recent strategic initiatives
- Technology stack and infrastructure

4. AI/ML FOCUS:
- Current AI/ML usage and initiatives
- Data science and ML team size
- AI infrastructure and cloud providers
- Machine learning use cases
- AI-related challenges or pain points
- Published AI research or patents

5. DECISION MAKERS:
- CTO, CIO, Chief Data Officer, VP Engineering names
- Head of AI/ML, Data Science leadership
- Contact information if publicly available
- LinkedIn profiles
- Their backgrounds and tenure

6. OFFERING FIT ANALYSIS:
Our offerings:
%s
- Potential use cases for these offerings at the company
- Current limitations the offerings could address
- Budget range for such work (if known)
- Implementation timeline potential
- Why these offerings would be valuable for them

Please be as detailed and specific as possible. Include recent news, funding announcements, and AI initiatives.
Focus on information that would help write a highly personalized outreach email.`, name, cat.Company, cat.PromptBlock())

	return genai.Request{
		Prompt:      fmt.Sprintf("Provide comprehensive company research for %s sales targeting.", cat.Company),
		Context:     context,
		Temperature: f64(0.1),
	}
}

var defaultTargetRoles = []string{
	"CTO", "Chief Technology Officer",
	"CIO", "Chief Information Officer",
	"Chief Data Officer", "CDO",
	"VP Engineering", "Vice President Engineering",
	"Head of AI", "Head of Machine Learning",
	"Director of Data Science", "AI Lead",
}

func contactResearchRequest(name string, roles []string) genai.Request {
	if len(roles) == 0 {
		roles = defaultTargetRoles
	}
	context := fmt.Sprintf(`Find detailed information about key technology leaders at %q in these roles: %s

For each person found, provide:
1. Full name and current title
2. Email address (if publicly available)
3. LinkedIn profile URL
4. Professional background and previous companies
5. Education and certifications
6. Tenure at current company
7. AI/ML experience and interests
8. Recent publications, speaking engagements, or thought leadership
9. Decision-making authority and influence level
10. Communication style and preferences (technical vs business-focused)
11. Recent achievements or projects they've worked on
12. Pain points or challenges they've mentioned publicly

Focus on finding contacts who would be involved in technology purchasing decisions.
Include their social media presence and any recent interviews or articles they've written.`, name, strings.Join(roles, ", "))

	return genai.Request{
		Prompt:      "Find detailed information about key technology leaders at the company.",
		Context:     context,
		Temperature: f64(0.1),
	}
}

func competitorAnalysisRequest(name string, cat *offerings.Catalog) genai.Request {
	context := fmt.Sprintf(`Analyze the competitive landscape for %q specifically related to AI and technology infrastructure needs:

1. DIRECT COMPETITORS:
- Who are their main competitors?
- How do they compare in AI/ML capabilities?
- What AI infrastructure do competitors use?

2. AI INFRASTRUCTURE ANALYSIS:
- What cloud providers and AI tooling do they likely use?
- Current AI infrastructure limitations in their industry
- Emerging AI use cases in their sector

3. MARKET POSITIONING:
- How advanced is their AI adoption compared to competitors?
- Are they AI leaders or followers in their industry?
- Competitive advantages they're seeking in AI

4. OPPORTUNITY:
Our offerings:
%s
- How could these offerings help them gain competitive advantage?
- What use cases would be most compelling?
- Urgency factors (competitive pressure, new initiatives)

Focus on actionable insights for positioning %s solutions.`, name, cat.PromptBlock(), cat.Company)

	return genai.Request{
		Prompt:      "Analyze the competitive landscape related to AI and technology infrastructure needs.",
		Context:     context,
		Temperature: f64(0.1),
	}
}

func recentNewsRequest(name string) genai.Request {
	context := fmt.Sprintf(`Find the most recent news and developments about %q in the last 6 months, focusing on:

1. AI AND TECHNOLOGY INITIATIVES:
- New AI projects or product launches
- Technology partnerships or acquisitions
- R&D investments in AI/ML
- Digital transformation initiatives

2. FUNDING AND GROWTH:
- Recent funding rounds or financial news
- Expansion plans
- New market entries
- Strategic partnerships

3. LEADERSHIP CHANGES:
- New executive hires (especially technology roles)
- Organizational changes
- Board additions

4. INDUSTRY TRENDS:
- How are industry trends affecting them?
- Regulatory changes impacting their business
- Market opportunities they're pursuing

5. PAIN POINTS AND CHALLENGES:
- Publicly stated challenges or problems
- Competitive pressures
- Technology limitations they've mentioned

Provide specific dates, quotes, and sources where possible.
Focus on information that could inform outreach timing and messaging.`, name)

	return genai.Request{
		Prompt:      "Find recent news and developments about the company, focusing on AI and technology initiatives.",
		Context:     context,
		Temperature: f64(0.1),
	}
}

// combineResearch stitches the text stages into a single document for
// structuring. Failed stages contribute empty sections.
func combineResearch(broad, competitors, news string) string {
	return fmt.Sprintf(`BASIC COMPANY RESEARCH:
%s

COMPETITIVE ANALYSIS:
%s

RECENT NEWS AND INITIATIVES:
%s`, broad, competitors, news)
}
