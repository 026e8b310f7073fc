// Package outreach drafts personalized outreach emails from a
// researched company, a contact, and the offerings catalog.
package outreach

import (
	"context"
	"encoding/json"
	"fmt"

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

// Draft is one generated outreach email.
type Draft struct {
	CompanyID   int64  `json:"company_id"`
	ContactID   int64  `json:"contact_id"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
	Content     string `json:"content"`
}

// Drafter writes outreach emails.
type Drafter struct {
	gen     Generator
	catalog *offerings.Catalog
}

func New(gen Generator, catalog *offerings.Catalog) *Drafter {
	return &Drafter{gen: gen, catalog: catalog}
}

// DraftEmail generates a personalized cold outreach email for one
// contact at a researched company.
func (d *Drafter) DraftEmail(ctx context.Context, company *prospect.Company, contact *prospect.Contact) (*Draft, error) {
	res, err := d.gen.Generate(ctx, d.emailRequest(company, contact))
	if err != nil {
		return nil, eris.Wrapf(err, "outreach: draft email for %s", contact.DisplayName())
	}

	zap.L().Info("outreach: drafted email",
		zap.String("company", company.Name),
		zap.String("contact", contact.DisplayName()),
	)
	return &Draft{
		CompanyID:   company.ID,
		ContactID:   contact.ID,
		ContactName: contact.DisplayName(),
		Email:       contact.Email,
		Content:     res.Content,
	}, nil
}

func (d *Drafter) emailRequest(company *prospect.Company, contact *prospect.Contact) genai.Request {
	companyJSON, _ := json.MarshalIndent(company, "", "  ")
	contactJSON, _ := json.MarshalIndent(contact, "", "  ")

	// Static framing in System so system-caching providers reuse it.
	system := fmt.Sprintf(`Generate a highly personalized cold outreach email for a %s sales representative to send to a potential customer.

OUR OFFERINGS:
%s

REQUIREMENTS:
1. Subject line that's compelling and personal
2. Opening that shows you've done your research
3. Value proposition specific to their company's needs
4. Reference to recent company news/initiatives if available
5. Specific offering recommendation with benefits
6. Soft call-to-action (not pushy)
7. Professional but conversational tone
8. Keep to 150-200 words maximum

TONE:
- Professional but approachable
- Shows genuine interest in their business
- Consultative, not sales-y
- Demonstrates technical understanding if contact is technical

Generate the email in this format:
Subject: [subject line]

Hi [first name],

[email body]

Best regards,
[Sales Rep Name]
%s`, d.catalog.Company, d.catalog.PromptBlock(), d.catalog.Company)

	context := fmt.Sprintf(`COMPANY INFORMATION:
%s

CONTACT INFORMATION:
%s`, companyJSON, contactJSON)

	temp := 0.3
	return genai.Request{
		System:      system,
		Prompt:      "Generate a personalized cold outreach email according to the requirements provided.",
		Context:     context,
		Temperature: &temp,
	}
}
