package prospect

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Resolver locates existing records for freshly researched candidates.
// A nil result with a nil error means no match: the caller should
// create rather than merge.
type Resolver struct {
	store Store
}

// NewResolver creates a resolver over the given store.
func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// FindCompany looks up an existing company for a candidate name.
// Two-pass cascade:
//  1. Exact case-insensitive name match (fast path).
//  2. Normalized-name scan over all stored companies. The store is
//     small relative to generation latency, so a linear scan is fine.
func (r *Resolver) FindCompany(ctx context.Context, candidateName string) (*Company, error) {
	if candidateName == "" {
		return nil, nil
	}

	existing, err := r.store.GetCompanyByName(ctx, candidateName)
	if err != nil {
		return nil, eris.Wrap(err, "prospect: resolve by exact name")
	}
	if existing != nil {
		return existing, nil
	}

	normalized := NormalizeCompanyName(candidateName)
	if normalized == "" {
		return nil, nil
	}

	all, err := r.store.ListCompanies(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "prospect: list companies for resolve")
	}
	for i := range all {
		if NormalizeCompanyName(all[i].Name) == normalized {
			zap.L().Debug("resolve: matched by normalized name",
				zap.String("candidate", candidateName),
				zap.String("existing", all[i].Name),
				zap.Int64("company_id", all[i].ID),
			)
			return &all[i], nil
		}
	}

	return nil, nil
}

// FindContact looks up an existing contact within a company. A real
// candidate email is tried first as an exact (company, email) key;
// otherwise contacts are scanned by normalized name.
func (r *Resolver) FindContact(ctx context.Context, companyID int64, firstName, lastName, candidateEmail string) (*Contact, error) {
	if firstName == "" && lastName == "" {
		return nil, nil
	}

	if IsRealEmail(candidateEmail) {
		existing, err := r.store.GetContactByEmail(ctx, companyID, candidateEmail)
		if err != nil {
			return nil, eris.Wrap(err, "prospect: resolve contact by email")
		}
		if existing != nil {
			return existing, nil
		}
	}

	normalized := NormalizeContactName(firstName, lastName)
	contacts, err := r.store.ListContacts(ctx, companyID)
	if err != nil {
		return nil, eris.Wrap(err, "prospect: list contacts for resolve")
	}
	for i := range contacts {
		if NormalizeContactName(contacts[i].FirstName, contacts[i].LastName) == normalized {
			zap.L().Debug("resolve: matched contact by normalized name",
				zap.String("candidate", firstName+" "+lastName),
				zap.Int64("contact_id", contacts[i].ID),
			)
			return &contacts[i], nil
		}
	}

	return nil, nil
}
