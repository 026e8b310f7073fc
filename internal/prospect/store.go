package prospect

import "context"

// Store defines persistence operations for companies and contacts.
// Implementations back onto SQLite (default) or Postgres.
type Store interface {
	Migrate(ctx context.Context) error
	Close() error

	// Companies
	CreateCompany(ctx context.Context, c *Company) error
	UpdateCompany(ctx context.Context, c *Company) error
	GetCompany(ctx context.Context, id int64) (*Company, error)
	GetCompanyByName(ctx context.Context, name string) (*Company, error)
	ListCompanies(ctx context.Context) ([]Company, error)

	// Contacts, scoped to a company
	CreateContact(ctx context.Context, c *Contact) error
	UpdateContact(ctx context.Context, c *Contact) error
	GetContactByEmail(ctx context.Context, companyID int64, email string) (*Contact, error)
	ListContacts(ctx context.Context, companyID int64) ([]Contact, error)
}
