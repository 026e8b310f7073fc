package prospect

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"

	"github.com/sells-group/prospect-cli/internal/db"
)

// PostgresStore implements Store on a pgx pool. Same layout as the
// SQLite store: identity columns plus a JSONB payload per record.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *db.PoolConfig) (*PostgresStore, error) {
	pool, err := db.NewPool(ctx, connString, poolCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: connect")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// NewPostgresWithPool wraps an existing pool. Used by tests with pgxmock.
func NewPostgresWithPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS companies (
	id         BIGSERIAL PRIMARY KEY,
	name       TEXT NOT NULL,
	data       JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS contacts (
	id         BIGSERIAL PRIMARY KEY,
	company_id BIGINT NOT NULL REFERENCES companies(id),
	email      TEXT NOT NULL DEFAULT '',
	data       JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_companies_name_lower ON companies(lower(name));
CREATE INDEX IF NOT EXISTS idx_contacts_company_id ON contacts(company_id);
CREATE INDEX IF NOT EXISTS idx_contacts_company_email ON contacts(company_id, email);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) CreateCompany(ctx context.Context, c *Company) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	data, err := json.Marshal(c)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal company")
	}

	err = s.pool.QueryRow(ctx,
		`INSERT INTO companies (name, data, created_at, updated_at) VALUES ($1, $2, $3, $4) RETURNING id`,
		c.Name, data, now, now,
	).Scan(&c.ID)
	return eris.Wrapf(err, "postgres: insert company %s", c.Name)
}

func (s *PostgresStore) UpdateCompany(ctx context.Context, c *Company) error {
	c.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(c)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal company")
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE companies SET name = $1, data = $2, updated_at = $3 WHERE id = $4`,
		c.Name, data, c.UpdatedAt, c.ID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update company %d", c.ID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("company not found: %s", c.Name)
	}
	return nil
}

func (s *PostgresStore) GetCompany(ctx context.Context, id int64) (*Company, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, data, created_at, updated_at FROM companies WHERE id = $1`, id,
	)
	c, err := scanCompany(row)
	if err != nil && errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Errorf("company not found: %d", id)
	}
	return c, err
}

func (s *PostgresStore) GetCompanyByName(ctx context.Context, name string) (*Company, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, data, created_at, updated_at FROM companies WHERE lower(name) = lower($1) LIMIT 1`,
		name,
	)
	c, err := scanCompany(row)
	if err != nil && errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

func (s *PostgresStore) ListCompanies(ctx context.Context) ([]Company, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, data, created_at, updated_at FROM companies ORDER BY lower(name)`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list companies")
	}
	defer rows.Close()

	var companies []Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, *c)
	}
	return companies, eris.Wrap(rows.Err(), "postgres: list companies iterate")
}

func (s *PostgresStore) CreateContact(ctx context.Context, c *Contact) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	data, err := json.Marshal(c)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal contact")
	}

	err = s.pool.QueryRow(ctx,
		`INSERT INTO contacts (company_id, email, data, created_at, updated_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		c.CompanyID, strings.ToLower(c.Email), data, now, now,
	).Scan(&c.ID)
	return eris.Wrapf(err, "postgres: insert contact for company %d", c.CompanyID)
}

func (s *PostgresStore) UpdateContact(ctx context.Context, c *Contact) error {
	c.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(c)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal contact")
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE contacts SET email = $1, data = $2, updated_at = $3 WHERE id = $4`,
		strings.ToLower(c.Email), data, c.UpdatedAt, c.ID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update contact %d", c.ID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("contact not found: %s", c.DisplayName())
	}
	return nil
}

func (s *PostgresStore) GetContactByEmail(ctx context.Context, companyID int64, email string) (*Contact, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, data, created_at, updated_at FROM contacts
		 WHERE company_id = $1 AND email = $2 LIMIT 1`,
		companyID, strings.ToLower(email),
	)
	c, err := scanContact(row)
	if err != nil && errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

func (s *PostgresStore) ListContacts(ctx context.Context, companyID int64) ([]Contact, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, data, created_at, updated_at FROM contacts WHERE company_id = $1 ORDER BY id`,
		companyID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: list contacts for company %d", companyID)
	}
	defer rows.Close()

	var contacts []Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *c)
	}
	return contacts, eris.Wrap(rows.Err(), "postgres: list contacts iterate")
}
