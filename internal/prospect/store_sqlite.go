package prospect

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using modernc.org/sqlite. Records are
// kept as a JSON payload next to the identity columns, so the schema
// survives profile-field churn without migrations.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS companies (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL,
	data       TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS contacts (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	company_id INTEGER NOT NULL REFERENCES companies(id),
	email      TEXT NOT NULL DEFAULT '',
	data       TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_companies_name ON companies(name COLLATE NOCASE);
CREATE INDEX IF NOT EXISTS idx_contacts_company_id ON contacts(company_id);
CREATE INDEX IF NOT EXISTS idx_contacts_company_email ON contacts(company_id, email);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateCompany(ctx context.Context, c *Company) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	data, err := json.Marshal(c)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal company")
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO companies (name, data, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		c.Name, string(data), now, now,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: insert company %s", c.Name)
	}
	c.ID, err = res.LastInsertId()
	return eris.Wrap(err, "sqlite: company insert id")
}

func (s *SQLiteStore) UpdateCompany(ctx context.Context, c *Company) error {
	c.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(c)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal company")
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE companies SET name = ?, data = ?, updated_at = ? WHERE id = ?`,
		c.Name, string(data), c.UpdatedAt, c.ID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update company %d", c.ID)
	}
	return checkRowsAffected(res, "company", c.Name)
}

func (s *SQLiteStore) GetCompany(ctx context.Context, id int64) (*Company, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, data, created_at, updated_at FROM companies WHERE id = ?`, id,
	)
	c, err := scanCompany(row)
	if err != nil && errors.Is(err, sql.ErrNoRows) {
		return nil, eris.Errorf("company not found: %d", id)
	}
	return c, err
}

// GetCompanyByName matches the stored display name case-insensitively.
// A missing company is (nil, nil), not an error.
func (s *SQLiteStore) GetCompanyByName(ctx context.Context, name string) (*Company, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, data, created_at, updated_at FROM companies
		 WHERE name = ? COLLATE NOCASE LIMIT 1`,
		name,
	)
	c, err := scanCompany(row)
	if err != nil && errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

func (s *SQLiteStore) ListCompanies(ctx context.Context) ([]Company, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, data, created_at, updated_at FROM companies ORDER BY name COLLATE NOCASE`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list companies")
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
	return companies, eris.Wrap(rows.Err(), "sqlite: list companies iterate")
}

func (s *SQLiteStore) CreateContact(ctx context.Context, c *Contact) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	data, err := json.Marshal(c)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal contact")
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO contacts (company_id, email, data, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		c.CompanyID, strings.ToLower(c.Email), string(data), now, now,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: insert contact for company %d", c.CompanyID)
	}
	c.ID, err = res.LastInsertId()
	return eris.Wrap(err, "sqlite: contact insert id")
}

func (s *SQLiteStore) UpdateContact(ctx context.Context, c *Contact) error {
	c.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(c)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal contact")
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE contacts SET email = ?, data = ?, updated_at = ? WHERE id = ?`,
		strings.ToLower(c.Email), string(data), c.UpdatedAt, c.ID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update contact %d", c.ID)
	}
	return checkRowsAffected(res, "contact", c.DisplayName())
}

// GetContactByEmail matches case-insensitively within a company.
// A missing contact is (nil, nil), not an error.
func (s *SQLiteStore) GetContactByEmail(ctx context.Context, companyID int64, email string) (*Contact, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, data, created_at, updated_at FROM contacts
		 WHERE company_id = ? AND email = ? LIMIT 1`,
		companyID, strings.ToLower(email),
	)
	c, err := scanContact(row)
	if err != nil && errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

func (s *SQLiteStore) ListContacts(ctx context.Context, companyID int64) ([]Contact, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, data, created_at, updated_at FROM contacts WHERE company_id = ? ORDER BY id`,
		companyID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: list contacts for company %d", companyID)
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
	return contacts, eris.Wrap(rows.Err(), "sqlite: list contacts iterate")
}

// helpers

func checkRowsAffected(res sql.Result, entity, name string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Errorf("%s not found: %s", entity, name)
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

// scanCompany reads an identity row plus JSON payload. No-row errors
// pass through unwrapped so each driver can map them.
func scanCompany(row scannable) (*Company, error) {
	var (
		id                   int64
		data                 []byte
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &data, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, eris.Wrap(err, "store: scan company")
	}

	var c Company
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, eris.Wrap(err, "store: unmarshal company")
	}
	c.ID = id
	c.CreatedAt = createdAt
	c.UpdatedAt = updatedAt
	return &c, nil
}

func scanContact(row scannable) (*Contact, error) {
	var (
		id                   int64
		data                 []byte
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &data, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, eris.Wrap(err, "store: scan contact")
	}

	var c Contact
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, eris.Wrap(err, "store: unmarshal contact")
	}
	c.ID = id
	c.CreatedAt = createdAt
	c.UpdatedAt = updatedAt
	return &c, nil
}
