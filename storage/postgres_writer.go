package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/OPSE-Developers/OPSE-Records-Plugin/models"
)

const recordColumns = 12

// PostgresWriter persists search results to PostgreSQL.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS phone_records (
			id              SERIAL PRIMARY KEY,
			full_name       TEXT        NOT NULL,
			house_number    INTEGER,
			street          TEXT        NOT NULL DEFAULT '',
			postal_code     TEXT,
			city            TEXT        NOT NULL DEFAULT '',
			country         TEXT        NOT NULL,
			national_number TEXT        NOT NULL DEFAULT '',
			phone_country   TEXT,
			country_code    TEXT,
			location        TEXT,
			carrier         TEXT,
			data_source     TEXT        NOT NULL,
			created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (full_name, national_number, street, city)
		);

		CREATE INDEX IF NOT EXISTS idx_phone_records_city    ON phone_records(city);
		CREATE INDEX IF NOT EXISTS idx_phone_records_carrier ON phone_records(carrier);
	`)
	return err
}

// WriteResults batch-inserts results, skipping rows already stored.
func (pw *PostgresWriter) WriteResults(results []*models.SearchResult) error {
	const batchSize = 50
	for i := 0; i < len(results); i += batchSize {
		end := i + batchSize
		if end > len(results) {
			end = len(results)
		}
		if err := pw.insertBatch(results[i:end]); err != nil {
			return fmt.Errorf("postgres: insert batch: %w", err)
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(batch []*models.SearchResult) error {
	query, args := buildInsert(batch)
	_, err := pw.db.Exec(query, args...)
	return err
}

func buildInsert(batch []*models.SearchResult) (string, []interface{}) {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*recordColumns)

	for idx, r := range batch {
		placeholders := make([]string, recordColumns)
		for col := range placeholders {
			placeholders[col] = fmt.Sprintf("$%d", idx*recordColumns+col+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")

		a, p := r.Address, r.PhoneNumber
		valueArgs = append(valueArgs,
			r.FullName,
			nullInt(a.Number),
			models.StringValue(a.Street),
			nullString(a.StateCode),
			models.StringValue(a.City),
			a.Country,
			models.StringValue(p.Number),
			nullString(p.Country),
			nullString(p.CountryCode),
			nullString(p.Location),
			nullString(p.Carrier),
			a.DataSource,
		)
	}

	query := fmt.Sprintf(`
		INSERT INTO phone_records (full_name, house_number, street, postal_code, city, country,
			national_number, phone_country, country_code, location, carrier, data_source)
		VALUES %s
		ON CONFLICT (full_name, national_number, street, city) DO NOTHING
	`, strings.Join(valueStrings, ","))

	return query, valueArgs
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// FetchAll retrieves all stored results, oldest first.
func (pw *PostgresWriter) FetchAll() ([]*models.SearchResult, error) {
	rows, err := pw.db.Query(`
		SELECT full_name, house_number, street, postal_code, city, country,
			national_number, phone_country, country_code, location, carrier, data_source
		FROM phone_records
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var results []*models.SearchResult
	for rows.Next() {
		var (
			r                                           models.SearchResult
			number                                      sql.NullInt64
			street, city, national                      string
			cp, country, countryCode, location, carrier sql.NullString
		)
		if err := rows.Scan(
			&r.FullName, &number, &street, &cp, &city, &r.Address.Country,
			&national, &country, &countryCode, &location, &carrier, &r.Address.DataSource,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}

		if number.Valid {
			n := int(number.Int64)
			r.Address.Number = &n
		}
		r.Address.Street = optional(street)
		r.Address.StateCode = fromNull(cp)
		r.Address.City = optional(city)
		r.PhoneNumber = models.PhoneNumberRecord{
			Number:      optional(national),
			Country:     fromNull(country),
			CountryCode: fromNull(countryCode),
			Location:    fromNull(location),
			Carrier:     fromNull(carrier),
			DataSource:  r.Address.DataSource,
		}
		results = append(results, &r)
	}
	return results, rows.Err()
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullInt(n *int) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*n), Valid: true}
}

func fromNull(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return optional(ns.String)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
