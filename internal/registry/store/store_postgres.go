// Package store provides production Directory backends: a postgres-backed
// directory for full national datasets and a redis read-through cache in
// front of any Directory.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"bankident/internal/registry"
)

// PostgresDirectory serves bank directory rows from PostgreSQL. It is
// read-only at runtime; the bank_directory table is loaded out of band from
// the national datasets.
type PostgresDirectory struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed directory.
func NewPostgres(db *sql.DB) *PostgresDirectory {
	return &PostgresDirectory{db: db}
}

const bankColumns = `country_code, bank_code, name, short_name, bic, checksum_algo, is_primary`

func (d *PostgresDirectory) FindBanks(ctx context.Context, countryCode, bankCode string) ([]registry.Bank, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT `+bankColumns+` FROM bank_directory WHERE country_code = $1 AND bank_code = $2`,
		strings.ToUpper(countryCode), strings.ToUpper(bankCode))
	if err != nil {
		return nil, fmt.Errorf("find banks: %w", err)
	}
	return scanBanks(rows)
}

func (d *PostgresDirectory) BanksForCountry(ctx context.Context, countryCode string) ([]registry.Bank, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT `+bankColumns+` FROM bank_directory WHERE country_code = $1`,
		strings.ToUpper(countryCode))
	if err != nil {
		return nil, fmt.Errorf("banks for country: %w", err)
	}
	return scanBanks(rows)
}

func (d *PostgresDirectory) BanksByBIC(ctx context.Context, bic string) ([]registry.Bank, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT `+bankColumns+` FROM bank_directory WHERE bic = $1`,
		strings.ToUpper(bic))
	if err != nil {
		return nil, fmt.Errorf("banks by bic: %w", err)
	}
	return scanBanks(rows)
}

func scanBanks(rows *sql.Rows) ([]registry.Bank, error) {
	defer rows.Close()
	var banks []registry.Bank
	for rows.Next() {
		var b registry.Bank
		var shortName, bic, algo sql.NullString
		if err := rows.Scan(&b.CountryCode, &b.BankCode, &b.Name, &shortName, &bic, &algo, &b.Primary); err != nil {
			return nil, fmt.Errorf("scan bank row: %w", err)
		}
		b.ShortName = shortName.String
		b.BIC = bic.String
		b.ChecksumAlgo = algo.String
		banks = append(banks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bank rows: %w", err)
	}
	return banks, nil
}

// ReplaceAll swaps the directory contents for a fresh dataset inside one
// transaction, so readers never observe a half-loaded table.
func (d *PostgresDirectory) ReplaceAll(ctx context.Context, banks []registry.Bank) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin load: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM bank_directory`); err != nil {
		return fmt.Errorf("clear bank_directory: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO bank_directory (`+bankColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()
	for _, b := range banks {
		_, err := stmt.ExecContext(ctx,
			strings.ToUpper(b.CountryCode), strings.ToUpper(b.BankCode),
			b.Name, nullable(b.ShortName), nullable(strings.ToUpper(b.BIC)),
			nullable(b.ChecksumAlgo), b.Primary)
		if err != nil {
			return fmt.Errorf("insert bank %s:%s: %w", b.CountryCode, b.BankCode, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit load: %w", err)
	}
	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
