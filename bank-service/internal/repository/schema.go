package repository

import (
	"github.com/eaglebank/registry/shared/config"
	"github.com/eaglebank/registry/shared/database"
)

// Schema creates the bank tables. accounts.customer_id is NOT NULL with a
// foreign key; the deletion guard still runs before any delete.
var Schema = database.Schema{
	config.Postgres: {
		`CREATE TABLE IF NOT EXISTS customers (
			id    BIGSERIAL PRIMARY KEY,
			name  TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS accounts (
			id             BIGSERIAL PRIMARY KEY,
			account_number TEXT NOT NULL,
			balance        NUMERIC(19, 2) NOT NULL DEFAULT 0,
			customer_id    BIGINT NOT NULL REFERENCES customers(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_accounts_customer_id ON accounts (customer_id)`,
	},
	config.SQLite: {
		`CREATE TABLE IF NOT EXISTS customers (
			id    INTEGER PRIMARY KEY AUTOINCREMENT,
			name  TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS accounts (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			account_number TEXT NOT NULL,
			balance        TEXT NOT NULL DEFAULT '0',
			customer_id    INTEGER NOT NULL REFERENCES customers(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_accounts_customer_id ON accounts (customer_id)`,
	},
}
