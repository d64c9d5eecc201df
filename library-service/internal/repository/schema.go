package repository

import (
	"github.com/eaglebank/registry/shared/config"
	"github.com/eaglebank/registry/shared/database"
)

// Schema creates the library tables.
var Schema = database.Schema{
	config.Postgres: {
		`CREATE TABLE IF NOT EXISTS authors (
			id          BIGSERIAL PRIMARY KEY,
			name        TEXT NOT NULL,
			nationality TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS books (
			id        BIGSERIAL PRIMARY KEY,
			title     TEXT NOT NULL,
			isbn      TEXT NOT NULL DEFAULT '',
			author_id BIGINT NOT NULL REFERENCES authors(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_books_author_id ON books (author_id)`,
	},
	config.SQLite: {
		`CREATE TABLE IF NOT EXISTS authors (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			name        TEXT NOT NULL,
			nationality TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS books (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			title     TEXT NOT NULL,
			isbn      TEXT NOT NULL DEFAULT '',
			author_id INTEGER NOT NULL REFERENCES authors(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_books_author_id ON books (author_id)`,
	},
}
