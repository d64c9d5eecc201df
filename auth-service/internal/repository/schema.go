package repository

import (
	"github.com/eaglebank/registry/shared/config"
	"github.com/eaglebank/registry/shared/database"
)

var Schema = database.Schema{
	config.Postgres: {
		`CREATE TABLE IF NOT EXISTS users (
			id            BIGSERIAL PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL
		)`,
	},
	config.SQLite: {
		`CREATE TABLE IF NOT EXISTS users (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			username      TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL
		)`,
	},
}
