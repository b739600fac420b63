package pg

import (
	migrate "github.com/rubenv/sql-migrate"
)

const migrationsTable = "migrations"

var migrations = &migrate.MemoryMigrationSource{
	Migrations: []*migrate.Migration{
		{
			Id: "20261001090000-accounts.sql",
			Up: []string{
				`CREATE TABLE accounts (
					id text PRIMARY KEY,
					name text NOT NULL DEFAULT '',
					type text NOT NULL,
					impl text NOT NULL,
					coin_type text NOT NULL DEFAULT '',
					template text,
					path text NOT NULL DEFAULT '',
					path_index integer NOT NULL DEFAULT 0,
					indexed_account_id text,
					pub text,
					xpub text,
					xpub_segwit text,
					address text,
					address_encoding text,
					networks text[] NOT NULL DEFAULT '{}',
					create_at_network text,
					created_at timestamptz NOT NULL DEFAULT now(),
					updated_at timestamptz NOT NULL DEFAULT now()
				)`,
				`CREATE INDEX idx_accounts_indexed_account_id ON accounts (indexed_account_id)`,
				`CREATE TABLE account_addresses (
					account_id text NOT NULL,
					network_id text NOT NULL,
					address text NOT NULL,
					updated_at timestamptz NOT NULL DEFAULT now(),
					PRIMARY KEY (account_id, network_id)
				)`,
			},
			Down: []string{
				`DROP TABLE account_addresses`,
				`DROP TABLE accounts`,
			},
		},
		{
			Id: "20261001090100-settings.sql",
			Up: []string{
				`CREATE TABLE global_derive_types (
					network_id text PRIMARY KEY,
					derive_type text NOT NULL,
					updated_at timestamptz NOT NULL DEFAULT now()
				)`,
				`CREATE TABLE settings (
					key text PRIMARY KEY,
					value jsonb NOT NULL,
					updated_at timestamptz NOT NULL DEFAULT now()
				)`,
			},
			Down: []string{
				`DROP TABLE settings`,
				`DROP TABLE global_derive_types`,
			},
		},
	},
}
