package store

// schemaVersionV1 is the conversion ledger schema.
const schemaVersionV1 = 1

var schemaV1 = `
CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL);

CREATE TABLE IF NOT EXISTS conversions (
	id           TEXT PRIMARY KEY,
	lead_code    TEXT NOT NULL,
	input_key    TEXT NOT NULL,
	output_path  TEXT NOT NULL,
	images       INTEGER NOT NULL DEFAULT 0,
	pdf_bytes    INTEGER NOT NULL DEFAULT 0,
	output_bytes INTEGER NOT NULL DEFAULT 0,
	sha256       TEXT NOT NULL,
	created_at   TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_conversions_lead ON conversions(lead_code);
CREATE INDEX IF NOT EXISTS idx_conversions_created ON conversions(created_at);
`
