package db

var schema = `
CREATE EXTENSION IF NOT EXISTS "uuid-ossp";

CREATE TABLE IF NOT EXISTS venue_events (
	event_id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
	name VARCHAR(255) NOT NULL,
	venue VARCHAR(255) NOT NULL,
	starts_at TIMESTAMPTZ NOT NULL,
	total_capacity INT NOT NULL,
	current_attendance INT NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS tickets (
	ticket_id UUID PRIMARY KEY,
	event_id UUID NOT NULL,
	qr_payload VARCHAR(255) NOT NULL,
	nfc_tag_id VARCHAR(255),
	status VARCHAR(16) NOT NULL DEFAULT 'admissible',
	seat VARCHAR(32),
	price_amount NUMERIC(10, 2),
	price_currency CHAR(3),
	admitted_at TIMESTAMPTZ,
	UNIQUE (event_id, qr_payload)
);

CREATE INDEX IF NOT EXISTS tickets_nfc_tag_idx ON tickets (event_id, nfc_tag_id);

CREATE TABLE IF NOT EXISTS entry_attempts (
	attempt_id UUID PRIMARY KEY,
	event_id UUID NOT NULL,
	ticket_id UUID,
	credential_kind VARCHAR(8) NOT NULL,
	gate_id VARCHAR(64) NOT NULL,
	outcome VARCHAR(32) NOT NULL,
	occurred_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS entry_attempts_event_idx ON entry_attempts (event_id, occurred_at);

CREATE TABLE IF NOT EXISTS read_model_ops_events (
	event_id UUID PRIMARY KEY,
	payload JSONB NOT NULL
);

CREATE TABLE IF NOT EXISTS events (
	event_id UUID PRIMARY KEY,
	published_at TIMESTAMP NOT NULL,
	event_name VARCHAR(255) NOT NULL,
	event_payload JSONB NOT NULL
);
`
