// Package storage persists taskware jobs in a local SQLite database.
//
// The canonical Schedule is stored in its serialized forms (cron expression,
// biweekly flag, raw text for unparsed input); the in-memory Schedule is an
// editing-session value and is reconstructed on load.
package storage
