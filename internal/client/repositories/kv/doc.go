// Package kv provides the device-local key-value store that backs the
// record collection and the user preferences.
//
// # Data Model
//
// A single SQLite table kv(key TEXT PRIMARY KEY, value BLOB NOT NULL). Each
// value is written by one statement, so a reader sees either the previous
// value or the new one, never a partial write.
//
// # Concurrency
//
// Update wraps a read-modify-write in a transaction. Open the database with
// SetMaxOpenConns(1): transactions then queue on the single connection.
//
// Typical Usage
//
//	repo := kv.NewSQLiteRepository(db)
//	_ = repo.Set(ctx, "fieldkeeper_language", []byte("hi"))
//	v, _ := repo.Get(ctx, "fieldkeeper_language")
//	_ = repo.Update(ctx, "fieldkeeper_records", func(old []byte) ([]byte, error) { ... })
package kv
