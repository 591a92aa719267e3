// Package client contains the client-side transport and local persistence
// bootstrap of FieldKeeper.
//
// # Overview
//
//  1. Client is the contract used by the sync engine: UpsertRecord,
//     ListRecords, Ping and SpeechURL.
//  2. HTTPClient implements it with JSON over HTTP against /api/records,
//     /api/health and /api/tts.
//  3. InitDatabase and RunMigrations open the device-local SQLite database
//     and apply the embedded goose migrations.
//
// # Error Handling
//
// A non-2xx response is returned as *StatusError. Transport failures wrap
// common.ErrUnavailable so callers can match them with errors.Is.
package client
