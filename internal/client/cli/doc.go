// Package cli provides the interactive FieldKeeper command-line client.
//
// It wires configuration, the local record store, background sync, voice
// instruction playback and an interactive REPL. Records are always saved
// locally first; the syncer pushes them to the server whenever it is
// reachable.
//
// Key features:
//   - New / List / Show / Delete field records
//   - Set fields by name, with the same formatting and derived values
//     (hectares, dry weight, yields, growing days) as data entry
//   - Voice: apply a dictated transcript through the keyword parser
//   - Say / Stop and per-language spoken instructions
//   - Sync on demand, periodically and when connectivity returns
//
// The REPL is started via App.Run(ctx, in), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
