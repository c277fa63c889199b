// Package scores implements the offline-first score layer.
//
// Every finished game is written to a local JSON file (capped at the
// best 20 records) and, when reachable, to the shared Supabase
// leaderboard. Records written while offline are tagged pending and
// pushed by Reconcile once connectivity returns; the client-generated
// record id makes the push idempotent.
//
// Reads are remote-first: leaderboard, player-best and stats queries
// fall back to the local file when the remote store does not answer,
// and report which source served them.
//
// The local file also carries the player preferences (last player
// name, last level played) restored on startup.
package scores
