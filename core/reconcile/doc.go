// Package reconcile converges duplicate stream records ingested from
// multiple IPTV providers onto a single set of human-edited metadata.
//
// Provider ingestion leaves one row per (provider, raw channel) tuple, so a
// subscriber with several providers holds many rows for the same logical
// channel. The engine selects a "winner" per logical channel for each
// reconcilable field and propagates it back across the duplicates.
//
// # Passes
//
// A run consists of three independent passes, each read-all-then-write-all:
//
//  1. Names: grouped by original provider name + stream type. The most
//     recent genuine edit (name differing from the provider name) wins;
//     rows that were never customized converge to it. A row's own custom
//     name is sticky and never overwritten.
//  2. Channels: grouped by the (already reconciled) display name. Same
//     policy as names; "0" and the empty string mean unset.
//  3. Metadata: logo and EPG id, grouped by display name, each selected
//     independently as the first non-empty value in newest-first order.
//     Metadata is provider data rather than a user edit, so every row in
//     the group converges; nothing is sticky.
//
// Rows are scanned ordered by updated_at descending then id descending, so
// "first encountered" means "most recently touched". A NULL updated_at
// always loses recency comparisons.
//
// # Updates
//
// Updates are applied in bounded batches, one UPDATE per row, to limit the
// footprint on very large subscriber catalogs. There is no transaction
// around a pass: a crash mid-pass leaves a partially converged state that
// the next run repairs, since the whole run is idempotent.
//
// # Usage
//
//	eng := reconcile.New(store, log, reconcile.Options{BatchSize: 1000})
//	summary, err := eng.ReconcileAll(ctx, userID, 0)
package reconcile
