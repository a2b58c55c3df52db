// Package streams reconciles stream metadata across a user's playlists.
//
// Streams imported from different providers describe the same logical
// channel with diverging display names, channel numbers, logos and EPG
// ids. The feature resolves each user's rows through the reconcile
// engine so that every copy of a channel converges on the most recently
// edited values, and exposes the operation both to the fixup command
// and as an authenticated HTTP endpoint.
package streams
