// Package tasks orchestrates playlist generation and publishing with real-time progress reporting.
//
// # Core Operations
//
// The [MixEngine] runs the generation pipeline end to end:
//
//  1. [MixEngine.Generate] : Seeds → candidate playlist
//     - Resolves every selected seed to a candidate track list concurrently
//     - Aggregates and deduplicates candidates by track id
//     - Filters candidates against the mood target using audio features
//     - Assembles the final list under the playlist size cap
//
//  2. [MixEngine.Publish] : Candidate playlist → Spotify playlist
//     - Verifies the authenticated account before creating anything
//     - Creates the playlist and appends tracks in provider-sized chunks
//     - Reports partial failures per chunk instead of failing wholesale
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
package tasks
