// Package models defines the domain entities for the tmx taste mixer.
//
// The package contains three categories of types:
//
// 1. Seed selection: [Seed] (a tagged artist/genre/track variant), [MoodTarget],
// and [Selection], the full per-session input to a generation run.
//
// 2. Candidate data: [Track] and [AudioFeatures], ephemeral per-generation
// values keyed by Spotify track id.
//
// 3. Credentials and results: [Credentials] held by the auth store and
// [RemotePlaylist] describing a playlist created on the provider.
package models
