// Package repositories provides sqlite persistence for credentials, seeds, and the mood target.
//
// Three repositories back the CLI's durable state:
//
//   - [CredentialRepository] : one credential row per provider, consumed by
//     the auth store at startup and overwritten on every token change.
//   - [SeedRepository] : the seed catalog. A seed row carries two flags,
//     selected (part of the current selection) and favorite (saved for
//     later), so favoriting a seed and selecting it are independent.
//   - [MoodRepository] : the single persisted mood target.
//
// The working playlist itself is deliberately NOT persisted here; it lives
// only for the session unless the user exports or publishes it.
package repositories
