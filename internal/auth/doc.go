// Package auth implements the Spotify OAuth2 token lifecycle.
//
// [Store] owns the current credential set: loaded once at startup, replaced
// atomically after a successful exchange or refresh, and cleared at logout or
// when the provider revokes the refresh token.
//
// [Manager] performs the authorization-code exchange and refresh against the
// provider's token endpoint (Basic-Auth form posts) and hands out valid
// access tokens, refreshing transparently inside a small margin of expiry.
package auth
