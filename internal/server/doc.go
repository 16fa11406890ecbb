// Package server implements the short-lived local HTTP server that completes
// the OAuth2 authorization-code flow.
//
// The CLI starts the server, opens the provider's consent page in a browser,
// and blocks on [OAuthHandler.Result] until the provider redirects back to
// /callback with an authorization code (or an error). The handler validates
// the CSRF state, performs the code exchange through an [Exchanger], and
// delivers exactly one [OAuthResult] before the server is shut down.
package server
