// Package client talks to the journaling REST backend.
//
// # Overview
//
// HTTPClient issues JSON requests against a base URL. Every request made
// through it carries the current access token, read from the token store
// at send time, and an X-Request-ID header.
//
// When the backend answers 401, the client exchanges the refresh token for
// a new access token and replays the original request once. Concurrent
// 401s share one refresh. If the refresh fails the stored session is
// cleared and the caller receives ErrUnauthorized.
//
// # Error Handling
//
// Final responses are mapped to sentinel errors that callers match with
// errors.Is: ErrUnauthorized (401), ErrValidation (400), ErrServer (any
// other non-2xx, as *APIError) and ErrUnavailable (transport failures).
//
// The package also bootstraps local persistence for the CLI (InitDatabase,
// OpenRepository).
package client
