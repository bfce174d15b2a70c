// Package identity provides an HTTP client for the remote identity service
// gateway.
//
// All calls carry the tenant header; after Login succeeds, the session token
// header is stamped on every subsequent request. The token is obtained once
// per run and never refreshed, so a run that outlives token validity fails
// its remaining calls.
//
// Status handling is uniform across endpoints: any 2xx response is a
// success, anything else is a failure surfaced as an *APIError carrying the
// status code and a body snippet for diagnostics. Callers decide whether a
// failure is fatal, batch-fatal or record-isolated; the client makes no such
// distinction.
package identity
