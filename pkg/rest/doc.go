// Package rest is the HTTP transport layer shared by the Bugout resource
// clients.
//
// A Caller is pinned to a single base URL (one per Bugout sub-service) and
// performs exactly one attempt per request: there is no retry or backoff in
// this client, a failed call surfaces immediately to the caller.
//
// Request failures are classified into a small error taxonomy that callers
// match with errors.As:
//
//   - AuthError for 401/403
//   - NotFoundError for 404
//   - ValidationError for 400/422 and for local parameter failures raised
//     before any network call
//   - RemoteError for any other non-2xx status or an unparseable payload
//   - TransportError for connection, DNS and timeout failures (no status
//     code available)
package rest
