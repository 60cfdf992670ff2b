// Package http implements the HTTP transport of the access server: the
// magic-link login endpoints, session-protected profile and entitlement
// reads, and the internal billing-sync write path.
//
// Tracing, request logging, timeouts and authentication are handled here as
// chi middleware before a request reaches the service layer. Error bodies
// are always generic; causes only go to the log.
package http
