// Package http contains the HTTP transport layer: chi handlers that expose
// catalog CSV exports as downloadable attachments plus the health endpoints.
// Handlers validate input, call into the service layer, and route every
// failure through the centralized error handler so responses stay uniform.
package http
