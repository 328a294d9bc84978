// Package http implements the REST transport of the finance tracker.
//
// It wires the chi router, decodes requests into service calls and maps
// service error kinds onto status codes. Tracing, access logging, gzip and
// bearer authentication are middlewares of this package.
package http
