// Package webapi is the typed HTTP client for the RDFMap web API.
//
// The remote service performs the actual semantic matching and RDF conversion;
// this package only speaks its REST contract: project CRUD, data and ontology
// uploads, mapping generation, synchronous and background conversion, job
// status queries, and RDF download. Non-2xx responses surface as
// *RequestFailed carrying the status code and raw body text.
package webapi
