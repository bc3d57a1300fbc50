// Package querycache is a process-wide cache for read queries against the
// RDFMap web API, keyed by (resource, parameters). Mutating operations
// invalidate the resource they touch rather than letting entries age out, so
// reads after a create/upload/generate/convert always refetch.
package querycache
