// Package storage provides access to S3-compatible object storage via the
// Minio SDK.
//
// The importer uses it as an optional input source: an import file can be
// fetched from a bucket instead of the local filesystem. The Client
// interface is deliberately narrow (existence check + object download) so
// tests can substitute the mocks package.
package storage
