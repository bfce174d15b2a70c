// Package importer reconciles a batch of externally sourced identity
// records against the remote identity service, creating missing records and
// updating existing ones.
//
// # Pipeline
//
// An import run proceeds in fixed stages:
//
//  1. Authenticate once; the session token is shared read-only by every
//     later call and never refreshed mid-run.
//  2. Resolve the address-type and patron-group reference tables once. A
//     table that cannot be fetched comes back empty, which drops the
//     corresponding field on every record (degraded, not fatal).
//  3. Partition the input into fixed-size batches, preserving order.
//  4. Per batch: one disjunctive existence query classifies each record as
//     to-create or to-update, then record operations fan out across a
//     bounded worker pool.
//  5. Aggregate per-record outcomes into a RunSummary.
//
// # Failure isolation
//
// Failures are confined to the smallest possible scope. A failed create or
// update fails that record only. A failed existence query fails its batch
// only. Only an unauthenticatable session or unreadable input aborts the
// run. The run as a whole reports success even when individual records
// failed; the summary identifies every failed record by external id.
//
// # Compensation
//
// Creation is a three-step sequence (record, credentials, permission set).
// When a later step fails, completed steps are unwound in reverse order
// before the record is marked failed. The rollback is best-effort, not a
// two-phase commit: a delete that fails itself leaves a dangling remote
// record behind, surfaced only in the log.
package importer
