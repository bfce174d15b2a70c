// Package worker provides a small bounded worker pool used to fan out
// per-record remote calls inside a batch. Concurrency is capped by a worker
// count and, optionally, a global requests-per-second limit shared by all
// workers.
package worker
