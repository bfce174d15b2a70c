// Package journal persists import run summaries and their failed records
// to a MySQL database, so operators can follow up on failures after the
// process exits. The journal is optional; when the database is unreachable
// the importer logs a warning and runs without it.
package journal
