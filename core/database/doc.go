// Package database manages the optional MySQL connection backing the run
// journal. A failed connection is a warning, never a reason to abort an
// import run.
package database
