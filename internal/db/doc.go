// Package db is a single-file embedded record store.
//
// A [Database] holds a document mapping table names to ordered slices of
// schema-less [Record] values and mirrors it to one JSON file. Reads work on
// the in-memory copy. Every mutation rewrites the whole file through a temp
// file and rename before returning, so a failed write is reported to the
// caller and the in-memory change is rolled back.
//
// Update, UpdateStatus and Delete report an [Outcome] instead of failing when
// the id is unknown.
package db
