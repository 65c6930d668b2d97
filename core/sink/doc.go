// Package sink publishes the combined city table.
//
// Every Sink receives the same ordered rows and the union field list of the
// table, and writes nothing when there are no rows:
//
//   - CSVFile: a local CSV file with a header row
//   - Object: the same CSV uploaded to the storage bucket
//   - Table: a database table with one TEXT column per field
//
// Publish fans one table out to several sinks.
package sink
