// Package fbi reads FBI "Offenses Known to Law Enforcement by State by City"
// tables.
//
// The tables have no identifier shared with other agencies, so they are
// joined to census data by (state, city, population). Two export formats are
// read:
//
//   - JSON: an object of rows keyed by row index (see ParseJSON)
//   - CSV: the spreadsheet saved as CSV, title rows above the header (see ParseCSV)
package fbi
