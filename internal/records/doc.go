// Package records defines the analysis schemas and turns reconciled field
// lists into validated dataset rows. A Schema names the stored columns,
// locates the anchor fields the parser repairs around, and knows how the
// item key enters the row: segment rows have it injected as a new leading
// column, script rows overwrite the filename column the model echoes back.
package records
