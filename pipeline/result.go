// Package pipeline contains the values an aggregation pipeline reports while it runs.
package pipeline

// ResultType is the type of result being returned through a pipeline channel.
type ResultType uint8

const (
	// Aggregation carries the summary of the merged score table.
	Aggregation ResultType = iota
	// Output is a table written to disk.
	Output
	// Plot is a set of learning curve images written to disk.
	Plot
	// Error indicates an error was raised.
	Error
	// Done indicates the pipeline has completed.
	Done
)

// Result is the output of an aggregation pipeline.
type Result struct {
	// Rows is the number of aggregated rows.
	Rows int
	// Sizes are the distinct training set sizes.
	Sizes []float64
	// Paths are the files written by an Output or Plot step.
	Paths []string
	Error error
	Type  ResultType
}
