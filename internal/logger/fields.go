package logger

// Fields is an alias for map[string]interface{} for convenience.
type Fields map[string]interface{}

// Standard field names used across the fetch pipeline. Source and Bucket
// identify where an item came from; RunID correlates one build invocation.
const (
	FieldRunID  = "run_id"
	FieldSource = "source"
	FieldBucket = "bucket"
	FieldItem   = "item"
	FieldLink   = "link"
	FieldCount  = "count"
)
