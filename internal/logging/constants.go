package logging

// Field names shared by every component so log output can be filtered consistently.
const (
	FieldFile       = "file_path"
	FieldComponent  = "component"
	FieldLayout     = "layout"
	FieldRow        = "row"
	FieldColumn     = "column"
	FieldCategory   = "category"
	FieldMonth      = "month"
	FieldReason     = "reason"
	FieldError      = "error"
	FieldCount      = "count"
	FieldRowsIn     = "rows_in"
	FieldRowsOut    = "rows_out"
	FieldDelimiter  = "delimiter"
	FieldFormat     = "format"
	FieldSink       = "sink"
	FieldArtifact   = "artifact"
	FieldOutputFile = "output_file"
	FieldThreshold  = "threshold"
	FieldDurationMS = "duration_ms"
)
