package logging

// Field names shared by all log entries.
const (
	FieldFile        = "file"
	FieldBody        = "body"
	FieldGroupID     = "group_id"
	FieldDocument    = "document_number"
	FieldDocType     = "document_type"
	FieldCassaSource = "cassa_source"
	FieldDiscrepancy = "discrepancy"
	FieldCount       = "count"
	FieldFailed      = "failed"
	FieldWorkers     = "workers"
	FieldFormat      = "format"
	FieldInputFile   = "input_file"
	FieldOutputFile  = "output_file"
	FieldRemote      = "remote_addr"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatus      = "status"
	FieldLatency     = "latency"
	FieldAddr        = "addr"
)
