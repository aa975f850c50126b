package logging

// Standardized field names for structured logging.
// These constants ensure consistency across the application's log output,
// making logs easier to parse, filter, and analyze.
const (
	FieldFile        = "file_path"
	FieldFormat      = "format"
	FieldRowIndex    = "row_index"
	FieldStatementID = "statement_id"
	FieldAccountID   = "account_id"
	FieldCurrency    = "currency"
	FieldCount       = "count"
	FieldAccepted    = "accepted"
	FieldRejected    = "rejected"
	FieldDuplicates  = "duplicates"
	FieldConfidence  = "confidence"
	FieldReason      = "reason"
	FieldError       = "error"
	FieldDelimiter   = "delimiter"
	FieldMode        = "mode"
)
