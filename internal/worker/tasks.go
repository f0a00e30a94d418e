package worker

// Task Types
const (
	TypeStatementExport = "statement:export"
)
