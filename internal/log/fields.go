package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldDebtID    = "debt_id"
	FieldCount     = "count"
	FieldKey       = "key"
	FieldBackend   = "backend"
	FieldPath      = "path"
	FieldFormat    = "format"
)

// Components
const (
	ComponentApp      = "app"
	ComponentLedger   = "ledger"
	ComponentStorage  = "storage"
	ComponentImport   = "import"
	ComponentHistory  = "history"
	ComponentTracker  = "tracker"
	ComponentReport   = "report"
	ComponentCommands = "commands"
)

// Operations
const (
	OpLoad     = "load"
	OpPersist  = "persist"
	OpAdd      = "add"
	OpToggle   = "toggle"
	OpEdit     = "edit"
	OpRemove   = "remove"
	OpClear    = "clear_completed"
	OpImport   = "import"
	OpExport   = "export"
	OpValidate = "validate"
	OpMigrate  = "migrate"
)
