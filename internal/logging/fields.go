package logging

// Common field names for structured logging.
const (
	FieldComponent  = "component"
	FieldOperation  = "operation"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldEmail      = "email"
	FieldRole       = "role"
	FieldResource   = "resource"
	FieldCount      = "count"
)

// Standard component names.
const (
	ComponentApp        = "app"
	ComponentAPI        = "api"
	ComponentSession    = "session"
	ComponentStore      = "store"
	ComponentController = "controller"
	ComponentSandbox    = "sandbox"
	ComponentTUI        = "tui"
)

// Standard operation names.
const (
	OpList   = "list"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
	OpLogin  = "login"
	OpLogout = "logout"
)
