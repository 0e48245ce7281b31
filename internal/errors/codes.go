package errors

// Common error codes
const (
	// System errors
	ErrInternal        ErrorCode = "internal_error"
	ErrInvalidArgument ErrorCode = "invalid_argument"
	ErrAlreadyRunning  ErrorCode = "already_running"

	// Configuration errors
	ErrInvalidConfig   ErrorCode = "invalid_configuration"
	ErrBindFlags       ErrorCode = "bind_flags_failed"
	ErrReadConfig      ErrorCode = "read_config_failed"
	ErrInvalidInterval ErrorCode = "invalid_interval"
	ErrInvalidLogLevel ErrorCode = "invalid_log_level"

	// Fetch errors
	ErrFetchFailed ErrorCode = "fetch_failed"
	ErrHTTPStatus  ErrorCode = "http_status_error"

	// Dataset errors
	ErrParseFailed  ErrorCode = "parse_failed"
	ErrEmptyDataset ErrorCode = "empty_dataset"

	// Computation errors
	ErrZeroConfirmed ErrorCode = "compute_zero_confirmed"

	// History errors
	ErrHistoryAccess ErrorCode = "history_access_failed"

	// Application errors
	ErrInitApp  ErrorCode = "init_app_failed"
	ErrMainLoop ErrorCode = "main_loop_failed"
)

// Common error messages
var errorMessages = map[ErrorCode]string{
	ErrInternal:        "Internal error occurred",
	ErrInvalidArgument: "Invalid argument provided",
	ErrAlreadyRunning:  "Another instance is already running",
	ErrInvalidConfig:   "Invalid configuration",
	ErrBindFlags:       "Failed to bind flags",
	ErrReadConfig:      "Failed to read configuration",
	ErrInvalidInterval: "Invalid interval value",
	ErrInvalidLogLevel: "Invalid log level",
	ErrFetchFailed:     "Failed to fetch dataset",
	ErrHTTPStatus:      "Unexpected HTTP status",
	ErrParseFailed:     "Failed to parse dataset",
	ErrEmptyDataset:    "Dataset contains no data rows",
	ErrZeroConfirmed:   "Confirmed count is zero, cannot derive death rate",
	ErrHistoryAccess:   "Failed to access history file",
	ErrInitApp:         "Failed to initialize application",
	ErrMainLoop:        "Error in main loop",
}

// GetErrorMessage returns the message for a given error code
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}

	return string(code)
}
