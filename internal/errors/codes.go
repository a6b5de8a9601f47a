package errors

// Common error codes
const (
	// System errors
	ErrInternal        ErrorCode = "internal_error"
	ErrInvalidArgument ErrorCode = "invalid_argument"
	ErrUnavailable     ErrorCode = "service_unavailable"
	ErrAlreadyRunning  ErrorCode = "already_running"

	// Configuration errors
	ErrInvalidConfig   ErrorCode = "invalid_configuration"
	ErrBindFlags       ErrorCode = "bind_flags_failed"
	ErrReadConfig      ErrorCode = "read_config_failed"
	ErrInvalidInterval ErrorCode = "invalid_interval"
	ErrInvalidLogLevel ErrorCode = "invalid_log_level"

	// Initialization errors
	ErrInitFailed     ErrorCode = "initialization_failed"
	ErrShutdownFailed ErrorCode = "shutdown_failed"

	// Detection errors
	ErrDetectorFailed  ErrorCode = "detector_failed"
	ErrDetectorTimeout ErrorCode = "detector_timeout"
	ErrNoSensorsFound  ErrorCode = "no_sensors_found"

	// Metric source errors
	ErrMetricSourceFailed ErrorCode = "metric_source_failed"

	// Refresh errors
	ErrSensorRecompute ErrorCode = "sensor_recompute_failed"
	ErrUnknownSensor   ErrorCode = "unknown_sensor"

	// Fan errors
	ErrUnknownFan      ErrorCode = "unknown_fan"
	ErrInvalidFanSpeed ErrorCode = "invalid_fan_speed"

	// Storage errors
	ErrInvalidDBPath ErrorCode = "invalid_db_path"
	ErrStorageInit   ErrorCode = "storage_init_failed"
	ErrStorageAccess ErrorCode = "storage_access_failed"
	ErrStorageClose  ErrorCode = "storage_close_failed"

	// Operation errors
	ErrOperationFailed ErrorCode = "operation_failed"
	ErrTimeout         ErrorCode = "operation_timeout"
)

// Common error messages
var errorMessages = map[ErrorCode]string{
	ErrInternal:           "Internal error occurred",
	ErrInvalidArgument:    "Invalid argument provided",
	ErrUnavailable:        "Service unavailable",
	ErrAlreadyRunning:     "Another instance is already running",
	ErrInvalidConfig:      "Invalid configuration",
	ErrBindFlags:          "Failed to bind flags",
	ErrReadConfig:         "Failed to read configuration",
	ErrInvalidInterval:    "Invalid interval value",
	ErrInvalidLogLevel:    "Invalid log level",
	ErrInitFailed:         "Initialization failed",
	ErrShutdownFailed:     "Shutdown failed",
	ErrDetectorFailed:     "Sensor detector failed",
	ErrDetectorTimeout:    "Sensor detector timed out",
	ErrNoSensorsFound:     "No sensors found",
	ErrMetricSourceFailed: "Failed to query system metric source",
	ErrSensorRecompute:    "Failed to recompute sensor value",
	ErrUnknownSensor:      "Unknown sensor key",
	ErrUnknownFan:         "Unknown fan identifier",
	ErrInvalidFanSpeed:    "Fan speed out of range",
	ErrInvalidDBPath:      "Invalid history database path",
	ErrStorageInit:        "Failed to initialize history storage",
	ErrStorageAccess:      "Failed to access history storage",
	ErrStorageClose:       "Failed to close history storage",
	ErrOperationFailed:    "Operation failed",
	ErrTimeout:            "Operation timed out",
}

// GetErrorMessage returns the message for a given error code
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}

	return string(code)
}
