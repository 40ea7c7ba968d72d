package logger

import "go.uber.org/zap"

// convertToZapFields converts error and additional field maps into Zap's structured logging fields.
//
// The method handles both error objects and arbitrary key-value pairs from the fields maps.
// If multiple fields maps contain the same key, the later maps will override earlier ones.
func (l *Logger) convertToZapFields(err error, fields ...map[string]interface{}) []zap.Field {
	var zapFields []zap.Field
	if err != nil {
		zapFields = append(zapFields, zap.Error(err))
	}

	for _, fieldMap := range fields {
		for key, value := range fieldMap {
			zapFields = append(zapFields, zap.Any(key, value))
		}
	}
	return zapFields
}

// Info logs an informational message, along with an optional error and structured fields.
// Use Info for general application progress and successful operations.
//
// Example:
//
//	logger.Info("User logged in successfully", nil, map[string]interface{}{
//	    "user_id": 12345,
//	})
func (l *Logger) Info(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Info(msg, l.convertToZapFields(err, fields...)...)
}

// Debug logs a debug-level message, useful for development and troubleshooting.
func (l *Logger) Debug(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Debug(msg, l.convertToZapFields(err, fields...)...)
}

// Warn logs a warning message, indicating potential issues that aren't necessarily errors.
func (l *Logger) Warn(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Warn(msg, l.convertToZapFields(err, fields...)...)
}

// Error logs an error message, including details of the error and additional context fields.
func (l *Logger) Error(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Error(msg, l.convertToZapFields(err, fields...)...)
}

// Fatal logs a critical error message and terminates the application.
//
// Note: This function does not return as it terminates the application.
func (l *Logger) Fatal(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Fatal(msg, l.convertToZapFields(err, fields...)...)
}

// NewNop returns a logger that discards everything. Intended for tests.
func NewNop() *Logger {
	return &Logger{Zap: zap.NewNop()}
}
