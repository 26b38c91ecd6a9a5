package logger

import "go.uber.org/zap/zapcore"

// Verbosity levels for CLI flag counts.
const (
	VerbosityUser  = 0 // No flags: results, warnings, errors only
	VerbosityInfo  = 1 // -v: + progress, dispatch, retry decisions
	VerbosityDebug = 2 // -vv: + gcloud invocations, store writes, timing
)

// VerbosityToLevel maps verbosity flags (-v, -vv) to zap log levels.
func VerbosityToLevel(verbosity int) zapcore.Level {
	switch verbosity {
	case VerbosityUser:
		return zapcore.WarnLevel
	case VerbosityInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}
