package logger

import (
	"ZramManager/internal/pkg/config"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process wide logger. It discards everything until Init is called.
var Log = zap.NewNop()

// Init builds the process logger from the logs section of cfg
func Init(cfg *config.Config) error {
	if !cfg.Logs.Enabled {
		Log = zap.NewNop()
		return nil
	}

	level, err := zapcore.ParseLevel(cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Logs.Level, err)
	}

	sink, err := openSink(cfg.AppName, cfg.Logs)
	if err != nil {
		return err
	}

	core := zapcore.NewCore(newEncoder(cfg.Logs.Format), sink, zap.NewAtomicLevelAt(level))

	// Skip one frame so call sites show up instead of the wrappers below.
	Log = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel)).
		With(zap.String("app", cfg.AppName))

	Log.Info("Logger ready",
		zap.String("level", level.String()),
		zap.String("format", cfg.Logs.Format),
		zap.String("dir", cfg.Logs.FilePath))
	return nil
}

func newEncoder(format string) zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "timestamp"
	ec.MessageKey = "message"
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	ec.EncodeDuration = zapcore.StringDurationEncoder

	if format == "json" {
		return zapcore.NewJSONEncoder(ec)
	}
	return zapcore.NewConsoleEncoder(ec)
}

// openSink fans log output to the rotated <app>.log file and/or stdout, falling back to stderr
func openSink(appName string, lc config.LogsConfig) (zapcore.WriteSyncer, error) {
	var sinks []zapcore.WriteSyncer

	if lc.FilePath != "" {
		if err := os.MkdirAll(lc.FilePath, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		sinks = append(sinks, zapcore.AddSync(&lumberjack.Logger{
			Filename:   filepath.Join(lc.FilePath, appName+".log"),
			MaxSize:    lc.MaxSizeMB,
			MaxBackups: lc.MaxBackups,
			MaxAge:     lc.MaxAgeDays,
			Compress:   true,
		}))
	}
	if lc.Stdout {
		sinks = append(sinks, zapcore.AddSync(os.Stdout))
	}
	if len(sinks) == 0 {
		return zapcore.AddSync(os.Stderr), nil
	}
	return zapcore.NewMultiWriteSyncer(sinks...), nil
}

// Sync flushes buffered entries
func Sync() error {
	return Log.Sync()
}

// SetLogger swaps the process logger. Tests use it to capture output.
func SetLogger(l *zap.Logger) {
	Log = l
}

func Debug(msg string, fields ...zap.Field) { Log.Debug(msg, fields...) }

func Info(msg string, fields ...zap.Field) { Log.Info(msg, fields...) }

func Warn(msg string, fields ...zap.Field) { Log.Warn(msg, fields...) }

func Error(msg string, fields ...zap.Field) { Log.Error(msg, fields...) }

// Fatal logs at FatalLevel and exits the process
func Fatal(msg string, fields ...zap.Field) { Log.Fatal(msg, fields...) }
