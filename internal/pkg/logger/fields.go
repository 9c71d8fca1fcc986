package logger

import (
	"time"

	"github.com/docker/go-units"
	"go.uber.org/zap"
)

func String(key, value string) zap.Field { return zap.String(key, value) }

func Int(key string, value int) zap.Field { return zap.Int(key, value) }

func Bool(key string, value bool) zap.Field { return zap.Bool(key, value) }

func Duration(key string, value time.Duration) zap.Field { return zap.Duration(key, value) }

// Bytes renders a byte count in decimal units (e.g. "1GB")
func Bytes(key string, value uint64) zap.Field {
	return zap.String(key, units.HumanSize(float64(value)))
}
