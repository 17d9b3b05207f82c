// Package log is a thin action-keyed wrapper over zap. Call sites tag every
// line with a dotted action name ("checkout.purchase", "auth.login.fail") so
// log search stays grep-able.
package log

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var base *zap.Logger

func init() {
	l, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	base = l.WithOptions(zap.AddCallerSkip(2))
}

// SetLogger swaps the backing logger; tests use zap.NewNop().
func SetLogger(l *zap.Logger) { base = l.WithOptions(zap.AddCallerSkip(2)) }

func write(level string, c *fiber.Ctx, action string, err error, fields map[string]any) {
	fs := make([]zap.Field, 0, len(fields)+6)
	fs = append(fs, zap.String("action", action))
	if c != nil {
		fs = append(fs,
			zap.String("ip", c.IP()),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
		)
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			fs = append(fs, zap.String("req_id", rid))
		}
	}
	if err != nil {
		fs = append(fs, zap.Error(err))
	}
	for k, v := range fields {
		fs = append(fs, zap.Any(k, v))
	}
	switch level {
	case "warn":
		base.Warn(action, fs...)
	case "error":
		base.Error(action, fs...)
	default:
		base.Info(action, fs...)
	}
}

func Info(c *fiber.Ctx, action string, fields map[string]any)  { write("info", c, action, nil, fields) }
func Audit(c *fiber.Ctx, action string, fields map[string]any) { write("info", c, action, nil, fields) }
func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write("warn", c, action, nil, fields)
}
func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write("error", c, action, err, fields)
}
