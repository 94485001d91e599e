package logger

import "go.uber.org/zap"

var log = zap.NewNop()

// SetType switches between the development and production zap presets.
// An empty mode or "off" keeps logging disabled; any other value selects
// production.
func SetType(mode string) error {
	var (
		l   *zap.Logger
		err error
	)
	switch mode {
	case "", "off":
		l = zap.NewNop()
	case "dev":
		l, err = zap.NewDevelopment()
	default:
		l, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}
	log = l
	return nil
}

// Enabled reports whether any log output is produced.
func Enabled() bool {
	return log.Core().Enabled(zap.FatalLevel)
}

// Use replaces the underlying logger.
func Use(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	log = l
}

func toFields(xs ...interface{}) []zap.Field {
	out := make([]zap.Field, 0, len(xs))
	i := 0
	for i < len(xs) {
		switch v := xs[i].(type) {
		case zap.Field:
			out = append(out, v)
			i++
		case map[string]interface{}:
			for k, val := range v {
				out = append(out, zap.Any(k, val))
			}
			i++
		case string:
			if i+1 < len(xs) {
				out = append(out, zap.Any(v, xs[i+1]))
				i += 2
			} else {
				out = append(out, zap.Any(v, nil))
				i++
			}
		default:
			out = append(out, zap.Any("", v))
			i++
		}
	}
	return out
}

func Info(msg string, fields ...interface{}) {
	log.Info(msg, toFields(fields...)...)
}

func Error(msg string, fields ...interface{}) {
	log.Error(msg, toFields(fields...)...)
}

func Warn(msg string, fields ...interface{}) {
	log.Warn(msg, toFields(fields...)...)
}

func Debug(msg string, fields ...interface{}) {
	log.Debug(msg, toFields(fields...)...)
}

func Sync() {
	_ = log.Sync()
}
