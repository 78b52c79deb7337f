package logger

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type Fields map[string]any

var base = newBase(os.Stdout)

var sensitiveKeys = map[string]struct{}{
	"password":      {},
	"passwordhash":  {},
	"password_hash": {},
	"token":         {},
	"authorization": {},
	"cookie":        {},
	"jwtsecret":     {},
	"secret":        {},
}

func newBase(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// Configure sets the minimum level ("debug", "info", "warn", "error").
// Unknown levels leave the current level untouched.
func Configure(level string) {
	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		base.WithField("level", level).Warn("unknown log level")
		return
	}
	base.SetLevel(parsed)
}

// SetOutput redirects log output, mainly for tests.
func SetOutput(out io.Writer) {
	base.SetOutput(out)
}

func Debug(message string, fields Fields) {
	base.WithFields(toLogrus(fields)).Debug(message)
}

func Info(message string, fields Fields) {
	base.WithFields(toLogrus(fields)).Info(message)
}

func Warn(message string, fields Fields) {
	base.WithFields(toLogrus(fields)).Warn(message)
}

func Error(message string, err error, fields Fields) {
	entry := base.WithFields(toLogrus(fields))
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Error(message)
}

func SanitizePayload(payload any) any {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "<unavailable>"
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return "<unavailable>"
	}

	return sanitizeValue(data)
}

func toLogrus(fields Fields) logrus.Fields {
	out := logrus.Fields{}
	for k, v := range fields {
		if isSensitiveKey(k) {
			out[k] = "******"
			continue
		}
		out[k] = v
	}
	return out
}

func sanitizeValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, inner := range typed {
			if isSensitiveKey(key) {
				out[key] = "******"
				continue
			}
			out[key] = sanitizeValue(inner)
		}
		return out
	case []any:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			out = append(out, sanitizeValue(item))
		}
		return out
	default:
		return value
	}
}

func isSensitiveKey(key string) bool {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(key), "-", ""))
	_, ok := sensitiveKeys[normalized]
	return ok
}
