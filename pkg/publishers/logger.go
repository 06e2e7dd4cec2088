package publishers

import "github.com/samvad-hq/randwall/pkg/sources"

// Logger is shared with pkg/sources so one wrapped zap logger serves both.
type Logger = sources.Logger

type noopLogger struct{}

func (noopLogger) InfoObj(string, string, any)  {}
func (noopLogger) DebugObj(string, string, any) {}
func (noopLogger) WarnObj(string, string, any)  {}
func (noopLogger) ErrorObj(string, string, any) {}

func ensureLogger(log Logger) Logger {
	if log == nil {
		return noopLogger{}
	}
	return log
}

// deliveryFields is the payload logged for every delivery attempt.
func deliveryFields(id, typ string, evt Event) map[string]any {
	return map[string]any{
		"publisher_id":   id,
		"publisher_type": typ,
		"source_id":      evt.SourceID,
		"image_id":       evt.ImageID,
	}
}
