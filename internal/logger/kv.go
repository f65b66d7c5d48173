package logger

import "fmt"

// KV adapts a Logger to loosely typed key/value logging APIs such as
// retryablehttp.LeveledLogger.
type KV struct {
	L Logger
}

func (k KV) Error(msg string, keysAndValues ...interface{}) { k.L.Error(msg, kvFields(keysAndValues)...) }
func (k KV) Warn(msg string, keysAndValues ...interface{})  { k.L.Warn(msg, kvFields(keysAndValues)...) }
func (k KV) Info(msg string, keysAndValues ...interface{})  { k.L.Info(msg, kvFields(keysAndValues)...) }
func (k KV) Debug(msg string, keysAndValues ...interface{}) { k.L.Debug(msg, kvFields(keysAndValues)...) }

func kvFields(kv []interface{}) []Field {
	fields := make([]Field, 0, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		key := fmt.Sprint(kv[i])
		if i+1 >= len(kv) {
			fields = append(fields, Any("extra", kv[i]))
			break
		}
		if err, ok := kv[i+1].(error); ok {
			fields = append(fields, String(key, err.Error()))
			continue
		}
		fields = append(fields, Any(key, kv[i+1]))
	}
	return fields
}
