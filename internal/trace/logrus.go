package trace

import "github.com/sirupsen/logrus"

// LogTracer forwards events to a logrus logger at debug level, so spans
// show up interleaved with the driver's own log lines.
type LogTracer struct {
	log   logrus.FieldLogger
	level Level
}

func NewLogTracer(log logrus.FieldLogger, level Level) *LogTracer {
	return &LogTracer{log: log, level: level}
}

func (t *LogTracer) Wants(scope Scope) bool { return t.level.ShouldEmit(scope) }

func (t *LogTracer) Emit(ev *Event) {
	if !t.Wants(ev.Scope) {
		return
	}
	fields := logrus.Fields{
		"scope": ev.Scope.String(),
		"event": ev.Kind.String(),
	}
	if ev.SpanID != 0 {
		fields["span"] = ev.SpanID
	}
	if ev.ParentID != 0 {
		fields["parent"] = ev.ParentID
	}
	if ev.Detail != "" {
		fields["detail"] = ev.Detail
	}
	for k, v := range ev.Extra {
		fields[k] = v
	}
	t.log.WithFields(fields).Debug(ev.Name)
}

func (t *LogTracer) Flush() error  { return nil }
func (t *LogTracer) Close() error  { return nil }
func (t *LogTracer) Level() Level  { return t.level }
func (t *LogTracer) Enabled() bool { return t.level > LevelOff }
