package trace

type nopTracer struct{}

func (nopTracer) Emit(*Event)      {}
func (nopTracer) Flush() error     { return nil }
func (nopTracer) Close() error     { return nil }
func (nopTracer) Level() Level     { return LevelOff }
func (nopTracer) Enabled() bool    { return false }
func (nopTracer) Wants(Scope) bool { return false }

// Nop discards every event.
var Nop Tracer = nopTracer{}
