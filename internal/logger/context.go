package logger

import (
	"context"
	"time"
)

// contextKey is a private type for context keys to avoid collisions
type contextKey struct{}

// logContextKey is the key for LogContext in context.Context
var logContextKey = contextKey{}

// LogContext holds decode-scoped logging context: which packet is being
// decoded, which attribute is currently under the cursor, and which vendor
// namespace it belongs to, so a raw-fallback or fragment-reassembly log line
// can be traced back to the record that produced it without threading those
// values through every decoder call explicitly.
type LogContext struct {
	TraceID   string // OpenTelemetry trace ID
	SpanID    string // OpenTelemetry span ID
	PacketID  string // correlation id for the packet being decoded
	NASAddr   string // originating NAS address, if known
	AttrType  uint32 // top-level attribute type currently being decoded
	VendorPEN uint32 // vendor Private Enterprise Number, 0 if not a VSA
	StartTime time.Time
}

// WithContext returns a new context with the given LogContext
func WithContext(ctx context.Context, lc *LogContext) context.Context {
	return context.WithValue(ctx, logContextKey, lc)
}

// FromContext retrieves the LogContext from context, or nil if not present
func FromContext(ctx context.Context) *LogContext {
	if ctx == nil {
		return nil
	}
	lc, _ := ctx.Value(logContextKey).(*LogContext)
	return lc
}

// NewLogContext creates a new LogContext for a packet identified by id.
func NewLogContext(packetID string) *LogContext {
	return &LogContext{
		PacketID:  packetID,
		StartTime: time.Now(),
	}
}

// Clone creates a copy of the LogContext
func (lc *LogContext) Clone() *LogContext {
	if lc == nil {
		return nil
	}
	return &LogContext{
		TraceID:   lc.TraceID,
		SpanID:    lc.SpanID,
		PacketID:  lc.PacketID,
		NASAddr:   lc.NASAddr,
		AttrType:  lc.AttrType,
		VendorPEN: lc.VendorPEN,
		StartTime: lc.StartTime,
	}
}

// WithAttr returns a copy with the current attribute type and vendor PEN set.
func (lc *LogContext) WithAttr(attrType, vendorPEN uint32) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.AttrType = attrType
		clone.VendorPEN = vendorPEN
	}
	return clone
}

// WithNAS returns a copy with the originating NAS address set.
func (lc *LogContext) WithNAS(addr string) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.NASAddr = addr
	}
	return clone
}

// WithTrace returns a copy with trace info set
func (lc *LogContext) WithTrace(traceID, spanID string) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.TraceID = traceID
		clone.SpanID = spanID
	}
	return clone
}

// DurationMs returns the duration since StartTime in milliseconds
func (lc *LogContext) DurationMs() float64 {
	if lc == nil || lc.StartTime.IsZero() {
		return 0
	}
	return float64(time.Since(lc.StartTime).Microseconds()) / 1000.0
}
