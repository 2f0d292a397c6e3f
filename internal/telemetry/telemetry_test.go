package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.Enabled)
	assert.Equal(t, "raddecode", cfg.ServiceName)
	assert.Equal(t, "dev", cfg.ServiceVersion)
	assert.Equal(t, "localhost:4317", cfg.Endpoint)
	assert.True(t, cfg.Insecure)
	assert.Equal(t, 1.0, cfg.SampleRate)
}

func TestInitDisabled(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.Enabled = false

	shutdown, err := Init(ctx, cfg)
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	err = shutdown(ctx)
	assert.NoError(t, err)

	assert.False(t, IsEnabled())
}

func TestTracerReturnsNoOp(t *testing.T) {
	tracer = nil
	enabled = false

	tr := Tracer()
	require.NotNil(t, tr)
}

func TestStartSpan(t *testing.T) {
	ctx := context.Background()

	newCtx, span := StartSpan(ctx, "test.operation")
	require.NotNil(t, newCtx)
	require.NotNil(t, span)
	span.End()
}

func TestSpanFromContext(t *testing.T) {
	ctx := context.Background()

	span := SpanFromContext(ctx)
	require.NotNil(t, span)
}

func TestAddEvent(t *testing.T) {
	ctx := context.Background()

	require.NotPanics(t, func() {
		AddEvent(ctx, "test.event")
	})
}

func TestRecordError(t *testing.T) {
	ctx := context.Background()

	require.NotPanics(t, func() {
		RecordError(ctx, nil)
	})
	require.NotPanics(t, func() {
		RecordError(ctx, errors.New("test error"))
	})
}

func TestSetStatus(t *testing.T) {
	ctx := context.Background()

	require.NotPanics(t, func() {
		SetStatus(ctx, codes.Ok, "success")
	})
	require.NotPanics(t, func() {
		SetStatus(ctx, codes.Error, "failed")
	})
}

func TestSetAttributes(t *testing.T) {
	ctx := context.Background()

	require.NotPanics(t, func() {
		SetAttributes(ctx, NASAddr("10.0.0.1"))
	})
}

func TestTraceID(t *testing.T) {
	ctx := context.Background()

	traceID := TraceID(ctx)
	assert.Equal(t, "", traceID)
}

func TestSpanID(t *testing.T) {
	ctx := context.Background()

	spanID := SpanID(ctx)
	assert.Equal(t, "", spanID)
}

func TestAttributeHelpers(t *testing.T) {
	t.Run("PacketID", func(t *testing.T) {
		attr := PacketID("pkt-1")
		assert.Equal(t, AttrPacketID, string(attr.Key))
		assert.Equal(t, "pkt-1", attr.Value.AsString())
	})

	t.Run("NASAddr", func(t *testing.T) {
		attr := NASAddr("10.0.0.1")
		assert.Equal(t, AttrNASAddr, string(attr.Key))
		assert.Equal(t, "10.0.0.1", attr.Value.AsString())
	})

	t.Run("AttrType", func(t *testing.T) {
		attr := AttrType(1)
		assert.Equal(t, AttrAttrType, string(attr.Key))
		assert.Equal(t, int64(1), attr.Value.AsInt64())
	})

	t.Run("AttrName", func(t *testing.T) {
		attr := AttrName("User-Name")
		assert.Equal(t, AttrAttrName, string(attr.Key))
		assert.Equal(t, "User-Name", attr.Value.AsString())
	})

	t.Run("VendorPEN", func(t *testing.T) {
		attr := VendorPEN(9)
		assert.Equal(t, AttrVendorPEN, string(attr.Key))
		assert.Equal(t, int64(9), attr.Value.AsInt64())
	})

	t.Run("VendorName", func(t *testing.T) {
		attr := VendorName("Cisco")
		assert.Equal(t, AttrVendorName, string(attr.Key))
		assert.Equal(t, "Cisco", attr.Value.AsString())
	})

	t.Run("Depth", func(t *testing.T) {
		attr := Depth(3)
		assert.Equal(t, AttrDepth, string(attr.Key))
		assert.Equal(t, int64(3), attr.Value.AsInt64())
	})

	t.Run("RawFallback", func(t *testing.T) {
		attr := RawFallback(true)
		assert.Equal(t, AttrRawFallback, string(attr.Key))
		assert.True(t, attr.Value.AsBool())
	})

	t.Run("Fragments", func(t *testing.T) {
		attr := Fragments(2)
		assert.Equal(t, AttrFragments, string(attr.Key))
		assert.Equal(t, int64(2), attr.Value.AsInt64())
	})

	t.Run("Subtype", func(t *testing.T) {
		attr := Subtype("tunnel_password")
		assert.Equal(t, AttrSubtype, string(attr.Key))
		assert.Equal(t, "tunnel_password", attr.Value.AsString())
	})

	t.Run("DictSource", func(t *testing.T) {
		attr := DictSource("s3")
		assert.Equal(t, AttrDictSource, string(attr.Key))
		assert.Equal(t, "s3", attr.Value.AsString())
	})
}

func TestStartDecodeSpan(t *testing.T) {
	ctx := context.Background()

	newCtx, span := StartDecodeSpan(ctx, SpanDecodePair, AttrType(1), AttrName("User-Name"))
	require.NotNil(t, newCtx)
	require.NotNil(t, span)
	span.End()

	newCtx2, span2 := StartDecodeSpan(ctx, SpanDecodeTLV, VendorPEN(9), Depth(1))
	require.NotNil(t, newCtx2)
	require.NotNil(t, span2)
	span2.End()
}
