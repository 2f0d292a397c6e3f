package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys for decode spans.
const (
	AttrPacketID    = "radius.packet_id"
	AttrNASAddr     = "radius.nas_addr"
	AttrAttrType    = "radius.attr_type"
	AttrAttrName    = "radius.attr_name"
	AttrVendorPEN   = "radius.vendor_pen"
	AttrVendorName  = "radius.vendor_name"
	AttrDepth       = "radius.depth"
	AttrRawFallback = "radius.raw_fallback"
	AttrFragments   = "radius.fragments"
	AttrSubtype     = "radius.subtype"
	AttrDictSource  = "radius.dict_source"
)

// Span names for decode operations.
const (
	SpanDecodePair     = "radius.decode_pair"
	SpanDecodeValue    = "radius.decode_pair_value"
	SpanDecodeTLV      = "radius.decode_tlv"
	SpanDecodeVSA      = "radius.decode_vsa"
	SpanDecodePassword = "radius.decode_password"
	SpanDecodeTunnel   = "radius.decode_tunnel_password"
	SpanDictionaryLoad = "radius.dictionary_load"
)

// PacketID returns an attribute for the correlation ID of the packet being decoded.
func PacketID(id string) attribute.KeyValue {
	return attribute.String(AttrPacketID, id)
}

// NASAddr returns an attribute for the originating NAS address.
func NASAddr(addr string) attribute.KeyValue {
	return attribute.String(AttrNASAddr, addr)
}

// AttrType returns an attribute for the top-level RADIUS attribute type.
func AttrType(n uint32) attribute.KeyValue {
	return attribute.Int64(AttrAttrType, int64(n))
}

// AttrName returns an attribute for the resolved attribute name.
func AttrName(name string) attribute.KeyValue {
	return attribute.String(AttrAttrName, name)
}

// VendorPEN returns an attribute for a vendor's Private Enterprise Number.
func VendorPEN(pen uint32) attribute.KeyValue {
	return attribute.Int64(AttrVendorPEN, int64(pen))
}

// VendorName returns an attribute for a vendor's name.
func VendorName(name string) attribute.KeyValue {
	return attribute.String(AttrVendorName, name)
}

// Depth returns an attribute for the current TLV/VSA/struct nesting depth.
func Depth(depth int) attribute.KeyValue {
	return attribute.Int(AttrDepth, depth)
}

// RawFallback returns an attribute marking that an attribute degraded to
// raw octets.
func RawFallback(fellBack bool) attribute.KeyValue {
	return attribute.Bool(AttrRawFallback, fellBack)
}

// Fragments returns an attribute for the number of wire fragments combined
// into one attribute value.
func Fragments(count int) attribute.KeyValue {
	return attribute.Int(AttrFragments, count)
}

// Subtype returns an attribute for the obfuscation scheme applied to a value.
func Subtype(name string) attribute.KeyValue {
	return attribute.String(AttrSubtype, name)
}

// DictSource returns an attribute for where the active dictionary came from.
func DictSource(source string) attribute.KeyValue {
	return attribute.String(AttrDictSource, source)
}

// StartDecodeSpan starts a span for one of the named decode operations.
func StartDecodeSpan(ctx context.Context, spanName string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return StartSpan(ctx, spanName, trace.WithAttributes(attrs...))
}
