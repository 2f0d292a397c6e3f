package logger

import (
	"fmt"
	"log/slog"
)

// Standard field keys for structured logging across the decoder, dictionary
// loader, and CLI. Use these keys consistently so log aggregation queries
// stay stable across packages.
const (
	// ========================================================================
	// Distributed Tracing
	// ========================================================================
	KeyTraceID = "trace_id" // OpenTelemetry trace ID for request correlation
	KeySpanID  = "span_id"  // OpenTelemetry span ID for operation tracking

	// ========================================================================
	// Packet & Attribute
	// ========================================================================
	KeyPacketID    = "packet_id"    // correlation id for the packet being decoded
	KeyPacketCode  = "packet_code"  // RADIUS code: Access-Request, Accounting-Request, etc.
	KeyNASAddr     = "nas_addr"     // originating NAS address
	KeyAttrType    = "attr_type"    // top-level attribute type number
	KeyAttrName    = "attr_name"    // resolved attribute name
	KeyAttrLen     = "attr_len"     // declared attribute value length
	KeyVendorPEN   = "vendor_pen"   // vendor Private Enterprise Number
	KeyVendorName  = "vendor_name"  // resolved vendor name
	KeyDepth       = "depth"        // recursion depth into nested TLV/VSA/struct
	KeyTag         = "tag"          // RFC 2868 tunnel tag, -1 if absent
	KeyRawFallback = "raw_fallback" // true when an attribute degraded to raw octets
	KeyFragments   = "fragments"    // number of fragments reassembled
	KeyConsumed    = "consumed"     // bytes consumed decoding one attribute

	// ========================================================================
	// Dictionary
	// ========================================================================
	KeyDictSource  = "dict_source"  // builtin, file, s3
	KeyDictPath    = "dict_path"    // dictionary file path or object key
	KeyDictEntries = "dict_entries" // number of descriptors loaded

	// ========================================================================
	// Operation Metadata
	// ========================================================================
	KeyDurationMs = "duration_ms" // operation duration in milliseconds
	KeyError      = "error"       // error message
	KeyErrorCode  = "error_code"  // numeric error code
	KeyOperation  = "operation"   // sub-operation type

	// ========================================================================
	// Storage / Cache (unknown-descriptor cache, audit trail)
	// ========================================================================
	KeyCacheHit  = "cache_hit"
	KeyCacheKey  = "cache_key"
	KeyStoreName = "store_name"

	// ========================================================================
	// Network / Server
	// ========================================================================
	KeyClientIP   = "client_ip"
	KeyClientPort = "client_port"
	KeyRequestID  = "request_id"
	KeyAttempt    = "attempt"
	KeyMaxRetries = "max_retries"
)

// ============================================================================
// Field constructors for type safety
// ============================================================================

func TraceID(id string) slog.Attr { return slog.String(KeyTraceID, id) }
func SpanID(id string) slog.Attr  { return slog.String(KeySpanID, id) }

// PacketID returns a slog.Attr for the packet correlation id.
func PacketID(id string) slog.Attr { return slog.String(KeyPacketID, id) }

// PacketCode returns a slog.Attr for the RADIUS packet code.
func PacketCode(code int) slog.Attr { return slog.Int(KeyPacketCode, code) }

// NASAddr returns a slog.Attr for the originating NAS address.
func NASAddr(addr string) slog.Attr { return slog.String(KeyNASAddr, addr) }

// AttrType returns a slog.Attr for a top-level attribute type number.
func AttrType(t uint32) slog.Attr { return slog.Any(KeyAttrType, t) }

// AttrName returns a slog.Attr for a resolved attribute name.
func AttrName(name string) slog.Attr { return slog.String(KeyAttrName, name) }

// AttrLen returns a slog.Attr for a declared attribute value length.
func AttrLen(n int) slog.Attr { return slog.Int(KeyAttrLen, n) }

// VendorPEN returns a slog.Attr for a vendor Private Enterprise Number.
func VendorPEN(pen uint32) slog.Attr { return slog.Any(KeyVendorPEN, pen) }

// VendorName returns a slog.Attr for a resolved vendor name.
func VendorName(name string) slog.Attr { return slog.String(KeyVendorName, name) }

// Depth returns a slog.Attr for recursion depth into nested attributes.
func Depth(d int) slog.Attr { return slog.Int(KeyDepth, d) }

// Tag returns a slog.Attr for an RFC 2868 tunnel tag.
func Tag(tag int) slog.Attr { return slog.Int(KeyTag, tag) }

// RawFallback returns a slog.Attr flagging that an attribute degraded to
// raw octets rather than decoding to its declared semantic type.
func RawFallback(fellback bool) slog.Attr { return slog.Bool(KeyRawFallback, fellback) }

// Fragments returns a slog.Attr for the number of fragments reassembled
// into one logical attribute value.
func Fragments(n int) slog.Attr { return slog.Int(KeyFragments, n) }

// Consumed returns a slog.Attr for bytes consumed decoding one attribute.
func Consumed(n int) slog.Attr { return slog.Int(KeyConsumed, n) }

// DictSource returns a slog.Attr for where a dictionary was loaded from.
func DictSource(src string) slog.Attr { return slog.String(KeyDictSource, src) }

// DictPath returns a slog.Attr for a dictionary file path or object key.
func DictPath(path string) slog.Attr { return slog.String(KeyDictPath, path) }

// DictEntries returns a slog.Attr for the number of descriptors loaded.
func DictEntries(n int) slog.Attr { return slog.Int(KeyDictEntries, n) }

// DurationMs returns a slog.Attr for duration in milliseconds
func DurationMs(ms float64) slog.Attr { return slog.Float64(KeyDurationMs, ms) }

// Err returns a slog.Attr for an error
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// ErrorCode returns a slog.Attr for numeric error code
func ErrorCode(code int) slog.Attr { return slog.Int(KeyErrorCode, code) }

// Operation returns a slog.Attr for sub-operation type
func Operation(op string) slog.Attr { return slog.String(KeyOperation, op) }

// CacheHit returns a slog.Attr for cache hit indicator
func CacheHit(hit bool) slog.Attr { return slog.Bool(KeyCacheHit, hit) }

// CacheKey returns a slog.Attr for an unknown-descriptor cache key.
func CacheKey(key string) slog.Attr { return slog.String(KeyCacheKey, key) }

// StoreName returns a slog.Attr for a named store identifier
func StoreName(name string) slog.Attr { return slog.String(KeyStoreName, name) }

// ClientIP returns a slog.Attr for client IP address
func ClientIP(addr string) slog.Attr { return slog.String(KeyClientIP, addr) }

// ClientPort returns a slog.Attr for client source port
func ClientPort(port int) slog.Attr { return slog.Int(KeyClientPort, port) }

// RequestID returns a slog.Attr for an HTTP/CLI request correlation id.
func RequestID(id string) slog.Attr { return slog.String(KeyRequestID, id) }

// Attempt returns a slog.Attr for retry attempt number
func Attempt(n int) slog.Attr { return slog.Int(KeyAttempt, n) }

// MaxRetries returns a slog.Attr for maximum retry attempts
func MaxRetries(n int) slog.Attr { return slog.Int(KeyMaxRetries, n) }

// HandleHex formats arbitrary bytes (e.g. a Request Authenticator) as a hex
// string attribute.
func HandleHex(key string, b []byte) slog.Attr {
	return slog.String(key, fmt.Sprintf("%x", b))
}
