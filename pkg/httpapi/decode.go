package httpapi

import (
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"github.com/openradius/raddecode/internal/logger"
	"github.com/openradius/raddecode/internal/telemetry"
	"github.com/openradius/raddecode/pkg/metrics"
	"github.com/openradius/raddecode/pkg/radius"
	"github.com/openradius/raddecode/pkg/radius/dictionary"
	"github.com/openradius/raddecode/pkg/radius/vp"
)

// decodeRequest is the body accepted by POST /decode. Payload and Vector are
// hex-encoded; Vector defaults to 16 zero bytes if omitted, matching a
// Request Authenticator of all zeros.
type decodeRequest struct {
	Payload             string `json:"payload"`
	Secret              string `json:"secret"`
	Vector              string `json:"vector"`
	TunnelPasswordZeros bool   `json:"tunnel_password_zeros"`
}

// attributeJSON is the wire shape of one decoded VP in a /decode response.
type attributeJSON struct {
	Number      uint32 `json:"number"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	VendorPEN   uint32 `json:"vendor_pen,omitempty"`
	VendorName  string `json:"vendor_name,omitempty"`
	Tag         int    `json:"tag,omitempty"`
	Value       any    `json:"value"`
	RawFallback bool   `json:"raw_fallback"`
}

type decodeResponse struct {
	Attributes    []attributeJSON `json:"attributes"`
	RawFallbacks  int             `json:"raw_fallback_count"`
	DecodeMicros  int64           `json:"decode_micros"`
}

// DecodeHandler decodes a single hex-encoded attribute buffer against dict,
// writing the resulting VPs as JSON. dict is shared across requests and must
// not be mutated concurrently with a reload.
type DecodeHandler struct {
	dict dictionary.Dictionary
}

// NewDecodeHandler builds a DecodeHandler backed by dict.
func NewDecodeHandler(dict dictionary.Dictionary) *DecodeHandler {
	return &DecodeHandler{dict: dict}
}

// ServeHTTP implements POST /decode.
func (h *DecodeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, span := telemetry.StartDecodeSpan(r.Context(), telemetry.SpanDecodePair)
	defer span.End()

	var req decodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body: "+err.Error())
		return
	}

	payload, err := hex.DecodeString(req.Payload)
	if err != nil {
		badRequest(w, "payload: invalid hex: "+err.Error())
		return
	}

	pctx := &vp.Context{
		Secret:              []byte(req.Secret),
		TunnelPasswordZeros: req.TunnelPasswordZeros,
	}
	if req.Vector != "" {
		raw, err := hex.DecodeString(req.Vector)
		if err != nil {
			badRequest(w, "vector: invalid hex: "+err.Error())
			return
		}
		if len(raw) != len(pctx.Vector) {
			badRequest(w, "vector: must be exactly 16 bytes")
			return
		}
		copy(pctx.Vector[:], raw)
	}

	cur := &vp.Cursor{}
	start := time.Now()
	if err := radius.DecodeAttributesWithMetrics(h.dict, cur, pctx, payload, metrics.NewDecodeMetrics()); err != nil {
		telemetry.RecordError(ctx, err)
		logger.WarnCtx(ctx, "decode request failed", logger.Err(err))
		internalServerError(w, err.Error())
		return
	}
	elapsed := time.Since(start)

	resp := decodeResponse{DecodeMicros: elapsed.Microseconds()}
	for _, p := range cur.Pairs() {
		a := attributeJSON{
			Number:      p.Descriptor.Number,
			Name:        p.Descriptor.Name,
			Type:        p.Descriptor.Type.String(),
			Tag:         tagOrZero(p.Tag),
			Value:       jsonValue(p.Value),
			RawFallback: p.Descriptor.Flags.IsUnknown,
		}
		if p.Descriptor.Vendor != nil {
			a.VendorPEN = p.Descriptor.Vendor.PEN
			a.VendorName = p.Descriptor.Vendor.Name
		}
		if a.RawFallback {
			resp.RawFallbacks++
		}
		resp.Attributes = append(resp.Attributes, a)
	}

	telemetry.SetAttributes(ctx, telemetry.Fragments(len(resp.Attributes)))
	writeJSON(w, resp)
}

func tagOrZero(tag int) int {
	if tag == vp.NoTag {
		return 0
	}
	return tag
}

// jsonValue converts a VP's decoded value into something encoding/json
// renders sensibly: []byte becomes a hex string rather than base64, since
// hex is what every other field in this API already speaks.
func jsonValue(v any) any {
	if b, ok := v.([]byte); ok {
		return hex.EncodeToString(b)
	}
	return v
}
