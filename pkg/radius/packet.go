// Package radius ties the dictionary, vp, and decode packages together into
// the single call a caller actually wants: decode every attribute in a
// packet body. Packet framing (header, Message-Authenticator verification,
// overall length) is the caller's responsibility, per spec.md section 1.
package radius

import (
	"time"

	"github.com/openradius/raddecode/pkg/metrics"
	"github.com/openradius/raddecode/pkg/radius/decode"
	"github.com/openradius/raddecode/pkg/radius/dictionary"
	"github.com/openradius/raddecode/pkg/radius/vp"
)

// DecodeAttributes walks body attribute-by-attribute via decode.DecodePair
// until the buffer is exhausted, appending every VP produced to cur. A
// malformed attribute value does not stop the walk — decode.DecodePair's own
// raw fallback guarantees forward progress. A malformed attribute header (too
// short for a (type, length) pair, a length under 2, or a length past the end
// of body) does: DecodeAttributes returns DecodePair's error, and the VPs
// decoded before that attribute remain in cur.
func DecodeAttributes(dict dictionary.Dictionary, cur *vp.Cursor, pctx *vp.Context, body []byte) error {
	return DecodeAttributesWithMetrics(dict, cur, pctx, body, nil)
}

// DecodeAttributesWithMetrics behaves like DecodeAttributes, additionally
// recording one RecordAttribute observation per VP that each top-level
// attribute produced, all with that attribute's DecodePair duration.
// Passing a nil dm is equivalent to DecodeAttributes.
func DecodeAttributesWithMetrics(dict dictionary.Dictionary, cur *vp.Cursor, pctx *vp.Context, body []byte, dm metrics.DecodeMetrics) error {
	off := 0
	for off < len(body) {
		before := cur.Len()
		start := time.Now()
		consumed, err := decode.DecodePair(dict, cur, pctx, body[off:])
		if err != nil {
			return err
		}
		if dm != nil {
			duration := time.Since(start)
			for _, p := range cur.Pairs()[before:] {
				dm.RecordAttribute(p.Descriptor.Name, duration, p.Descriptor.Flags.IsUnknown)
			}
		}
		off += consumed
	}
	return nil
}
