package decode

import "github.com/openradius/raddecode/pkg/radius/rerr"

func depthExceeded() error {
	return rerr.New(rerr.KindSanity, "recursion depth exceeded")
}
