package dictionary

import "sync/atomic"

// Live wraps a Dictionary behind an atomic pointer so a long-running
// process (the "serve" HTTP server, the live-reloading file watcher) can
// swap in a freshly loaded dictionary without a lock and without disturbing
// a decode already in flight against the old one.
type Live struct {
	p atomic.Pointer[Dictionary]
}

// NewLive wraps d for atomic swapping.
func NewLive(d Dictionary) *Live {
	l := &Live{}
	l.Store(d)
	return l
}

// Store installs d as the current dictionary.
func (l *Live) Store(d Dictionary) {
	l.p.Store(&d)
}

func (l *Live) current() Dictionary {
	return *l.p.Load()
}

func (l *Live) Root() *Descriptor { return l.current().Root() }

func (l *Live) ChildByNum(parent *Descriptor, number uint32) *Descriptor {
	return l.current().ChildByNum(parent, number)
}

func (l *Live) ChildByType(parent *Descriptor, t SemanticType) *Descriptor {
	return l.current().ChildByType(parent, t)
}

func (l *Live) VendorByNum(pen uint32) *Vendor {
	return l.current().VendorByNum(pen)
}

func (l *Live) UnknownAfromFields(parent *Descriptor, pen uint32, number uint32) *Descriptor {
	return l.current().UnknownAfromFields(parent, pen, number)
}

func (l *Live) UnknownVendorAfromNum(pen uint32) *Vendor {
	return l.current().UnknownVendorAfromNum(pen)
}
