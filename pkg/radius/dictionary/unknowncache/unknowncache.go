// Package unknowncache persists fabricated unknown-attribute and
// unknown-vendor descriptors across process restarts, so a decoder that has
// already synthesized an Attr-<n> placeholder for an attribute absent from
// the dictionary doesn't silently rename it on the next restart before the
// dictionary catches up.
//
// Key Namespace:
//
//	Data Type          Prefix  Key Format                Value Type
//	=========================================================================
//	Unknown attribute  "a:"    a:<parentPath>:<pen>:<n>  record (JSON)
//	Unknown vendor     "v:"    v:<pen>                   record (JSON)
package unknowncache

import (
	"encoding/json"
	"fmt"
	"strconv"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/openradius/raddecode/internal/logger"
	"github.com/openradius/raddecode/pkg/metrics"
)

const (
	prefixAttribute = "a:"
	prefixVendor    = "v:"
)

// AttributeRecord is the persisted shape of a fabricated unknown-attribute
// descriptor, keyed by where it was seen: parent path, vendor PEN, and
// attribute number.
type AttributeRecord struct {
	ParentPath string `json:"parent_path"`
	PEN        uint32 `json:"pen"`
	Number     uint32 `json:"number"`
	Name       string `json:"name"`
}

// VendorRecord is the persisted shape of a fabricated unknown-vendor record.
type VendorRecord struct {
	PEN         uint32 `json:"pen"`
	Name        string `json:"name"`
	TypeWidth   int    `json:"type_width"`
	LengthWidth int    `json:"length_width"`
}

// Cache is a BadgerDB-backed store of previously fabricated unknown
// descriptors.
type Cache struct {
	db      *badger.DB
	metrics metrics.BadgerMetrics
}

// Open opens (creating if absent) a badger database at dir.
func Open(dir string) (*Cache, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("unknowncache: open %s: %w", dir, err)
	}
	return &Cache{db: db, metrics: metrics.NewBadgerMetrics()}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

func keyAttribute(parentPath string, pen, number uint32) []byte {
	return []byte(prefixAttribute + parentPath + ":" + strconv.FormatUint(uint64(pen), 10) + ":" + strconv.FormatUint(uint64(number), 10))
}

func keyVendor(pen uint32) []byte {
	return []byte(prefixVendor + strconv.FormatUint(uint64(pen), 10))
}

// PutAttribute persists a fabricated unknown-attribute record.
func (c *Cache) PutAttribute(rec AttributeRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("unknowncache: encode attribute record: %w", err)
	}
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(keyAttribute(rec.ParentPath, rec.PEN, rec.Number), data)
	})
}

// GetAttribute looks up a previously fabricated unknown-attribute record.
// Returns ok=false if none was cached.
func (c *Cache) GetAttribute(parentPath string, pen, number uint32) (rec AttributeRecord, ok bool, err error) {
	err = c.db.View(func(txn *badger.Txn) error {
		item, getErr := txn.Get(keyAttribute(parentPath, pen, number))
		if getErr == badger.ErrKeyNotFound {
			return nil
		}
		if getErr != nil {
			return getErr
		}
		ok = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return AttributeRecord{}, false, fmt.Errorf("unknowncache: get attribute: %w", err)
	}
	if ok {
		metrics.RecordCacheHit(c.metrics, "attribute")
	} else {
		metrics.RecordCacheMiss(c.metrics, "attribute")
	}
	return rec, ok, nil
}

// PutVendor persists a fabricated unknown-vendor record.
func (c *Cache) PutVendor(rec VendorRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("unknowncache: encode vendor record: %w", err)
	}
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(keyVendor(rec.PEN), data)
	})
}

// GetVendor looks up a previously fabricated unknown-vendor record.
func (c *Cache) GetVendor(pen uint32) (rec VendorRecord, ok bool, err error) {
	err = c.db.View(func(txn *badger.Txn) error {
		item, getErr := txn.Get(keyVendor(pen))
		if getErr == badger.ErrKeyNotFound {
			return nil
		}
		if getErr != nil {
			return getErr
		}
		ok = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return VendorRecord{}, false, fmt.Errorf("unknowncache: get vendor: %w", err)
	}
	if ok {
		metrics.RecordCacheHit(c.metrics, "vendor")
	} else {
		metrics.RecordCacheMiss(c.metrics, "vendor")
	}
	return rec, ok, nil
}

// RunGC runs one pass of badger's value-log garbage collection, reclaiming
// space from attribute/vendor records that have since been superseded by a
// dictionary reload. Intended to be called periodically (e.g. hourly); a
// nil error return of badger.ErrNoRewrite means there was nothing to
// reclaim, which callers should treat as a normal outcome, not a failure.
func (c *Cache) RunGC(discardRatio float64) error {
	err := c.db.RunValueLogGC(discardRatio)
	if err != nil && err != badger.ErrNoRewrite {
		logger.Warn("unknowncache: value log GC failed", logger.Err(err))
		return err
	}
	return nil
}
