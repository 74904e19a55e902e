// Package id provides ID generators for runs and outcomes.
package id

import (
	"strconv"
	"sync/atomic"

	"github.com/rs/xid"
)

type IDGenerator interface {
	Generate() string
}

// NewIDGenerator returns a generator of sequential decimal IDs. Sequential IDs
// keep test output reproducible.
func NewIDGenerator() IDGenerator {
	return &sequentialIDGenerator{}
}

// NewUniqueIDGenerator returns a generator of globally unique IDs, suitable for
// naming runs that are recorded to disk.
func NewUniqueIDGenerator() IDGenerator {
	return uniqueIDGenerator{}
}

type sequentialIDGenerator struct {
	nextID uint64
}

func (g *sequentialIDGenerator) Generate() string {
	idNumber := atomic.AddUint64(&g.nextID, 1)
	id := strconv.FormatUint(idNumber, 10)

	return id
}

type uniqueIDGenerator struct{}

func (g uniqueIDGenerator) Generate() string {
	return xid.New().String()
}
