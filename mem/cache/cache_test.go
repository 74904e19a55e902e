package cache_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/copybench/mem"
	"github.com/sarchlab/copybench/mem/cache"
)

type storageBacking struct {
	storage *mem.Storage
}

func (b storageBacking) Read(addr, size uint64) []byte {
	data, err := b.storage.Read(addr, size)
	Expect(err).NotTo(HaveOccurred())

	return data
}

func (b storageBacking) Write(addr uint64, data []byte) {
	Expect(b.storage.Write(addr, data)).To(Succeed())
}

var _ = Describe("Cache", func() {
	var (
		storage *mem.Storage
		c       *cache.Cache
	)

	BeforeEach(func() {
		storage = mem.NewStorage(64 * mem.KB)
		// 1 KiB, 2-way, 32-byte lines: 16 sets.
		c = cache.MakeBuilder().
			WithByteSize(1 * mem.KB).
			WithWayAssociativity(2).
			WithLineSize(32).
			WithHitLatency(1).
			WithFillLatency(10).
			WithWriteBackLatency(20).
			WithBackingStore(storageBacking{storage}).
			Build()
	})

	It("should fill a line on a read miss", func() {
		Expect(storage.Write(0x100, []byte{1, 2, 3, 4})).To(Succeed())

		buf := make([]byte, 4)
		cycles := c.Read(0x100, buf)

		Expect(buf).To(Equal([]byte{1, 2, 3, 4}))
		Expect(cycles).To(Equal(uint64(10)))
		Expect(c.Stats().Misses).To(Equal(uint64(1)))

		valid, dirty := c.Probe(0x11F)
		Expect(valid).To(BeTrue())
		Expect(dirty).To(BeFalse())
	})

	It("should hit on a cached line", func() {
		buf := make([]byte, 4)
		c.Read(0x100, buf)

		cycles := c.Read(0x104, buf)

		Expect(cycles).To(Equal(uint64(1)))
		Expect(c.Stats().Hits).To(Equal(uint64(1)))
	})

	It("should start counting again after a reset", func() {
		buf := make([]byte, 4)
		c.Read(0x100, buf)
		before := c.Stats()

		c.ResetStats()
		c.Read(0x104, buf)

		Expect(before.Misses).To(Equal(uint64(1)))
		Expect(c.Stats().Misses).To(BeZero())
		Expect(c.Stats().Hits).To(Equal(uint64(1)))
		Expect(before.Add(c.Stats()).Reads).To(Equal(uint64(2)))
	})

	It("should split an access that crosses a line", func() {
		Expect(storage.Write(0x11E, []byte{9, 8, 7, 6})).To(Succeed())

		buf := make([]byte, 4)
		cycles := c.Read(0x11E, buf)

		Expect(buf).To(Equal([]byte{9, 8, 7, 6}))
		Expect(cycles).To(Equal(uint64(20)))
		Expect(c.NumValidLines()).To(Equal(2))
	})

	It("should keep writes in the cache until flushed", func() {
		c.Write(0x200, []byte{0xAA, 0xBB})

		backing, _ := storage.Read(0x200, 2)
		Expect(backing).To(Equal([]byte{0, 0}))

		_, dirty := c.Probe(0x200)
		Expect(dirty).To(BeTrue())

		cycles := c.FlushRange(0x200, 2)
		Expect(cycles).To(Equal(uint64(21)))

		backing, _ = storage.Read(0x200, 2)
		Expect(backing).To(Equal([]byte{0xAA, 0xBB}))

		valid, dirty := c.Probe(0x200)
		Expect(valid).To(BeTrue())
		Expect(dirty).To(BeFalse())
	})

	It("should discard dirty data on invalidate", func() {
		c.Write(0x200, []byte{0xAA})
		c.InvalidateRange(0x200, 1)

		valid, _ := c.Probe(0x200)
		Expect(valid).To(BeFalse())

		backing, _ := storage.Read(0x200, 1)
		Expect(backing).To(Equal([]byte{0}))
		Expect(c.Stats().Invalidations).To(Equal(uint64(1)))
	})

	It("should serve stale data after memory changes behind it", func() {
		buf := make([]byte, 1)
		c.Read(0x300, buf)

		Expect(storage.Write(0x300, []byte{0x55})).To(Succeed())

		c.Read(0x300, buf)
		Expect(buf).To(Equal([]byte{0}))

		c.InvalidateRange(0x300, 1)
		c.Read(0x300, buf)
		Expect(buf).To(Equal([]byte{0x55}))
	})

	It("should write back a dirty victim on eviction", func() {
		// 0x000, 0x200 and 0x400 all map to set 0 of a 2-way cache.
		c.Write(0x000, []byte{1})
		c.Write(0x200, []byte{2})
		c.Write(0x400, []byte{3})

		Expect(c.Stats().Evictions).To(Equal(uint64(1)))
		Expect(c.Stats().WriteBacks).To(Equal(uint64(1)))

		backing, _ := storage.Read(0x000, 1)
		Expect(backing).To(Equal([]byte{1}))
	})

	It("should only touch lines inside the range", func() {
		c.Write(0x100, []byte{1})
		c.Write(0x140, []byte{2})

		c.FlushRange(0x100, 32)

		_, dirty := c.Probe(0x140)
		Expect(dirty).To(BeTrue())
		Expect(c.Stats().WriteBacks).To(Equal(uint64(1)))
	})

	It("should panic without a backing store", func() {
		Expect(func() { cache.MakeBuilder().Build() }).To(Panic())
	})
})
