package datamover_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/copybench/mem/datamover"
	"github.com/sarchlab/copybench/platform"
)

// gatedBus holds every write until the gate is closed.
type gatedBus struct {
	*platform.Platform
	gate chan struct{}
}

func (b *gatedBus) BusWrite(addr uint64, data []byte) error {
	<-b.gate
	return b.Platform.BusWrite(addr, data)
}

var _ = Describe("Copy engine", func() {
	var (
		p      *platform.Platform
		engine *datamover.Comp
		src    platform.Region
		dst    platform.Region
		data   []byte
	)

	BeforeEach(func() {
		var err error

		p = platform.MakeBuilder().Build()
		engine = datamover.MakeBuilder().
			WithBus(p).
			WithBytesPerCycle(4).
			WithSetupLatency(10).
			Build()

		src, err = p.Allocate(platform.FastLocal, 8192, 32)
		Expect(err).NotTo(HaveOccurred())
		dst, err = p.Allocate(platform.ExternalCached, 8192, 32)
		Expect(err).NotTo(HaveOccurred())

		data = make([]byte, 8192)
		for i := range data {
			data[i] = byte(i * 7)
		}
		Expect(p.BusWrite(src.Base, data)).To(Succeed())
	})

	AfterEach(func() {
		engine.Wait()
	})

	It("should size the backlog for a transfer", func() {
		Expect(datamover.BacklogFor(100 * 1024)).To(Equal(26))
		Expect(datamover.BacklogFor(32)).To(Equal(1))
	})

	It("should move the data and call back", func() {
		h, err := engine.Install(datamover.Config{
			Backlog:      datamover.BacklogFor(8192),
			SrcAlignment: 32,
			DstAlignment: 32,
		})
		Expect(err).NotTo(HaveOccurred())

		done := make(chan datamover.Handle, 1)
		start := p.Now()

		err = engine.Submit(h, dst.Base, src.Base, 8192,
			func(h datamover.Handle, arg any) bool {
				done <- arg.(datamover.Handle)
				return true
			}, h)
		Expect(err).NotTo(HaveOccurred())

		Eventually(done).Should(Receive(Equal(h)))
		Expect(p.Now() - start).To(Equal(uint64(10 + 8192/4)))

		onBus, err := p.BusRead(dst.Base, 8192)
		Expect(err).NotTo(HaveOccurred())
		Expect(onBus).To(Equal(data))

		Expect(engine.Uninstall(h)).To(Succeed())
	})

	It("should reject a misaligned transfer", func() {
		h, _ := engine.Install(datamover.Config{
			Backlog:      4,
			SrcAlignment: 32,
			DstAlignment: 32,
		})

		err := engine.Submit(h, dst.Base+4, src.Base, 64,
			func(datamover.Handle, any) bool { return false }, nil)
		Expect(err).To(MatchError(datamover.ErrInvalidArgument))
	})

	It("should reject a transfer larger than the backlog", func() {
		h, _ := engine.Install(datamover.Config{Backlog: 1})

		err := engine.Submit(h, dst.Base, src.Base, 8192,
			func(datamover.Handle, any) bool { return false }, nil)
		Expect(err).To(MatchError(datamover.ErrBacklogFull))
	})

	It("should reject a zero backlog", func() {
		_, err := engine.Install(datamover.Config{Backlog: 0})
		Expect(err).To(MatchError(datamover.ErrInvalidArgument))
	})

	It("should reject an unknown handle", func() {
		err := engine.Submit(42, dst.Base, src.Base, 64,
			func(datamover.Handle, any) bool { return false }, nil)
		Expect(err).To(MatchError(datamover.ErrNotInstalled))

		Expect(engine.Uninstall(42)).To(MatchError(datamover.ErrNotInstalled))
	})

	It("should not call back after uninstall", func() {
		h, _ := engine.Install(datamover.Config{Backlog: 4})
		called := make(chan struct{}, 1)

		Expect(engine.Uninstall(h)).To(Succeed())

		err := engine.Submit(h, dst.Base, src.Base, 64,
			func(datamover.Handle, any) bool {
				called <- struct{}{}
				return false
			}, nil)
		Expect(err).To(MatchError(datamover.ErrNotInstalled))
		Consistently(called).ShouldNot(Receive())
	})

	It("should finish the in-flight write before uninstall returns", func() {
		bus := &gatedBus{Platform: p, gate: make(chan struct{})}
		engine = datamover.MakeBuilder().WithBus(bus).Build()

		h, err := engine.Install(datamover.Config{
			Backlog:      datamover.BacklogFor(8192),
			SrcAlignment: 32,
			DstAlignment: 32,
		})
		Expect(err).NotTo(HaveOccurred())

		called := make(chan struct{}, 1)
		err = engine.Submit(h, dst.Base, src.Base, 8192,
			func(datamover.Handle, any) bool {
				called <- struct{}{}
				return true
			}, nil)
		Expect(err).NotTo(HaveOccurred())

		uninstalled := make(chan error, 1)
		go func() {
			uninstalled <- engine.Uninstall(h)
		}()

		Consistently(uninstalled, 50*time.Millisecond).ShouldNot(Receive())

		close(bus.gate)
		Eventually(uninstalled).Should(Receive(BeNil()))

		onBus, err := p.BusRead(dst.Base, 8192)
		Expect(err).NotTo(HaveOccurred())
		Expect(onBus).To(Equal(data))
		Expect(called).NotTo(Receive())
	})

	It("should limit the number of channels", func() {
		engine = datamover.MakeBuilder().WithBus(p).WithMaxChannels(1).Build()

		_, err := engine.Install(datamover.Config{Backlog: 1})
		Expect(err).NotTo(HaveOccurred())

		_, err = engine.Install(datamover.Config{Backlog: 1})
		Expect(err).To(MatchError(datamover.ErrInvalidArgument))
	})
})
