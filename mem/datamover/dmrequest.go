package datamover

// A transaction is one submitted transfer.
type transaction struct {
	handle Handle
	dst    uint64
	src    uint64
	size   uint64
	cb     Callback
	arg    any

	// done is closed once the transfer has stopped touching memory.
	done chan struct{}
}

func (t *transaction) numDescriptors() int {
	return int((t.size + DescriptorSize - 1) / DescriptorSize)
}

// channel is the state of an installed handle.
type channel struct {
	cfg      Config
	inFlight *transaction
}
