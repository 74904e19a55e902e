package mem

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned when an access reaches beyond the capacity of a
// storage.
var ErrOutOfRange = errors.New("accessing address beyond the storage capacity")

// A Storage keeps the bytes of one simulated memory.
//
// The storage is managed in units, similar to pages. Units that are never
// touched by Read, Write or Fill do not allocate any memory and read as zero.
type Storage struct {
	unitSize uint64
	capacity uint64
	data     map[uint64][]byte
}

// NewStorage creates a storage object with the specified capacity.
func NewStorage(capacity uint64) *Storage {
	return NewStorageWithUnitSize(capacity, 4*KB)
}

// NewStorageWithUnitSize creates a storage that allocates its memory in units
// of unitSize bytes.
func NewStorageWithUnitSize(capacity, unitSize uint64) *Storage {
	if unitSize == 0 {
		panic("storage unit size cannot be 0")
	}

	return &Storage{
		unitSize: unitSize,
		capacity: capacity,
		data:     make(map[uint64][]byte),
	}
}

// Capacity returns the number of bytes the storage can hold.
func (s *Storage) Capacity() uint64 {
	return s.capacity
}

func (s *Storage) checkRange(address, length uint64) error {
	if address+length < address || address+length > s.capacity {
		return fmt.Errorf("%w: [0x%x, 0x%x) capacity 0x%x",
			ErrOutOfRange, address, address+length, s.capacity)
	}

	return nil
}

func (s *Storage) unit(address uint64) []byte {
	baseAddr, _ := s.parseAddress(address)

	unit, ok := s.data[baseAddr]
	if !ok {
		unit = make([]byte, s.unitSize)
		s.data[baseAddr] = unit
	}

	return unit
}

func (s *Storage) parseAddress(addr uint64) (baseAddr, inUnitAddr uint64) {
	inUnitAddr = addr % s.unitSize
	baseAddr = addr - inUnitAddr

	return
}

// chunks calls f for every unit-bounded piece of [address, address+length).
func (s *Storage) chunks(
	address, length uint64,
	f func(unit []byte, inUnitAddr, dataOffset, n uint64),
) {
	currAddr := address
	dataOffset := uint64(0)

	for dataOffset < length {
		baseAddr, inUnitAddr := s.parseAddress(currAddr)
		n := min(length-dataOffset, baseAddr+s.unitSize-currAddr)

		f(s.unit(currAddr), inUnitAddr, dataOffset, n)

		dataOffset += n
		currAddr += n
	}
}

// Read returns a copy of length bytes starting at address.
func (s *Storage) Read(address, length uint64) ([]byte, error) {
	if err := s.checkRange(address, length); err != nil {
		return nil, err
	}

	res := make([]byte, length)
	s.chunks(address, length, func(unit []byte, in, off, n uint64) {
		copy(res[off:off+n], unit[in:in+n])
	})

	return res, nil
}

// Write copies data into the storage starting at address.
func (s *Storage) Write(address uint64, data []byte) error {
	length := uint64(len(data))
	if err := s.checkRange(address, length); err != nil {
		return err
	}

	s.chunks(address, length, func(unit []byte, in, off, n uint64) {
		copy(unit[in:in+n], data[off:off+n])
	})

	return nil
}

// Fill sets length bytes starting at address to value.
func (s *Storage) Fill(address, length uint64, value byte) error {
	if err := s.checkRange(address, length); err != nil {
		return err
	}

	s.chunks(address, length, func(unit []byte, in, _, n uint64) {
		for i := in; i < in+n; i++ {
			unit[i] = value
		}
	})

	return nil
}
