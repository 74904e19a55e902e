// Package tagging tracks which lines of memory a cache currently holds.
package tagging

// TagArray records which memory line each cache block holds.
type TagArray interface {
	// Lookup finds the valid block holding lineAddr.
	Lookup(lineAddr uint64) (Block, bool)

	// Update stores block back into its set and way.
	Update(block Block)

	// Visit marks block as the most recently used of its set.
	Visit(block Block)

	GetSet(lineAddr uint64) (set *Set, setID int)
	NumValid() int
}

// A Block is the state of one way of one set.
type Block struct {
	Tag          uint64
	WayID        int
	SetID        int
	CacheAddress uint64
	IsValid      bool
	IsDirty      bool
}

// A Set is the group of blocks a line address can be placed in. LRUQueue
// lists way IDs from least to most recently used.
type Set struct {
	Blocks   []Block
	LRUQueue []int
}

type setAssociativeTags struct {
	numWays   int
	blockSize uint64
	sets      []Set
}

// NewTagArray creates a tag array with all blocks invalid.
func NewTagArray(numSets, numWays, blockSize int) TagArray {
	return newSetAssociativeTags(numSets, numWays, blockSize)
}

func newSetAssociativeTags(
	numSets, numWays, blockSize int,
) *setAssociativeTags {
	t := &setAssociativeTags{
		numWays:   numWays,
		blockSize: uint64(blockSize),
		sets:      make([]Set, numSets),
	}

	setBytes := uint64(numWays) * t.blockSize

	for s := range t.sets {
		set := &t.sets[s]
		set.Blocks = make([]Block, numWays)
		set.LRUQueue = make([]int, numWays)

		for w := range set.Blocks {
			set.Blocks[w] = Block{
				SetID:        s,
				WayID:        w,
				CacheAddress: uint64(s)*setBytes + uint64(w)*t.blockSize,
			}
			set.LRUQueue[w] = w
		}
	}

	return t
}

func (t *setAssociativeTags) capacity() uint64 {
	return uint64(len(t.sets)) * uint64(t.numWays) * t.blockSize
}

func (t *setAssociativeTags) GetSet(lineAddr uint64) (*Set, int) {
	setID := int(lineAddr / t.blockSize % uint64(len(t.sets)))
	return &t.sets[setID], setID
}

func (t *setAssociativeTags) Lookup(lineAddr uint64) (Block, bool) {
	set, _ := t.GetSet(lineAddr)

	for _, b := range set.Blocks {
		if b.IsValid && b.Tag == lineAddr {
			return b, true
		}
	}

	return Block{}, false
}

func (t *setAssociativeTags) Update(block Block) {
	t.sets[block.SetID].Blocks[block.WayID] = block
}

func (t *setAssociativeTags) Visit(block Block) {
	queue := t.sets[block.SetID].LRUQueue

	pos := 0
	for i, way := range queue {
		if way == block.WayID {
			pos = i
			break
		}
	}

	copy(queue[pos:], queue[pos+1:])
	queue[len(queue)-1] = block.WayID
}

func (t *setAssociativeTags) NumValid() int {
	n := 0

	for _, set := range t.sets {
		for _, b := range set.Blocks {
			if b.IsValid {
				n++
			}
		}
	}

	return n
}
