package tagging

// A VictimFinder picks the block a new line replaces.
type VictimFinder interface {
	FindVictim(tags TagArray, lineAddr uint64) Block
}

// LRUVictimFinder takes an invalid block if the set has one and the least
// recently used block otherwise.
type LRUVictimFinder struct{}

// NewLRUVictimFinder creates an LRUVictimFinder.
func NewLRUVictimFinder() *LRUVictimFinder {
	return &LRUVictimFinder{}
}

// FindVictim returns the block to replace in the set of lineAddr.
func (LRUVictimFinder) FindVictim(tags TagArray, lineAddr uint64) Block {
	set, _ := tags.GetSet(lineAddr)

	for _, way := range set.LRUQueue {
		if !set.Blocks[way].IsValid {
			return set.Blocks[way]
		}
	}

	return set.Blocks[set.LRUQueue[0]]
}
