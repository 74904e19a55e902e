package strategy

import (
	"fmt"
	"strings"
)

// Kind identifies a transfer strategy.
type Kind int

// The transfer strategies.
const (
	ScalarLoop8 Kind = iota
	ScalarLoop16
	ScalarLoop32
	ScalarLoop64
	BulkLibraryCopy
	OffloadEngineCopy
	WideVectorLoop16
	WideVectorLoop32
	AcceleratorLibraryCopy
	numKinds
)

var kindNames = [numKinds]string{
	ScalarLoop8:            "scalar8",
	ScalarLoop16:           "scalar16",
	ScalarLoop32:           "scalar32",
	ScalarLoop64:           "scalar64",
	BulkLibraryCopy:        "memcpy",
	OffloadEngineCopy:      "offload",
	WideVectorLoop16:       "vector16",
	WideVectorLoop32:       "vector32",
	AcceleratorLibraryCopy: "accelerated",
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return fmt.Sprintf("Kind(%d)", int(k))
	}

	return kindNames[k]
}

// ParseKind returns the kind with the given short name.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}

	return 0, fmt.Errorf("unknown strategy %q", name)
}

// ParseKinds parses a comma separated list of short names.
func ParseKinds(list string) ([]Kind, error) {
	var kinds []Kind

	for _, name := range strings.Split(list, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}

		k, err := ParseKind(name)
		if err != nil {
			return nil, err
		}

		kinds = append(kinds, k)
	}

	return kinds, nil
}

// Standard returns every strategy in the order a benchmark runs them.
func Standard() []Kind {
	kinds := make([]Kind, 0, numKinds)
	for k := Kind(0); k < numKinds; k++ {
		kinds = append(kinds, k)
	}

	return kinds
}

// State is the phase a transfer is in.
type State int

// The phases of a transfer.
const (
	Idle State = iota
	CoherencyPrep
	Transferring
	CoherencyPostFlush
	Verifying
	Success
	Mismatch
	Failure
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case CoherencyPrep:
		return "CoherencyPrep"
	case Transferring:
		return "Transferring"
	case CoherencyPostFlush:
		return "CoherencyPostFlush"
	case Verifying:
		return "Verifying"
	case Success:
		return "Success"
	case Mismatch:
		return "Mismatch"
	case Failure:
		return "Failure"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// IsTerminal reports whether s ends a transfer.
func (s State) IsTerminal() bool {
	return s == Success || s == Mismatch || s == Failure
}

// A StateObserver is told about every phase change of a transfer.
type StateObserver func(s State)

func (o StateObserver) notify(s State) {
	if o != nil {
		o(s)
	}
}
