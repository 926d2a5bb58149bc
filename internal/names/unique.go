package names

import (
	"fmt"
	"sync/atomic"
)

// Unique is a globally distinct identity attached to a local binder. Two
// Uniques are the same binder iff their IDs match; Base is carried only for
// readable output and never participates in equality.
type Unique[N ~string] struct {
	ID   uint64
	Base N
}

// Same reports identity equality. Shadowed binders with equal surface names
// have different IDs.
func (u Unique[N]) Same(other Unique[N]) bool {
	return u.ID == other.ID
}

func (u Unique[N]) String() string {
	return fmt.Sprintf("%s#%d", string(u.Base), u.ID)
}

// Supply hands out strictly increasing binder IDs for one compiler run.
// Safe for concurrent use: modules renamed in parallel share one Supply.
type Supply struct {
	counter atomic.Uint64
}

func NewSupply() *Supply {
	return &Supply{}
}

// Fresh mints a Unique for base. IDs start at 1; the zero Unique is reserved
// as "no binder".
func Fresh[N ~string](s *Supply, base N) Unique[N] {
	return Unique[N]{ID: s.counter.Add(1), Base: base}
}
