package ids

import (
	"errors"
	"fmt"
	"sync"
)

// ErrDuplicateID is returned when an id is already taken within its kind.
var ErrDuplicateID = errors.New("ids: id already in use")

// Kind identifies an entity family with its own id sequence.
type Kind int

const (
	Node Kind = iota
	Segment
	Force
	Torque
	Support
	Hinge
)

// Kinds lists every entity kind in reassignment order.
var Kinds = []Kind{Node, Segment, Force, Torque, Support, Hinge}

func (k Kind) String() string {
	switch k {
	case Node:
		return "node"
	case Segment:
		return "segment"
	case Force:
		return "force"
	case Torque:
		return "torque"
	case Support:
		return "support"
	case Hinge:
		return "hinge"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// counter is the id state of a single kind.
type counter struct {
	next int
	used map[int]struct{}
}

func newCounter() *counter {
	return &counter{next: 1, used: make(map[int]struct{})}
}

// Registry allocates unique integer ids per entity kind.
// Each structure owns one Registry; there is no process-wide state.
type Registry struct {
	mu    sync.Mutex
	kinds map[Kind]*counter
}

// New returns an empty Registry whose counters all start at 1.
func New() *Registry {
	return &Registry{kinds: make(map[Kind]*counter)}
}

func (r *Registry) counter(k Kind) *counter {
	c, ok := r.kinds[k]
	if !ok {
		c = newCounter()
		r.kinds[k] = c
	}
	return c
}

// Allocate consumes the next free id of kind k.
func (r *Registry) Allocate(k Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.counter(k)
	for {
		if _, taken := c.used[c.next]; !taken {
			break
		}
		c.next++
	}
	id := c.next
	c.used[id] = struct{}{}
	c.next++
	return id
}

// Claim consumes an explicit id. The counter is left untouched; Allocate
// skips claimed values when it reaches them.
func (r *Registry) Claim(k Kind, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.counter(k)
	if _, taken := c.used[id]; taken {
		return fmt.Errorf("%w: %s %d", ErrDuplicateID, k, id)
	}
	c.used[id] = struct{}{}
	return nil
}

// Reassign moves an entity from oldID to newID. It is a no-op when the ids
// are equal.
func (r *Registry) Reassign(k Kind, oldID, newID int) error {
	if oldID == newID {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.counter(k)
	if _, taken := c.used[newID]; taken {
		return fmt.Errorf("%w: %s %d", ErrDuplicateID, k, newID)
	}
	delete(c.used, oldID)
	c.used[newID] = struct{}{}
	return nil
}

// Release frees id so it may be claimed or allocated again.
func (r *Registry) Release(k Kind, id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.counter(k).used, id)
}

// InUse reports whether id is currently taken within kind k.
func (r *Registry) InUse(k Kind, id int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, taken := r.counter(k).used[id]
	return taken
}

// Count returns the number of ids held by kind k.
func (r *Registry) Count(k Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.counter(k).used)
}

// Reset clears the counter and used set of the given kinds, or of every
// kind when none are given.
func (r *Registry) Reset(kinds ...Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(kinds) == 0 {
		r.kinds = make(map[Kind]*counter)
		return
	}
	for _, k := range kinds {
		r.kinds[k] = newCounter()
	}
}
