package constraint

// Store holds a ConstraintSystem's live constraint set: an active
// worklist the simplifier drains, and an inactive list of constraints
// that are stuck (waiting on a type variable to become concrete) until
// something binds a variable they mention. Has no direct teacher analog
// — AILANG's HM inference never deferred a constraint — so this is
// grounded on spec.md §9's description of the journal idiom and on the
// append-then-replay shape of the teacher's DefaultingConfig.Traces
// (defaulting.go), generalized from a flat trace log to a two-list
// active/inactive scheduler with an undo journal for scope rollback.
type Store struct {
	active   []*Constraint
	inactive []*Constraint
	byID     map[int]*Constraint
	nextID   int

	log []storeOp
}

type storeOpKind int

const (
	opPushActive storeOpKind = iota
	opPopActive
	opDeactivate
	opReactivate
	opDisable
)

type storeOp struct {
	kind storeOpKind
	c    *Constraint
	was  bool // prior Disabled value, for opDisable undo
}

// NewStore creates an empty constraint store.
func NewStore() *Store {
	return &Store{byID: make(map[int]*Constraint)}
}

// Add appends a freshly generated constraint to the active worklist and
// assigns it a stable id.
func (s *Store) Add(c *Constraint) *Constraint {
	s.nextID++
	c.ID = s.nextID
	s.byID[c.ID] = c
	s.active = append(s.active, c)
	s.log = append(s.log, storeOp{kind: opPushActive, c: c})
	return c
}

// PopActive removes and returns the next constraint the simplifier should
// examine, or nil if the active worklist is empty.
func (s *Store) PopActive() *Constraint {
	if len(s.active) == 0 {
		return nil
	}
	c := s.active[len(s.active)-1]
	s.active = s.active[:len(s.active)-1]
	s.log = append(s.log, storeOp{kind: opPopActive, c: c})
	return c
}

// Deactivate moves a constraint from active consideration into the
// inactive (stuck) list.
func (s *Store) Deactivate(c *Constraint) {
	s.inactive = append(s.inactive, c)
	s.log = append(s.log, storeOp{kind: opDeactivate, c: c})
}

// ReactivateMentioning moves every inactive constraint for which the
// mentions predicate returns true back onto the active list.
// The caller (simplifier) passes a predicate so it doesn't need to know
// the Graph's representation.
func (s *Store) ReactivateMentioning(mentions func(*Constraint) bool) {
	kept := s.inactive[:0]
	for _, c := range s.inactive {
		if mentions(c) {
			s.active = append(s.active, c)
			s.log = append(s.log, storeOp{kind: opReactivate, c: c})
		} else {
			kept = append(kept, c)
		}
	}
	s.inactive = kept
}

// Disable marks a constraint as not to be pursued (used by shrinking and
// by disjunction-branch exclusion).
func (s *Store) Disable(c *Constraint) {
	s.log = append(s.log, storeOp{kind: opDisable, c: c, was: c.Disabled})
	c.Disabled = true
}

// HasActive reports whether there is more work for the simplifier.
func (s *Store) HasActive() bool { return len(s.active) > 0 }

// Inactive returns the current stuck-constraint list (read-only view).
func (s *Store) Inactive() []*Constraint { return s.inactive }

// Active returns the current active worklist (read-only view), without
// popping anything.
func (s *Store) Active() []*Constraint { return s.active }

// Mark returns a watermark for a later Rollback.
func (s *Store) Mark() int { return len(s.log) }

// Rollback replays the operation log in reverse back to mark, restoring
// the active/inactive lists and Disabled flags to their prior state. This
// is the append-only undo journal spec.md §9 calls for.
func (s *Store) Rollback(mark int) {
	for i := len(s.log) - 1; i >= mark; i-- {
		op := s.log[i]
		switch op.kind {
		case opPushActive:
			s.removeActive(op.c)
			delete(s.byID, op.c.ID)
		case opPopActive:
			s.active = append(s.active, op.c)
		case opDeactivate:
			s.removeInactive(op.c)
		case opReactivate:
			s.removeActive(op.c)
			s.inactive = append(s.inactive, op.c)
		case opDisable:
			op.c.Disabled = op.was
		}
	}
	s.log = s.log[:mark]
}

func (s *Store) removeActive(c *Constraint) {
	for i, a := range s.active {
		if a == c {
			s.active = append(s.active[:i], s.active[i+1:]...)
			return
		}
	}
}

func (s *Store) removeInactive(c *Constraint) {
	for i, a := range s.inactive {
		if a == c {
			s.inactive = append(s.inactive[:i], s.inactive[i+1:]...)
			return
		}
	}
}
