package core

import (
	"bytes"
	"errors"
	"log/slog"
	"strconv"
	"sync"
)

// Variable is a named single-byte cell.
type Variable struct {
	Identifier []byte
	Value      int8
}

// Name returns the identifier as a string.
func (v Variable) Name() string {
	return string(v.Identifier)
}

func (v Variable) String() string {
	return strconv.Quote(v.Name()) + "=" + strconv.Itoa(int(v.Value))
}

// LogValue implements slog.LogValuer.
func (v Variable) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("Identifier", v.Name()),
		slog.Int("Value", int(v.Value)),
	)
}

const nilSlot = -1

type slot struct {
	v          Variable
	prev, next int
}

// VariableStore keeps variables in insertion order. Slots live in an arena
// and are linked by index, so unlinking a variable only touches its two
// neighbors. Identifiers are unique at all times.
//
// A store is safe for concurrent use. Compound operations such as Apply and
// Take run in a single critical section.
type VariableStore struct {
	lock sync.Mutex

	slots []slot
	free  []int
	index map[string]int

	head, tail int
}

// NewVariableStore creates an empty store.
func NewVariableStore() *VariableStore {
	return &VariableStore{
		index: make(map[string]int),
		head:  nilSlot,
		tail:  nilSlot,
	}
}

// Len returns the number of variables in the store.
func (s *VariableStore) Len() int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return len(s.index)
}

// Insert appends a new variable. It fails with ErrDuplicateIdentifier if the
// identifier is taken, leaving the store untouched.
func (s *VariableStore) Insert(id []byte, value int8) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, found := s.index[string(id)]; found {
		return ErrDuplicateIdentifier
	}

	v := Variable{
		Identifier: bytes.Clone(id),
		Value:      value,
	}
	if v.Identifier == nil {
		v.Identifier = []byte{}
	}

	i := s.alloc()
	s.slots[i] = slot{v: v, prev: s.tail, next: nilSlot}

	if s.tail == nilSlot {
		s.head = i
	} else {
		s.slots[s.tail].next = i
	}

	s.tail = i
	s.index[string(id)] = i

	return nil
}

// Lookup returns the value of the variable.
func (s *VariableStore) Lookup(id []byte) (int8, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	i, found := s.index[string(id)]
	if !found {
		return 0, false
	}

	return s.slots[i].v.Value, true
}

// Update replaces the value of the variable with fn(value). The value is
// kept if fn fails.
func (s *VariableStore) Update(id []byte, fn func(int8) (int8, error)) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	i, found := s.index[string(id)]
	if !found {
		return ErrUnknownIdentifier
	}

	v, err := fn(s.slots[i].v.Value)
	if err != nil {
		return err
	}

	s.slots[i].v.Value = v

	return nil
}

// Apply sets left to fn(left, right) and then removes right. Nothing
// changes if either variable is missing or fn fails, except that a
// division by zero still consumes right. A variable cannot be its own right
// operand, since consuming it would remove the left operand.
func (s *VariableStore) Apply(
	left, right []byte,
	fn func(l, r int8) (int8, error),
) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	li, found := s.index[string(left)]
	if !found {
		return ErrUnknownIdentifier
	}

	ri, found := s.index[string(right)]
	if !found || ri == li {
		return ErrUnknownIdentifier
	}

	v, err := fn(s.slots[li].v.Value, s.slots[ri].v.Value)
	if err != nil {
		if errors.Is(err, ErrDivisionByZero) {
			s.unlink(ri)
		}

		return err
	}

	s.slots[li].v.Value = v
	s.unlink(ri)

	return nil
}

// Take removes the variable and returns its value.
func (s *VariableStore) Take(id []byte) (int8, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	i, found := s.index[string(id)]
	if !found {
		return 0, ErrUnknownIdentifier
	}

	value := s.slots[i].v.Value
	s.unlink(i)

	return value, nil
}

// Remove deletes the variable. It reports whether the variable existed.
func (s *VariableStore) Remove(id []byte) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	i, found := s.index[string(id)]
	if !found {
		return false
	}

	s.unlink(i)

	return true
}

// Forward returns the variables from the oldest to the newest.
func (s *VariableStore) Forward() []Variable {
	s.lock.Lock()
	defer s.lock.Unlock()

	vars := make([]Variable, 0, len(s.index))
	for i := s.head; i != nilSlot; i = s.slots[i].next {
		vars = append(vars, s.slots[i].v)
	}

	return vars
}

// Backward returns the variables from the newest to the oldest.
func (s *VariableStore) Backward() []Variable {
	s.lock.Lock()
	defer s.lock.Unlock()

	vars := make([]Variable, 0, len(s.index))
	for i := s.tail; i != nilSlot; i = s.slots[i].prev {
		vars = append(vars, s.slots[i].v)
	}

	return vars
}

func (s *VariableStore) alloc() int {
	if n := len(s.free); n > 0 {
		i := s.free[n-1]
		s.free = s.free[:n-1]

		return i
	}

	s.slots = append(s.slots, slot{})

	return len(s.slots) - 1
}

func (s *VariableStore) unlink(i int) {
	sl := s.slots[i]

	if sl.prev == nilSlot {
		s.head = sl.next
	} else {
		s.slots[sl.prev].next = sl.next
	}

	if sl.next == nilSlot {
		s.tail = sl.prev
	} else {
		s.slots[sl.next].prev = sl.prev
	}

	delete(s.index, string(sl.v.Identifier))
	s.slots[i] = slot{prev: nilSlot, next: nilSlot}
	s.free = append(s.free, i)
}
