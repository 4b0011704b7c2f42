package types

import (
	"encoding/binary"
	"sort"
	"sync"

	"github.com/cespare/xxhash/v2"
)

type intKey struct {
	width  int
	signed bool
}

type wrapKey struct {
	kind Kind
	base *Type
}

type arrayKey struct {
	base   *Type
	length int
}

type customKey struct {
	kind Kind
	tag  string
}

// Universe interns type descriptors. Each family is memoized on its
// structural key; member lists are bucketed by an xxhash of their member
// identities. A Universe belongs to one compilation session and may be
// shared between goroutines.
type Universe struct {
	mu     sync.Mutex
	nextID uint64

	ints     map[intKey]*Type
	floats   map[Precision]*Type
	wrappers map[wrapKey]*Type
	arrays   map[arrayKey]*Type
	lists    map[uint64][]*Type
	customs  map[customKey]*Type
	null     *Type
}

func NewUniverse() *Universe {
	return &Universe{
		ints:     make(map[intKey]*Type),
		floats:   make(map[Precision]*Type),
		wrappers: make(map[wrapKey]*Type),
		arrays:   make(map[arrayKey]*Type),
		lists:    make(map[uint64][]*Type),
		customs:  make(map[customKey]*Type),
	}
}

// create must be called with u.mu held.
func (u *Universe) create(t *Type) *Type {
	u.nextID++
	t.id = u.nextID
	t.name = spell(t)
	return t
}

func (u *Universe) Int(width int, signed bool) *Type {
	u.mu.Lock()
	defer u.mu.Unlock()

	key := intKey{width, signed}
	if t, ok := u.ints[key]; ok {
		return t
	}
	t := u.create(&Type{kind: Integer, width: width, signed: signed})
	u.ints[key] = t
	return t
}

// Bool is the 1-bit unsigned integer.
func (u *Universe) Bool() *Type {
	return u.Int(1, false)
}

func (u *Universe) Float(p Precision) *Type {
	u.mu.Lock()
	defer u.mu.Unlock()

	if t, ok := u.floats[p]; ok {
		return t
	}
	t := u.create(&Type{kind: Float, prec: p})
	u.floats[p] = t
	return t
}

func (u *Universe) Null() *Type {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.null == nil {
		u.null = u.create(&Type{kind: Null})
	}
	return u.null
}

func (u *Universe) wrap(kind Kind, base *Type) *Type {
	if base == nil {
		return nil
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	key := wrapKey{kind, base}
	if t, ok := u.wrappers[key]; ok {
		return t
	}
	t := u.create(&Type{kind: kind, base: base})
	u.wrappers[key] = t
	return t
}

func (u *Universe) Pointer(base *Type) *Type {
	return u.wrap(Pointer, base)
}

func (u *Universe) Reference(base *Type) *Type {
	return u.wrap(Reference, base)
}

func (u *Universe) Borrow(base *Type) *Type {
	return u.wrap(Borrow, base)
}

// Array returns the array of base with the given length, or Unsized.
func (u *Universe) Array(base *Type, length int) *Type {
	if base == nil {
		return nil
	}
	if length < 0 {
		length = Unsized
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	key := arrayKey{base, length}
	if t, ok := u.arrays[key]; ok {
		return t
	}
	t := u.create(&Type{kind: Array, base: base, length: length})
	u.arrays[key] = t
	return t
}

func hashList(kind Kind, head *Type, members []*Type) uint64 {
	var buf [8]byte
	d := xxhash.New()
	d.Write([]byte{byte(kind)})
	if head != nil {
		binary.LittleEndian.PutUint64(buf[:], head.id)
		d.Write(buf[:])
	}
	for _, m := range members {
		binary.LittleEndian.PutUint64(buf[:], m.id)
		d.Write(buf[:])
	}
	return d.Sum64()
}

func sameList(t *Type, kind Kind, head *Type, members []*Type) bool {
	if t.kind != kind || t.base != head || len(t.members) != len(members) {
		return false
	}
	for i := range members {
		if t.members[i] != members[i] {
			return false
		}
	}
	return true
}

func (u *Universe) list(kind Kind, head *Type, members []*Type) *Type {
	for _, m := range members {
		if m == nil {
			return nil
		}
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	h := hashList(kind, head, members)
	for _, t := range u.lists[h] {
		if sameList(t, kind, head, members) {
			return t
		}
	}

	owned := make([]*Type, len(members))
	copy(owned, members)
	t := u.create(&Type{kind: kind, base: head, members: owned})
	u.lists[h] = append(u.lists[h], t)
	return t
}

// Func returns the function type. A nil ret means the function returns null.
func (u *Universe) Func(ret *Type, params ...*Type) *Type {
	if ret == nil {
		ret = u.Null()
	}
	return u.list(Function, ret, params)
}

func (u *Universe) Tuple(members ...*Type) *Type {
	return u.list(Tuple, nil, members)
}

// Variant returns the variant over the set of members; order and
// duplicates do not matter.
func (u *Universe) Variant(members ...*Type) *Type {
	set := make([]*Type, 0, len(members))
	seen := make(map[*Type]bool, len(members))
	for _, m := range members {
		if m == nil {
			return nil
		}
		if !seen[m] {
			seen[m] = true
			set = append(set, m)
		}
	}
	sort.Slice(set, func(i, j int) bool { return set[i].id < set[j].id })
	return u.list(Variant, nil, set)
}

// Custom returns the struct, union or enum placeholder named tag.
func (u *Universe) Custom(kind Kind, tag string) *Type {
	switch kind {
	case Struct, Union, Enum:
	default:
		return nil
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	key := customKey{kind, tag}
	if t, ok := u.customs[key]; ok {
		return t
	}
	t := u.create(&Type{kind: kind, tag: tag})
	u.customs[key] = t
	return t
}
