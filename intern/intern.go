// Package intern deduplicates strings so that equal text is stored once and
// can be compared by handle.
package intern

import "sync"

// Str is a handle to an interned string. Two handles obtained from the same
// Pool are equal if and only if their contents are equal.
type Str struct {
	p *string
}

// String returns the interned text. The zero Str yields "".
func (s Str) String() string {
	if s.p == nil {
		return ""
	}
	return *s.p
}

// IsZero reports whether s was never interned.
func (s Str) IsZero() bool {
	return s.p == nil
}

// Pool owns the interned strings of one compilation session. Entries are
// never released while the pool is reachable.
type Pool struct {
	mu      sync.Mutex
	entries map[string]*string
}

func NewPool() *Pool {
	return &Pool{entries: make(map[string]*string)}
}

// Intern returns the handle for s, creating it on first request.
func (p *Pool) Intern(s string) Str {
	p.mu.Lock()
	defer p.mu.Unlock()

	if e, ok := p.entries[s]; ok {
		return Str{e}
	}

	e := new(string)
	*e = s
	p.entries[s] = e
	return Str{e}
}

// InternBytes is Intern for a byte slice.
func (p *Pool) InternBytes(b []byte) Str {
	p.mu.Lock()
	defer p.mu.Unlock()

	// the conversion in the index expression does not allocate
	if e, ok := p.entries[string(b)]; ok {
		return Str{e}
	}

	e := new(string)
	*e = string(b)
	p.entries[*e] = e
	return Str{e}
}

// Lookup returns the handle for s without creating one.
func (p *Pool) Lookup(s string) (Str, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.entries[s]
	return Str{e}, ok
}

func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.entries)
}
