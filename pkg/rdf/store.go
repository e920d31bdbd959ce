package rdf

// Store is an in-memory triple multiset with a subject index.
//
// Triples are kept in insertion order, which is the order every query
// returns them in. The store has no ordering semantics of its own; callers
// that need a presentation order impose it themselves.
//
// A Store is not safe for concurrent mutation. It is built once and then
// only read, which is safe from multiple goroutines.
type Store struct {
	triples   []Triple
	bySubject map[string][]int // subject key -> indexes into triples
	subjects  []Term           // distinct subjects, first-appearance order
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{bySubject: make(map[string][]int)}
}

// Add appends a triple. Invalid triples (see [Triple.IsValid]) are skipped
// and reported as false.
func (s *Store) Add(t Triple) bool {
	if !t.IsValid() {
		return false
	}
	key := t.Subject.Key()
	if _, seen := s.bySubject[key]; !seen {
		s.subjects = append(s.subjects, t.Subject)
	}
	s.bySubject[key] = append(s.bySubject[key], len(s.triples))
	s.triples = append(s.triples, t)
	return true
}

// AddAll appends triples in order and returns how many were stored.
func (s *Store) AddAll(ts []Triple) int {
	n := 0
	for _, t := range ts {
		if s.Add(t) {
			n++
		}
	}
	return n
}

// Len returns the number of stored triples.
func (s *Store) Len() int { return len(s.triples) }

// Triples returns a copy of all triples in store order.
func (s *Store) Triples() []Triple {
	return append([]Triple(nil), s.triples...)
}

// Subjects returns the distinct subjects in order of first appearance.
func (s *Store) Subjects() []Term {
	return append([]Term(nil), s.subjects...)
}

// SubjectCount returns the number of distinct subjects.
func (s *Store) SubjectCount() int { return len(s.subjects) }

// HasSubject reports whether any triple has the given subject key.
func (s *Store) HasSubject(key string) bool {
	return len(s.bySubject[key]) > 0
}

// BySubject returns all triples whose subject key equals key, in store order.
// An unknown subject yields nil.
func (s *Store) BySubject(key string) []Triple {
	idx := s.bySubject[key]
	if len(idx) == 0 {
		return nil
	}
	out := make([]Triple, len(idx))
	for i, j := range idx {
		out[i] = s.triples[j]
	}
	return out
}

// Match returns all triples matching p in store order. A pattern with a
// subject uses the subject index; anything else scans.
func (s *Store) Match(p Pattern) []Triple {
	if p.Subject != "" {
		var out []Triple
		for _, t := range s.BySubject(p.Subject) {
			if p.Matches(t) {
				out = append(out, t)
			}
		}
		return out
	}
	var out []Triple
	for _, t := range s.triples {
		if p.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// Referenced reports whether key appears as the object of any triple.
func (s *Store) Referenced(key string) bool {
	for _, t := range s.triples {
		if t.Object.IsResource() && t.Object.Key() == key {
			return true
		}
	}
	return false
}
