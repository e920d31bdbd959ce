package tree

import (
	"github.com/matzehuels/prettymarkup/pkg/rdf"
)

// Visited is the set of subject keys already expanded during one traversal.
// It is passed by reference through the recursion.
type Visited map[string]struct{}

// NewVisited returns an empty set.
func NewVisited() Visited { return make(Visited) }

// Has reports whether key has been expanded.
func (v Visited) Has(key string) bool {
	_, ok := v[key]
	return ok
}

// Add marks key as expanded.
func (v Visited) Add(key string) { v[key] = struct{}{} }

// Options configures a [Visitor].
type Options struct {
	// Target selects rows to highlight. The zero value highlights nothing.
	Target Target
	// IDRows emits a synthetic "@id" row at the top of every named entity.
	IDRows bool
}

// Visitor turns a store into rows. One Visitor serves one document: it owns
// the color source and remembers which hue each subject received.
//
// A Visitor is not safe for concurrent use.
type Visitor struct {
	store  *rdf.Store
	colors ColorSource
	opts   Options
	hues   map[string]float64
}

// NewVisitor creates a visitor over store. A nil colors source falls back to
// [FixedHues] with no hues (every entity gets hue 0).
func NewVisitor(store *rdf.Store, colors ColorSource, opts Options) *Visitor {
	if colors == nil {
		colors = FixedHues()
	}
	return &Visitor{
		store:  store,
		colors: colors,
		opts:   opts,
		hues:   make(map[string]float64),
	}
}

// VisitShapes renders each shape root with its own visited set and
// concatenates the rows in shape order.
func (v *Visitor) VisitShapes(shapes []rdf.Term) ([]Row, error) {
	var rows []Row
	for _, shape := range shapes {
		r, err := v.Visit(shape, NewVisited(), 0)
		if err != nil {
			return nil, err
		}
		rows = append(rows, r...)
	}
	return rows, nil
}

// Visit returns the rows for subject and everything reachable from it that
// has not been expanded yet, in depth-first pre-order.
//
// A subject already in visited, or one without outgoing triples, yields no
// rows. The only error is an exhausted color source.
func (v *Visitor) Visit(subject rdf.Term, visited Visited, indent int) ([]Row, error) {
	key := subject.Key()
	if visited.Has(key) {
		return nil, nil
	}
	visited.Add(key)

	triples := v.store.BySubject(key)
	if len(triples) == 0 {
		return nil, nil
	}
	triples = Order(triples)

	hue, err := v.hue(key)
	if err != nil {
		return nil, err
	}
	entityTarget := v.opts.Target.matchesEntity(triples)

	rows := make([]Row, 0, len(triples)+1)
	if v.opts.IDRows && subject.IsIRI() {
		rows = append(rows, Row{
			Subject:    subject.Value,
			Predicate:  IDPredicate,
			Object:     subject.Value,
			ObjectKind: rdf.KindIRI,
			Indent:     indent,
			Hue:        hue,
			Target:     entityTarget,
		})
	}

	for _, t := range triples {
		row := Row{
			Subject:    subject.Value,
			Predicate:  t.Predicate.Value,
			ObjectKind: t.Object.Kind,
			Indent:     indent,
			Hue:        hue,
			Target:     entityTarget || v.opts.Target.matchesProperty(t.Predicate.Value),
		}

		if v.expandable(t.Object, visited) {
			row.Branch = true
			if v.opts.Target.matchesEntity(v.store.BySubject(t.Object.Key())) {
				row.Target = true
			}
			children, err := v.Visit(t.Object, visited, indent+1)
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
			rows = append(rows, children...)
			continue
		}

		row.Object = t.Object.Text()
		rows = append(rows, row)
	}
	return rows, nil
}

// expandable reports whether obj is an entity that this traversal has not
// expanded yet. Blank nodes expand like named resources.
func (v *Visitor) expandable(obj rdf.Term, visited Visited) bool {
	if !obj.IsResource() {
		return false
	}
	key := obj.Key()
	return !visited.Has(key) && v.store.HasSubject(key)
}

func (v *Visitor) hue(key string) (float64, error) {
	if h, ok := v.hues[key]; ok {
		return h, nil
	}
	h, err := v.colors.Next()
	if err != nil {
		return 0, err
	}
	v.hues[key] = h
	return h, nil
}

// Order returns triples arranged for display: every triple that is neither
// schema:name nor rdf:type in store order, then the name triples, then the
// type triples. The input slice is not modified.
func Order(triples []rdf.Triple) []rdf.Triple {
	out := make([]rdf.Triple, 0, len(triples))
	var names, types []rdf.Triple
	for _, t := range triples {
		switch {
		case rdf.IsTypePredicate(t.Predicate.Value):
			types = append(types, t)
		case rdf.IsNamePredicate(t.Predicate.Value):
			names = append(names, t)
		default:
			out = append(out, t)
		}
	}
	out = append(out, names...)
	return append(out, types...)
}
