package jsonld

import (
	"context"
	"encoding/json"
	"slices"
	"strconv"

	"github.com/piprate/json-gold/ld"

	"github.com/matzehuels/prettymarkup/pkg/errors"
	"github.com/matzehuels/prettymarkup/pkg/rdf"
)

// ShapePredicate tags each top-level entity before conversion so its root
// term can be found afterwards, whatever its @id expands to. Triples with
// this predicate never reach a [Document].
const ShapePredicate = "urn:prettymarkup:shape"

const defaultGraph = "@default"

// Document is the result of a conversion.
type Document struct {
	// Store holds every triple of every graph in the input.
	Store *rdf.Store
	// Shapes are the roots to render, in document order.
	Shapes []rdf.Term
	// Base is the IRI relative identifiers were resolved against.
	Base string
}

// Converter turns JSON-LD text into a [Document].
type Converter struct {
	fetcher Fetcher
	allow   ContextPolicy
}

// ConverterOption configures a [Converter].
type ConverterOption func(*Converter)

// WithContextPolicy restricts which remote contexts may be loaded.
func WithContextPolicy(allow ContextPolicy) ConverterOption {
	return func(c *Converter) { c.allow = allow }
}

// NewConverter returns a converter that loads remote contexts through
// fetcher. fetcher may be nil.
func NewConverter(fetcher Fetcher, opts ...ConverterOption) *Converter {
	c := &Converter{fetcher: fetcher}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert resolves text (raw JSON-LD or HTML), picks the base IRI and runs
// the JSON-LD to RDF algorithm. Failures of the algorithm itself are
// reported as [errors.ErrCodeConversion] with the json-gold error as cause.
func (c *Converter) Convert(ctx context.Context, text, base string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	input, err := ResolveInput(text)
	if err != nil {
		return nil, err
	}

	var doc any
	if err := json.Unmarshal([]byte(input), &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConversion, err, "parse JSON-LD")
	}

	base = ResolveBase(doc, base)
	markShapes(doc)

	opts := ld.NewJsonLdOptions(base)
	opts.DocumentLoader = NewLoader(ctx, c.fetcher, c.allow)

	result, err := ld.NewJsonLdProcessor().ToRDF(doc, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConversion, err, "convert JSON-LD to RDF")
	}
	dataset, ok := result.(*ld.RDFDataset)
	if !ok {
		return nil, errors.New(errors.ErrCodeInternal, "unexpected ToRDF result %T", result)
	}

	store := rdf.NewStore()
	var marks []shapeMark
	for _, name := range graphNames(dataset) {
		for _, q := range dataset.Graphs[name] {
			if q == nil {
				continue
			}
			s, ok1 := toTerm(q.Subject)
			p, ok2 := toTerm(q.Predicate)
			o, ok3 := toTerm(q.Object)
			if !ok1 || !ok2 || !ok3 {
				continue
			}
			if p.Value == ShapePredicate {
				if i, err := strconv.Atoi(o.Value); err == nil {
					marks = append(marks, shapeMark{index: i, root: s})
				}
				continue
			}
			store.Add(rdf.NewTriple(s, p, o))
		}
	}

	return &Document{
		Store:  store,
		Shapes: selectShapes(store, marks),
		Base:   base,
	}, nil
}

// graphNames returns the dataset's graph names, default graph first.
func graphNames(ds *ld.RDFDataset) []string {
	names := make([]string, 0, len(ds.Graphs))
	for name := range ds.Graphs {
		if name != defaultGraph {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	if _, ok := ds.Graphs[defaultGraph]; ok {
		names = append([]string{defaultGraph}, names...)
	}
	return names
}

// =============================================================================
// Shapes
// =============================================================================

type shapeMark struct {
	index int
	root  rdf.Term
}

// markShapes adds a [ShapePredicate] property holding the entity's position
// to every top-level node object of doc. doc is modified in place.
func markShapes(doc any) {
	for i, entity := range topLevelEntities(doc) {
		if isValueObject(entity) {
			continue
		}
		entity[ShapePredicate] = strconv.Itoa(i)
	}
}

func isValueObject(m map[string]any) bool {
	for _, k := range []string{"@value", "@list", "@set"} {
		if _, ok := m[k]; ok {
			return true
		}
	}
	return false
}

// topLevelEntities returns the node objects that start a shape: the members
// of a root @graph, the elements of a root array, or the root object.
func topLevelEntities(doc any) []map[string]any {
	switch v := doc.(type) {
	case []any:
		return objects(v)
	case map[string]any:
		switch g := v["@graph"].(type) {
		case []any:
			return objects(g)
		case map[string]any:
			return []map[string]any{g}
		}
		return []map[string]any{v}
	}
	return nil
}

func objects(values []any) []map[string]any {
	var out []map[string]any
	for _, value := range values {
		if m, ok := value.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// selectShapes orders the marked roots by document position and keeps those
// that produced triples. When none did, every subject that no triple refers
// to becomes a root, and failing that the first subject.
func selectShapes(store *rdf.Store, marks []shapeMark) []rdf.Term {
	slices.SortStableFunc(marks, func(a, b shapeMark) int { return a.index - b.index })

	seen := make(map[string]bool)
	var shapes []rdf.Term
	for _, m := range marks {
		if key := m.root.Key(); !seen[key] && store.HasSubject(key) {
			seen[key] = true
			shapes = append(shapes, m.root)
		}
	}
	if len(shapes) > 0 {
		return shapes
	}

	for _, s := range store.Subjects() {
		if !store.Referenced(s.Key()) {
			shapes = append(shapes, s)
		}
	}
	if len(shapes) == 0 && store.SubjectCount() > 0 {
		shapes = append(shapes, store.Subjects()[0])
	}
	return shapes
}

// =============================================================================
// Node conversion
// =============================================================================

func toTerm(n ld.Node) (rdf.Term, bool) {
	switch v := n.(type) {
	case *ld.IRI:
		return rdf.IRI(v.Value), true
	case ld.IRI:
		return rdf.IRI(v.Value), true
	case *ld.BlankNode:
		return rdf.Blank(v.Attribute), true
	case ld.BlankNode:
		return rdf.Blank(v.Attribute), true
	case *ld.Literal:
		return literalTerm(v.Value, v.Datatype, v.Language), true
	case ld.Literal:
		return literalTerm(v.Value, v.Datatype, v.Language), true
	}
	return rdf.Term{}, false
}

func literalTerm(value, datatype, language string) rdf.Term {
	switch {
	case language != "":
		return rdf.LangLiteral(value, language)
	case datatype != "":
		return rdf.TypedLiteral(value, datatype)
	default:
		return rdf.Literal(value)
	}
}
