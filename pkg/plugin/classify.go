package plugin

// SetKind names the configuration list being classified.
type SetKind string

const (
	Frameworks SetKind = "frameworks"
	Reporters  SetKind = "reporters"
)

// ResolvedSet is the result of classifying a list of Specs.
type ResolvedSet struct {
	Kind SetKind
	// Names holds one name per input entry, in input order. Descriptor
	// entries contribute the name part of their identity.
	Names []string
	// Plugins holds the descriptor entries only, in input order.
	Plugins []Spec
}

// Classify splits specs into resolved names and plugin descriptors.
//
// Every entry produces exactly one name. A descriptor's name is the last
// segment of its first capability id, so {"framework:mocha": p} yields
// "mocha". A descriptor without entries is an error.
func Classify(kind SetKind, specs []Spec) (ResolvedSet, error) {
	set := ResolvedSet{
		Kind:    kind,
		Names:   make([]string, 0, len(specs)),
		Plugins: []Spec{},
	}

	for i, spec := range specs {
		switch spec.kind {
		case SpecName:
			set.Names = append(set.Names, spec.name)
		case SpecDescriptor:
			id, ok := spec.descriptor.ID()
			if !ok {
				return ResolvedSet{}, &ClassifyError{Err: ErrEmptyDescriptor, Index: i, Kind: kind, Spec: spec}
			}
			set.Names = append(set.Names, id.Name())
			set.Plugins = append(set.Plugins, spec)
		default:
			return ResolvedSet{}, &ClassifyError{Err: ErrInvalidSpec, Index: i, Kind: kind, Spec: spec}
		}
	}

	return set, nil
}
