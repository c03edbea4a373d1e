package plugin

// Find returns the first descriptor in plugins whose identity equals id.
//
// Bare names are skipped. Only the first entry of each descriptor is
// compared: capabilities bundled under later entries are not visible here.
func Find(plugins []Spec, id ID) (Descriptor, bool) {
	for _, p := range plugins {
		if p.kind != SpecDescriptor {
			continue
		}
		if first, ok := p.descriptor.ID(); ok && first == id {
			return p.descriptor, true
		}
	}
	return nil, false
}

// Contains reports whether Find would locate id in plugins.
func Contains(plugins []Spec, id ID) bool {
	_, ok := Find(plugins, id)
	return ok
}
