package xdm

import "strings"

// Annotate marks fields referenced by identity descriptors and returns the
// number of fields newly marked.
//
// A descriptor applies when its type is "xdm:descriptorIdentity" and it has
// a non-empty source property. Source properties in JSON-pointer form are
// converted to dot paths first. A field matches when its path is a trailing,
// segment-aligned suffix of the source property, so "group.id" matches
// "_tenant.group.id" but "d" does not match "group.id". This is stricter
// than a plain ends-with test, which would also match "xgroup.id". Marking
// is monotonic: fields are never unmarked and several descriptors may mark
// the same field.
//
// Fields are updated in place.
func Annotate(fields []Field, descriptors []Descriptor) int {
	marked := 0
	for _, d := range descriptors {
		if !d.IsIdentity() {
			continue
		}
		sp := normalizeSourceProperty(d.SourceProperty)
		for i := range fields {
			if fields[i].IsIdentity || !suffixMatch(sp, fields[i].Path) {
				continue
			}
			fields[i].IsIdentity = true
			marked++
		}
	}
	return marked
}

func suffixMatch(sourceProperty, path string) bool {
	if path == "" {
		return false
	}
	if sourceProperty == path {
		return true
	}
	return strings.HasSuffix(sourceProperty, "."+path)
}
