package domain

// Optional is a tri-state update argument: unset leaves the stored value
// alone, null clears it, and a value replaces it.
type Optional[T any] struct {
	set   bool
	null  bool
	value T
}

// Unset returns an Optional that leaves the field unchanged.
func Unset[T any]() Optional[T] { return Optional[T]{} }

// Null returns an Optional that clears the field.
func Null[T any]() Optional[T] { return Optional[T]{set: true, null: true} }

// Some returns an Optional that sets the field to v.
func Some[T any](v T) Optional[T] { return Optional[T]{set: true, value: v} }

func (o Optional[T]) IsSet() bool  { return o.set }
func (o Optional[T]) IsNull() bool { return o.set && o.null }

// Value returns the value to store and whether the field should be written at
// all. A cleared field yields the zero value with ok=true.
func (o Optional[T]) Value() (v T, ok bool) {
	if !o.set {
		return v, false
	}
	return o.value, true
}

// ProjectPatch is the set of fields updateProject may change. The client
// reference is deliberately absent.
type ProjectPatch struct {
	Name        Optional[string]
	Description Optional[string]
	Status      Optional[Status]
}

// Empty reports whether the patch changes nothing.
func (p ProjectPatch) Empty() bool {
	return !p.Name.IsSet() && !p.Description.IsSet() && !p.Status.IsSet()
}

// Apply writes the patch onto project in place. Cleared fields become nil.
func (p ProjectPatch) Apply(project *Project) {
	applyString(&project.Name, p.Name)
	applyString(&project.Description, p.Description)
	if v, ok := p.Status.Value(); ok && !p.Status.IsNull() {
		project.Status = v
	}
}

func applyString(dst **string, o Optional[string]) {
	switch {
	case o.IsNull():
		*dst = nil
	case o.IsSet():
		v, _ := o.Value()
		*dst = &v
	}
}

// Fields returns the stored document fields the patch writes, keyed by their
// JSON/BSON names. A nil value means the key is removed from the document.
func (p ProjectPatch) Fields() map[string]any {
	fields := make(map[string]any, 3)
	addString(fields, "name", p.Name)
	addString(fields, "description", p.Description)
	if v, ok := p.Status.Value(); ok && !p.Status.IsNull() {
		fields["status"] = string(v)
	}
	return fields
}

func addString(fields map[string]any, key string, o Optional[string]) {
	switch {
	case o.IsNull():
		fields[key] = nil
	case o.IsSet():
		v, _ := o.Value()
		fields[key] = v
	}
}
