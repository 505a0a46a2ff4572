package values

import (
	"github.com/goliatone/go-layout-editor/internal/schema"
)

// Tree is the complete value mapping for one layout+instance:
// componentID → fieldName → envelope.
type Tree map[string]schema.FieldValues

// Clone deep-copies the tree.
func (t Tree) Clone() Tree {
	if t == nil {
		return nil
	}
	out := make(Tree, len(t))
	for id, values := range t {
		out[id] = schema.CloneValues(values)
	}
	return out
}

// Mutator performs path-addressed operations on a value tree, synthesizing
// envelopes from the component schemas it was constructed with. Every
// operation is total: bad input records a warning and leaves the tree
// untouched.
type Mutator struct {
	schemas map[string][]schema.Field
	sink    WarningSink
}

// MutatorOption customises mutator behaviour.
type MutatorOption func(*Mutator)

// WithWarningSink routes operation warnings to the supplied sink.
func WithWarningSink(sink WarningSink) MutatorOption {
	return func(m *Mutator) {
		if sink != nil {
			m.sink = sink
		}
	}
}

// NewMutator builds a mutator over the supplied component schemas
// (componentID → field list).
func NewMutator(schemas map[string][]schema.Field, opts ...MutatorOption) *Mutator {
	m := &Mutator{
		schemas: schemas,
		sink:    discardSink{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Mutator) warn(op string, path Path, reason string) {
	m.sink.Record(Warning{Op: op, Path: path, Reason: reason})
}

// GetArray returns the elements of the array envelope at path. Any missing
// intermediate segment, or a non-array leaf, yields an empty slice; the
// operation never fails.
func (m *Mutator) GetArray(tree Tree, path Path) []schema.FieldValues {
	envelope := m.lookup(tree, path)
	if envelope == nil {
		return []schema.FieldValues{}
	}
	items := envelope.List()
	if items == nil {
		return []schema.FieldValues{}
	}
	return items
}

// SetAt writes value at path, creating intermediate envelopes from the
// schema as needed. Image leaves always converge to the image envelope shape
// regardless of how deep the write lands.
func (m *Mutator) SetAt(tree Tree, path Path, value any) {
	if len(path) < 2 {
		m.warn("setAt", path, "path must address component and field")
		return
	}
	componentID := path.Component()
	fields, ok := m.schemas[componentID]
	if !ok {
		m.warn("setAt", path, "unknown component")
		return
	}
	componentValues := tree[componentID]
	if componentValues == nil {
		componentValues = schema.FieldValues{}
		tree[componentID] = componentValues
	}
	m.setIn(componentValues, fields, path[1:], path, value)
}

func (m *Mutator) setIn(valuesMap schema.FieldValues, fields []schema.Field, rest Path, full Path, value any) {
	segment := rest[0]
	if segment.IsIndex() {
		m.warn("setAt", full, "expected field name, found index")
		return
	}
	field, ok := schema.FindField(fields, segment.FieldName())
	if !ok {
		m.warn("setAt", full, "schema lookup failed")
		return
	}
	envelope := valuesMap[segment.FieldName()]
	if envelope == nil {
		envelope = schema.NewEnvelope(field)
		valuesMap[segment.FieldName()] = envelope
	}
	if len(rest) == 1 {
		assign(envelope, field, value)
		return
	}

	index := rest[1]
	if !index.IsIndex() {
		m.warn("setAt", full, "expected array index")
		return
	}
	items := envelope.List()
	if index.Position() < 0 || index.Position() >= len(items) {
		m.warn("setAt", full, "array index out of range")
		return
	}
	if len(rest) == 2 {
		m.warn("setAt", full, "path terminates at array index")
		return
	}
	m.setIn(items[index.Position()], field.Items, rest[2:], full, value)
}

// InsertArrayItem inserts a fully-formed item at atIndex, appending when
// atIndex exceeds the current length.
func (m *Mutator) InsertArrayItem(tree Tree, arrayPath Path, atIndex int, item schema.FieldValues) {
	envelope, field := m.resolveArray(tree, arrayPath, "insertArrayItem")
	if envelope == nil {
		return
	}
	if atIndex < 0 {
		m.warn("insertArrayItem", arrayPath, "negative index")
		return
	}
	if item == nil {
		item = schema.NewItem(field)
	}
	items := envelope.List()
	if items == nil {
		items = []schema.FieldValues{}
	}
	if atIndex > len(items) {
		atIndex = len(items)
	}
	next := make([]schema.FieldValues, 0, len(items)+1)
	next = append(next, items[:atIndex]...)
	next = append(next, item)
	next = append(next, items[atIndex:]...)
	envelope.Value = next
}

// RemoveArrayItem removes the element at atIndex; later items shift down by
// one. Out-of-range indices record a warning and leave the array unchanged.
func (m *Mutator) RemoveArrayItem(tree Tree, arrayPath Path, atIndex int) {
	envelope, _ := m.resolveArray(tree, arrayPath, "removeArrayItem")
	if envelope == nil {
		return
	}
	items := envelope.List()
	if atIndex < 0 || atIndex >= len(items) {
		m.warn("removeArrayItem", arrayPath, "array index out of range")
		return
	}
	next := make([]schema.FieldValues, 0, len(items)-1)
	next = append(next, items[:atIndex]...)
	next = append(next, items[atIndex+1:]...)
	envelope.Value = next
}

// resolveArray walks to an array envelope, creating it from the schema when
// absent. Returns nil when the path cannot address an array field.
func (m *Mutator) resolveArray(tree Tree, path Path, op string) (*schema.Envelope, schema.Field) {
	if len(path) < 2 {
		m.warn(op, path, "path must address component and field")
		return nil, schema.Field{}
	}
	componentID := path.Component()
	fields, ok := m.schemas[componentID]
	if !ok {
		m.warn(op, path, "unknown component")
		return nil, schema.Field{}
	}
	componentValues := tree[componentID]
	if componentValues == nil {
		componentValues = schema.FieldValues{}
		tree[componentID] = componentValues
	}

	rest := path[1:]
	valuesMap := componentValues
	for {
		segment := rest[0]
		if segment.IsIndex() {
			m.warn(op, path, "expected field name, found index")
			return nil, schema.Field{}
		}
		field, ok := schema.FindField(fields, segment.FieldName())
		if !ok {
			m.warn(op, path, "schema lookup failed")
			return nil, schema.Field{}
		}
		envelope := valuesMap[segment.FieldName()]
		if envelope == nil {
			envelope = schema.NewEnvelope(field)
			valuesMap[segment.FieldName()] = envelope
		}
		if len(rest) == 1 {
			if field.Type != schema.KindArray && field.Type != schema.KindObject {
				m.warn(op, path, "field is not an array")
				return nil, schema.Field{}
			}
			return envelope, field
		}
		index := rest[1]
		if !index.IsIndex() || len(rest) < 3 {
			m.warn(op, path, "malformed array path")
			return nil, schema.Field{}
		}
		items := envelope.List()
		if index.Position() < 0 || index.Position() >= len(items) {
			m.warn(op, path, "array index out of range")
			return nil, schema.Field{}
		}
		valuesMap = items[index.Position()]
		fields = field.Items
		rest = rest[2:]
	}
}

// lookup walks read-only and returns nil on any miss.
func (m *Mutator) lookup(tree Tree, path Path) *schema.Envelope {
	if len(path) < 2 {
		return nil
	}
	componentValues, ok := tree[path.Component()]
	if !ok {
		return nil
	}
	rest := path[1:]
	valuesMap := componentValues
	for {
		segment := rest[0]
		if segment.IsIndex() {
			return nil
		}
		envelope, ok := valuesMap[segment.FieldName()]
		if !ok || envelope == nil {
			return nil
		}
		if len(rest) == 1 {
			return envelope
		}
		index := rest[1]
		if !index.IsIndex() || len(rest) < 3 {
			return nil
		}
		items := envelope.List()
		if index.Position() < 0 || index.Position() >= len(items) {
			return nil
		}
		valuesMap = items[index.Position()]
		rest = rest[2:]
	}
}

// assign writes a primitive into an existing envelope, preserving the
// envelope shape. Image leaves re-assert type and fieldType on every write
// so bare URLs arriving from any nesting level converge to the same shape.
func assign(envelope *schema.Envelope, field schema.Field, value any) {
	if incoming, ok := value.(*schema.Envelope); ok && incoming != nil {
		value = incoming.Value
	}
	if field.Type == schema.KindImage {
		url, _ := value.(string)
		envelope.Value = url
		envelope.Type = schema.KindImage
		envelope.FieldType = schema.KindImage
		return
	}
	envelope.Value = value
	if envelope.Type == "" {
		envelope.Type = field.Type
	}
	if envelope.FieldType == "" {
		envelope.FieldType = field.EffectiveFieldType()
	}
}
