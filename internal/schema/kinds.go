package schema

// Kind identifies one of the closed set of field kinds understood by the
// editor. The same identifiers appear in field schema nodes and in value
// envelopes.
type Kind string

const (
	KindText     Kind = "text"
	KindTextarea Kind = "textarea"
	KindRichText Kind = "richText"
	KindNumber   Kind = "number"
	KindBoolean  Kind = "boolean"
	KindDate     Kind = "date"
	KindSelect   Kind = "select"
	KindImage    Kind = "image"
	KindArray    Kind = "array"
	KindObject   Kind = "object"
)

// MaxNestingDepth bounds how deep array/object sub-schemas may nest. The
// authoring picker disables composite kinds once this depth is reached.
const MaxNestingDepth = 4

// Definition describes one registered field kind: how to build its default
// envelope, how to validate a value against a schema node, whether the kind
// carries a sub-schema, and which authoring options it recognizes.
type Definition struct {
	Kind        Kind
	SchemaType  Kind
	Composite   bool
	OptionKeys  []string
	NewEnvelope func(f Field) *Envelope
	Validate    func(f Field, e *Envelope) error
}

var registry map[Kind]Definition

// Composite validators reach back through Lookup, so the registry must be
// assembled in init rather than a package-level literal.
func init() {
	registry = map[Kind]Definition{
		KindText: {
			Kind:        KindText,
			SchemaType:  KindText,
			OptionKeys:  []string{"placeholder", "maxLength"},
			NewEnvelope: scalarEnvelope(KindText, ""),
			Validate:    validateString,
		},
		KindTextarea: {
			Kind:        KindTextarea,
			SchemaType:  KindText,
			OptionKeys:  []string{"placeholder", "maxLength"},
			NewEnvelope: scalarEnvelope(KindTextarea, ""),
			Validate:    validateString,
		},
		KindRichText: {
			Kind:        KindRichText,
			SchemaType:  KindRichText,
			OptionKeys:  []string{"toolbarGroups"},
			NewEnvelope: scalarEnvelope(KindRichText, ""),
			Validate:    validateString,
		},
		KindNumber: {
			Kind:        KindNumber,
			SchemaType:  KindNumber,
			OptionKeys:  []string{"min", "max", "step"},
			NewEnvelope: scalarEnvelope(KindNumber, float64(0)),
			Validate:    validateNumber,
		},
		KindBoolean: {
			Kind:        KindBoolean,
			SchemaType:  KindBoolean,
			OptionKeys:  nil,
			NewEnvelope: scalarEnvelope(KindBoolean, false),
			Validate:    validateBoolean,
		},
		KindDate: {
			Kind:        KindDate,
			SchemaType:  KindDate,
			OptionKeys:  nil,
			NewEnvelope: scalarEnvelope(KindDate, ""),
			Validate:    validateDate,
		},
		KindSelect: {
			Kind:        KindSelect,
			SchemaType:  KindSelect,
			OptionKeys:  []string{"options"},
			NewEnvelope: scalarEnvelope(KindSelect, ""),
			Validate:    validateSelect,
		},
		KindImage: {
			Kind:        KindImage,
			SchemaType:  KindImage,
			OptionKeys:  nil,
			NewEnvelope: imageEnvelope,
			Validate:    validateString,
		},
		KindArray: {
			Kind:        KindArray,
			SchemaType:  KindArray,
			Composite:   true,
			OptionKeys:  []string{"itemStructure", "minItems", "maxItems"},
			NewEnvelope: arrayEnvelope,
			Validate:    validateArray,
		},
		KindObject: {
			Kind:        KindObject,
			SchemaType:  KindObject,
			Composite:   true,
			OptionKeys:  []string{"itemStructure"},
			NewEnvelope: arrayEnvelope,
			Validate:    validateArray,
		},
	}
}

// Lookup returns the registry entry for the supplied kind.
func Lookup(kind Kind) (Definition, bool) {
	def, ok := registry[kind]
	return def, ok
}

// Kinds returns the closed set of registered kinds in stable order.
func Kinds() []Kind {
	return []Kind{
		KindText, KindTextarea, KindRichText, KindNumber, KindBoolean,
		KindDate, KindSelect, KindImage, KindArray, KindObject,
	}
}

// IsComposite reports whether the kind carries an item sub-schema.
func IsComposite(kind Kind) bool {
	def, ok := registry[kind]
	return ok && def.Composite
}

// PickerKinds returns the kinds offered by the field-type picker at the given
// nesting depth. Composite kinds are withheld once another level would exceed
// MaxNestingDepth.
func PickerKinds(depth int) []Kind {
	all := Kinds()
	if depth < MaxNestingDepth {
		return all
	}
	out := make([]Kind, 0, len(all))
	for _, kind := range all {
		if IsComposite(kind) {
			continue
		}
		out = append(out, kind)
	}
	return out
}
