// Package feature defines the serialization contract between an
// application domain and the learning algorithms: opaque feature tuples,
// per-feature metadata, feature sets, and the polymorphic Space interface
// that binds them to text and binary encodings.
//
// The core never interprets a feature's fields itself beyond default tuple
// printing; all meaning is supplied by the owning Space implementation.
package feature

// Feature identifies one measurable quantity within a feature space.
//
// It is an opaque 3-field tuple: the owning Space decides what the fields
// mean. Keeping the identifier a plain value (rather than giving it virtual
// behavior) lets every learning algorithm share one feature type while
// spaces specialize interpretation.
type Feature struct {
	Type int32
	Arg1 int32
	Arg2 int32
}

// FeatureType tags how a feature's value is rendered and serialized.
type FeatureType uint8

const (
	TypeUnknown     FeatureType = iota // nothing known; treated as real
	TypeCategorical                    // value is a category code
	TypeReal                           // value is a plain float
	TypeString                         // value round-trips as a string
)

func (t FeatureType) String() string {
	switch t {
	case TypeCategorical:
		return "Categorical"
	case TypeReal:
		return "Real"
	case TypeString:
		return "String"
	default:
		return "Unknown"
	}
}

// FeatureInfo describes how a feature's value should be used. Spaces own
// one per feature; Info lookups are frequent and must stay cheap.
type FeatureInfo struct {
	Type FeatureType
}

// Predefined infos for the common cases.
var (
	Unknown     = FeatureInfo{Type: TypeUnknown}
	Categorical = FeatureInfo{Type: TypeCategorical}
	Real        = FeatureInfo{Type: TypeReal}
	String      = FeatureInfo{Type: TypeString}
)
