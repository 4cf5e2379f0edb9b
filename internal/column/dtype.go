// Package column provides the core single-column ragged array type for the
// coltab framework.
package column

// DType is a constraint for supported column element types.
type DType interface {
	~float32 | ~float64 | ~int32 | ~int64 | ~uint8 | ~bool
}

// DataType is the runtime tag carried by every buffer. The set matches the
// element types a column can hold; row lengths are always stored as Int64.
type DataType int

// Supported data types for column values.
const (
	Float32 DataType = iota
	Float64
	Int32
	Int64
	Uint8
	Bool
)

// dtypes records the name and element width of each DataType.
var dtypes = [...]struct {
	name string
	size int
}{
	Float32: {"float32", 4},
	Float64: {"float64", 8},
	Int32:   {"int32", 4},
	Int64:   {"int64", 8},
	Uint8:   {"uint8", 1},
	Bool:    {"bool", 1},
}

func (dt DataType) valid() bool {
	return dt >= 0 && int(dt) < len(dtypes)
}

// Size returns the width in bytes of one element.
func (dt DataType) Size() int {
	if !dt.valid() {
		panic("unknown data type")
	}
	return dtypes[dt].size
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	if !dt.valid() {
		return "unknown"
	}
	return dtypes[dt].name
}

// inferDataType maps a DType instantiation to its runtime tag.
func inferDataType[T DType](v T) DataType {
	switch any(v).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case bool:
		return Bool
	default:
		panic("unsupported type")
	}
}
