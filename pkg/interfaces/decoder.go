package interfaces

// DataDecoder turns structured-data bytes (YAML in the default wiring) into a
// generic value graph: sequences decode to []any, mappings to an
// insertion-ordered map implementation, scalars to native Go values.
type DataDecoder interface {
	Decode(data []byte) (any, error)
}
