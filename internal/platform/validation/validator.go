package validation

// Validator defines the interface that needs to be implemented by all validation strategies.
// ValidateStruct returns nil when s is valid, otherwise a map of field name to message.
type Validator interface {
	ValidateStruct(s any) map[string]string
}
