package utils

// Ptr returns a pointer to a copy of v. JSON frames use it for optional
// fields whose zero value is meaningful.
func Ptr[T any](v T) *T {
	return &v
}
