// Package utils holds small generic helpers shared across packages.
package utils

// Ptr returns a pointer to v. Partial-update payloads model optional fields
// as pointers; Ptr lets callers build them from literals.
func Ptr[T any](v T) *T {
	return &v
}
