//go:build !unix

package system

// InitResourceLimits is a no-op where rlimits do not apply.
func InitResourceLimits() error {
	return nil
}
