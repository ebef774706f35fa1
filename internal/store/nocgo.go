//go:build !cgo

package store

// Open reports ErrUnavailable: the KuzuDB backend needs cgo.
func Open(dbPath string) (Store, error) {
	return nil, ErrUnavailable
}
