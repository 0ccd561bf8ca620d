package storage

import "fmt"

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// Open returns the KV backend named by backend. driver only applies to the
// sqlite backend.
func Open(backend, driver, path string) (KV, error) {
	switch backend {
	case BackendSQLite, "":
		repo, err := OpenSQLite(driver, path)
		if err != nil {
			return nil, err
		}
		return repo, nil
	case BackendFile:
		fs, err := OpenFile(path)
		if err != nil {
			return nil, err
		}
		return fs, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
