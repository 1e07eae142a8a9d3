package pipeline

import (
	"errors"
	"os"
)

// memFS is an in-memory fileutil.FS keyed by forward-slash path.
type memFS map[string][]byte

func (m memFS) Exists(path string) bool {
	_, ok := m[path]
	return ok
}

func (m memFS) ReadFile(path string) ([]byte, error) {
	data, ok := m[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

var errReadFailed = errors.New("read failed")
