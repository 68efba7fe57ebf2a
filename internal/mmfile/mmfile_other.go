//go:build !unix

package mmfile

// Open reads the whole file at path. Files larger than max bytes are
// rejected; max <= 0 means no bound.
func Open(path string, max int64) (*Region, error) {
	return readAll(path, max)
}
