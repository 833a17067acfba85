package reader

import (
	"context"
	"fmt"

	"bottin/internal/domain"
)

// Request carries all parameters required to read one sheet of a workbook.
type Request struct {
	Path  string
	Sheet string
}

// Reader captures a single workbook-format strategy (xlsx today; ods or
// remote sheets would register alongside it).
type Reader interface {
	Name() string
	Read(ctx context.Context, req Request) (domain.Table, error)
}

// Registry keeps a mapping from format names to their implementations.
// Formats are keyed by file extension without the dot.
type Registry struct {
	readers map[string]Reader
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{readers: map[string]Reader{}}
}

// Register adds or replaces a reader implementation.
func (r *Registry) Register(reader Reader) {
	if r.readers == nil {
		r.readers = map[string]Reader{}
	}
	r.readers[reader.Name()] = reader
}

// Resolve returns a reader by format name or an error if it is absent.
func (r *Registry) Resolve(name string) (Reader, error) {
	if reader, ok := r.readers[name]; ok {
		return reader, nil
	}
	return nil, fmt.Errorf("workbook format %s is not supported", name)
}
