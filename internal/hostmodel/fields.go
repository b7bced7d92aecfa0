package hostmodel

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// FieldStore is the field-map persistence collaborator. The host
// engine's serialization machinery enumerates fields and reads/writes
// them by name; the default saveState/loadState bodies synthesized by
// the Definition Compiler delegate here.
type FieldStore struct {
	order  []string
	values map[string]interface{}
}

func NewFieldStore(names ...string) *FieldStore {
	fs := &FieldStore{values: make(map[string]interface{}, len(names))}
	for _, name := range names {
		if _, exists := fs.values[name]; exists {
			continue
		}
		fs.order = append(fs.order, name)
		fs.values[name] = nil
	}
	return fs
}

// Fields returns the field names in declaration order.
func (fs *FieldStore) Fields() []string {
	out := make([]string, len(fs.order))
	copy(out, fs.order)
	return out
}

func (fs *FieldStore) Get(name string) (interface{}, bool) {
	v, ok := fs.values[name]
	return v, ok
}

func (fs *FieldStore) Set(name string, value interface{}) error {
	if _, ok := fs.values[name]; !ok {
		return fmt.Errorf("unknown field %s", name)
	}
	fs.values[name] = value
	return nil
}

// Snapshot encodes the field map for the host's save pipeline.
func (fs *FieldStore) Snapshot() ([]byte, error) {
	doc := make(map[string]interface{}, len(fs.values))
	for name, v := range fs.values {
		doc[name] = v
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding field snapshot: %w", err)
	}
	return data, nil
}

// Restore decodes a snapshot back into the store. Snapshot keys that
// no longer match a declared field are ignored; the host drops stale
// data the same way after a definition changes.
func (fs *FieldStore) Restore(data []byte) error {
	doc := make(map[string]interface{})
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decoding field snapshot: %w", err)
	}
	for name, v := range doc {
		if _, ok := fs.values[name]; ok {
			fs.values[name] = v
		}
	}
	return nil
}
