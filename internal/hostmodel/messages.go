package hostmodel

import (
	"fmt"

	"github.com/tetherlang/tether/internal/config"
)

// MessageSpec describes one lifecycle message the host can deliver:
// its canonical interface symbol, the callback's parameter names, and
// whether the host may deliver it before the owning module is known to
// be loaded (relevant under hot-reload).
type MessageSpec struct {
	Name      string
	Interface string
	Params    []string
	Early     bool
}

// MessageRegistry maps lifecycle message names to their specs. It is
// the collaborator consulted when normalizing shorthand declarations.
type MessageRegistry struct {
	byName map[string]MessageSpec
}

func NewMessageRegistry() *MessageRegistry {
	return &MessageRegistry{byName: make(map[string]MessageSpec)}
}

// DefaultMessages returns the registry seeded with the host engine's
// built-in lifecycle messages.
func DefaultMessages() *MessageRegistry {
	r := NewMessageRegistry()
	specs := []MessageSpec{
		{Name: config.MsgReady, Interface: "Ready", Early: true},
		{Name: config.MsgEnter, Interface: "Enter", Early: true},
		{Name: config.MsgStep, Interface: "Step", Params: []string{"dt"}},
		{Name: config.MsgLateStep, Interface: "LateStep", Params: []string{"dt"}},
		{Name: config.MsgExit, Interface: "Exit"},
		{Name: config.MsgOnHit, Interface: "Collidable", Params: []string{"other"}},
		{Name: config.MsgOnLeave, Interface: "Collidable", Params: []string{"other"}},
		{Name: config.MsgSaveState, Interface: "Persistable"},
		{Name: config.MsgLoadState, Interface: "Persistable", Early: true},
	}
	for _, spec := range specs {
		// Seeding from a fixed table cannot conflict.
		_ = r.Register(spec)
	}
	return r
}

// Register adds a message spec. Name and interface are required;
// redefining an existing message is an error.
func (r *MessageRegistry) Register(spec MessageSpec) error {
	if spec.Name == "" || spec.Interface == "" {
		return fmt.Errorf("message registration requires name and interface")
	}
	if _, exists := r.byName[spec.Name]; exists {
		return fmt.Errorf("message %s is already registered", spec.Name)
	}
	r.byName[spec.Name] = spec
	return nil
}

// Lookup resolves a shorthand message name.
func (r *MessageRegistry) Lookup(name string) (MessageSpec, bool) {
	spec, ok := r.byName[name]
	return spec, ok
}
