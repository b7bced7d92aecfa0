package hostmodel

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tetherlang/tether/internal/config"
	"github.com/tetherlang/tether/internal/symbols"
	"github.com/tetherlang/tether/internal/typesystem"
)

// ProjectConfig is the tether.yaml overlay: extra host classes, extra
// lifecycle messages, and global symbols visible to every definition.
type ProjectConfig struct {
	// Module is the script module name baked into hot-reload guards.
	// Defaults to "main".
	Module string `yaml:"module,omitempty"`

	// Classes extends the host class hierarchy.
	Classes []ClassDef `yaml:"classes,omitempty"`

	// Messages extends the lifecycle message registry.
	Messages []MessageDef `yaml:"messages,omitempty"`

	// Globals declares host-provided global values and functions.
	Globals []GlobalDef `yaml:"globals,omitempty"`
}

// ClassDef declares one host class. Parent must be an already known
// class; entries are applied in order.
type ClassDef struct {
	Name   string `yaml:"name"`
	Parent string `yaml:"parent"`
}

// MessageDef declares one lifecycle message.
type MessageDef struct {
	Name      string   `yaml:"name"`
	Interface string   `yaml:"interface"`
	Params    []string `yaml:"params,omitempty"`
	Early     bool     `yaml:"early,omitempty"`
}

// GlobalDef declares one global symbol. Callable globals never carry a
// result type; Type is only meaningful for value globals.
type GlobalDef struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type,omitempty"`
	Callable bool   `yaml:"callable,omitempty"`
}

// LoadProject reads and parses a tether.yaml file.
func LoadProject(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseProject(data, path)
}

// ParseProject parses tether.yaml content from bytes. The path
// argument is used only for error messages.
func ParseProject(data []byte, path string) (*ProjectConfig, error) {
	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	if cfg.Module == "" {
		cfg.Module = "main"
	}
	return &cfg, nil
}

// FindProject searches for tether.yaml starting from dir and walking
// up to parent directories. Returns empty string and nil error when no
// config exists.
func FindProject(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, config.ProjectConfigName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", nil
		}
		dir = parent
	}
}

func (c *ProjectConfig) validate(path string) error {
	for i, cls := range c.Classes {
		if cls.Name == "" {
			return fmt.Errorf("%s: classes[%d]: name is required", path, i)
		}
		if cls.Parent == "" {
			return fmt.Errorf("%s: classes[%d] (%s): parent is required", path, i, cls.Name)
		}
	}
	for i, msg := range c.Messages {
		if msg.Name == "" {
			return fmt.Errorf("%s: messages[%d]: name is required", path, i)
		}
		if msg.Interface == "" {
			return fmt.Errorf("%s: messages[%d] (%s): interface is required", path, i, msg.Name)
		}
	}
	for i, g := range c.Globals {
		if g.Name == "" {
			return fmt.Errorf("%s: globals[%d]: name is required", path, i)
		}
		if g.Callable && g.Type != "" {
			return fmt.Errorf("%s: globals[%d] (%s): callable globals cannot declare a type", path, i, g.Name)
		}
	}
	return nil
}

// Apply overlays the project configuration onto the seeded registries.
func (c *ProjectConfig) Apply(types *typesystem.Registry, msgs *MessageRegistry, globals *symbols.SymbolTable) error {
	for _, cls := range c.Classes {
		if _, err := types.Define(cls.Name, cls.Parent); err != nil {
			return err
		}
	}
	for _, msg := range c.Messages {
		err := msgs.Register(MessageSpec{
			Name:      msg.Name,
			Interface: msg.Interface,
			Params:    msg.Params,
			Early:     msg.Early,
		})
		if err != nil {
			return err
		}
	}
	for _, g := range c.Globals {
		sym := symbols.Symbol{Name: g.Name, Callable: g.Callable}
		if g.Type != "" {
			cls, ok := types.Lookup(g.Type)
			if !ok {
				return fmt.Errorf("global %s: unknown type %s", g.Name, g.Type)
			}
			sym.Type = cls
		}
		globals.Define(sym)
	}
	return nil
}
