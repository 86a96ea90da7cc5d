package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/valery1707/wro4j/model"
)

// groupsFile is the on-disk model schema:
//
//	groups:
//	  - name: core
//	    resources:
//	      - uri: /static/a.css
//	        type: css
type groupsFile struct {
	Groups []groupEntry `yaml:"groups"`
}

type groupEntry struct {
	Name      string          `yaml:"name"`
	Resources []resourceEntry `yaml:"resources"`
}

type resourceEntry struct {
	URI  string `yaml:"uri"`
	Type string `yaml:"type"`
}

// LoadModel parses a YAML group file into the entity graph. Resource and
// group order in the file is preserved.
func LoadModel(path string) (*model.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read model file: %w", err)
	}
	return ParseModel(data)
}

// ParseModel parses YAML group definitions from memory.
func ParseModel(data []byte) (*model.Model, error) {
	var file groupsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("config: parse model: %w", err)
	}

	groups := make([]model.Group, 0, len(file.Groups))
	for _, g := range file.Groups {
		if g.Name == "" {
			return nil, fmt.Errorf("config: group without name")
		}
		resources := make([]model.Resource, 0, len(g.Resources))
		for _, r := range g.Resources {
			t, ok := model.ParseResourceType(r.Type)
			if !ok {
				return nil, fmt.Errorf("config: group %q: unknown resource type %q", g.Name, r.Type)
			}
			resources = append(resources, model.Resource{URI: r.URI, Type: t})
		}
		groups = append(groups, model.Group{Name: g.Name, Resources: resources})
	}
	return model.New(groups...), nil
}

// NewModelFactory returns a model.Factory that re-reads the group file on
// every Create, so a surrounding reload scheduler picks up edits.
func NewModelFactory(path string) model.Factory {
	return model.FactoryFunc(func() (*model.Model, error) {
		return LoadModel(path)
	})
}
