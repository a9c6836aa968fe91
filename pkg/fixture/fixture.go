package fixture

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/component"
	"github.com/vango-dev/reconcile/pkg/vdom"
	"gopkg.in/yaml.v3"
)

// Fixture is a named sequence of steps.
type Fixture struct {
	Name  string  `yaml:"name,omitempty"`
	Steps []*Step `yaml:"steps"`
}

// Step renders Tree or, when Dispatch is set, fires an event.
type Step struct {
	Name     string    `yaml:"name,omitempty"`
	Tree     *Node     `yaml:"tree,omitempty"`
	Dispatch *Dispatch `yaml:"dispatch,omitempty"`
}

// Label returns the step name or its position.
func (s *Step) Label(i int) string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("step %d", i+1)
}

// Dispatch fires Event on the element whose id attribute is ID.
type Dispatch struct {
	ID    string `yaml:"id"`
	Event string `yaml:"event"`
	Value string `yaml:"value,omitempty"`
}

// Node describes one position of a tree.
type Node struct {
	Tag       string         `yaml:"tag,omitempty"`
	Text      *string        `yaml:"text,omitempty"`
	Component string         `yaml:"component,omitempty"`
	Fragment  bool           `yaml:"fragment,omitempty"`
	Key       string         `yaml:"key,omitempty"`
	Props     map[string]any `yaml:"props,omitempty"`
	HTML      string         `yaml:"html,omitempty"`
	Children  []*Node        `yaml:"children,omitempty"`
}

// Registry maps fixture component names to types.
type Registry map[string]*component.Type

// Parse decodes a fixture and validates it against reg.
func Parse(data []byte, reg Registry) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.New("F100").Wrap(err).
			WithSuggestion("Check the YAML syntax of the fixture")
	}
	if err := f.Validate(reg); err != nil {
		return nil, err
	}
	return &f, nil
}

// Load reads and parses a fixture file. A fixture without a name is named
// after the file.
func Load(path string, reg Registry) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("F100").Wrap(err).WithDetail("Cannot read " + path)
	}
	f, err := Parse(data, reg)
	if err != nil {
		return nil, err
	}
	if f.Name == "" {
		f.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return f, nil
}

// Validate checks every step and node.
func (f *Fixture) Validate(reg Registry) error {
	if len(f.Steps) == 0 {
		return errors.New("F101").WithDetail("The fixture has no steps")
	}
	for i, s := range f.Steps {
		switch {
		case s == nil || (s.Tree == nil && s.Dispatch == nil):
			return errors.New("F101").WithDetail(fmt.Sprintf("Step %d has neither tree nor dispatch", i+1))
		case s.Tree != nil && s.Dispatch != nil:
			return errors.New("F101").WithDetail(s.Label(i) + " has both tree and dispatch")
		case s.Dispatch != nil:
			if s.Dispatch.ID == "" || s.Dispatch.Event == "" {
				return errors.New("F101").WithDetail(s.Label(i) + " dispatch needs id and event")
			}
		default:
			if err := s.Tree.validate(reg, s.Label(i)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (n *Node) validate(reg Registry, where string) error {
	if n == nil {
		return errors.New("F103").WithDetail(where + ": empty node")
	}
	kinds := 0
	if n.Tag != "" {
		kinds++
	}
	if n.Text != nil {
		kinds++
	}
	if n.Component != "" {
		kinds++
		if _, ok := reg[n.Component]; !ok {
			return errors.New("F102").WithNode(n.Component).
				WithDetail(where + ": no component named " + n.Component)
		}
	}
	if n.Fragment {
		kinds++
	}
	if kinds != 1 {
		return errors.New("F103").WithDetail(where + ": " + n.describe())
	}
	if n.HTML != "" && (n.Tag == "" || len(n.Children) > 0) {
		return errors.New("F103").WithDetail(where + ": html is only allowed on an element without children")
	}
	for _, c := range n.Children {
		if err := c.validate(reg, where); err != nil {
			return err
		}
	}
	return nil
}

func (n *Node) describe() string {
	var parts []string
	if n.Tag != "" {
		parts = append(parts, "tag "+n.Tag)
	}
	if n.Text != nil {
		parts = append(parts, "text")
	}
	if n.Component != "" {
		parts = append(parts, "component "+n.Component)
	}
	if n.Fragment {
		parts = append(parts, "fragment")
	}
	if len(parts) == 0 {
		return "node declares no kind"
	}
	return "node declares " + strings.Join(parts, " and ")
}

// Build converts n into a description. n must have been validated.
func (n *Node) Build(reg Registry) *vdom.VNode {
	kids := make([]any, 0, len(n.Children))
	for _, c := range n.Children {
		kids = append(kids, c.Build(reg))
	}

	var v *vdom.VNode
	switch {
	case n.Text != nil:
		v = vdom.Text(*n.Text)
	case n.Component != "":
		v = vdom.C(reg[n.Component], n.Props, kids...)
	case n.Fragment:
		v = vdom.Fragment(kids...)
	default:
		args := make([]any, 0, len(n.Props)+len(kids)+1)
		for k, val := range n.Props {
			args = append(args, vdom.Attr{Key: k, Value: val})
		}
		if n.HTML != "" {
			args = append(args, vdom.DangerouslySetInnerHTML(n.HTML))
		}
		v = vdom.H(n.Tag, append(args, kids...)...)
	}
	if n.Key != "" {
		v.Key = n.Key
	}
	return v
}
