package fixture

import (
	"fmt"

	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/host/memhost"
	"github.com/vango-dev/reconcile/pkg/reconcile"
)

// ContainerTag is the tag of the element fixtures render into.
const ContainerTag = "body"

// Session plays a fixture against its own document. A Session is not safe
// for concurrent use.
type Session struct {
	Doc       *memhost.Document
	Container *memhost.Node
	Renderer  *reconcile.Renderer

	fixture *Fixture
	reg     Registry
	next    int
}

// NewSession prepares a renderer over a fresh document. No step is applied.
func NewSession(f *Fixture, reg Registry, opts ...reconcile.Option) *Session {
	doc := memhost.NewDocument()
	container := doc.Element(ContainerTag)
	doc.Drain()
	return &Session{
		Doc:       doc,
		Container: container,
		Renderer:  reconcile.New(doc, opts...),
		fixture:   f,
		reg:       reg,
	}
}

// Fixture returns the fixture being played.
func (s *Session) Fixture() *Fixture { return s.fixture }

// Position returns the number of steps applied so far.
func (s *Session) Position() int { return s.next }

// Done reports whether every step was applied.
func (s *Session) Done() bool { return s.next >= len(s.fixture.Steps) }

// Step applies the next step and returns the host mutations it caused.
func (s *Session) Step() ([]memhost.Mutation, error) {
	if s.Done() {
		return nil, errors.New("V171").
			WithDetail(fmt.Sprintf("%s has %d steps", s.fixture.Name, len(s.fixture.Steps)))
	}
	step := s.fixture.Steps[s.next]
	s.next++

	if step.Tree != nil {
		s.Renderer.Render(s.Container, step.Tree.Build(s.reg))
		return s.Doc.Drain(), nil
	}

	target := s.FindByID(step.Dispatch.ID)
	if target == nil {
		return nil, errors.New("F104").
			WithDetail(step.Label(s.next-1) + ": no element with id " + step.Dispatch.ID)
	}
	return s.dispatch(target, step.Dispatch.Event, step.Dispatch.Value)
}

// Run applies every remaining step.
func (s *Session) Run() error {
	for !s.Done() {
		if _, err := s.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Dispatch fires event on the host node with the given node id, as a
// connected client would, and returns the mutations of the re-render.
func (s *Session) Dispatch(nodeID uint64, event, value string) ([]memhost.Mutation, error) {
	target := s.Doc.NodeByID(nodeID)
	if target == nil {
		return nil, errors.New("V170").WithDetail(fmt.Sprintf("No host node %d", nodeID))
	}
	return s.dispatch(target, event, value)
}

func (s *Session) dispatch(target *memhost.Node, event, value string) ([]memhost.Mutation, error) {
	if err := target.Dispatch(event, value); err != nil {
		return nil, errors.New("V170").Wrap(err)
	}
	s.Renderer.Flush()
	return s.Doc.Drain(), nil
}

// FindByID returns the element under the container whose id attribute is
// id, or nil.
func (s *Session) FindByID(id string) *memhost.Node {
	return findByID(s.Container, id)
}

func findByID(n *memhost.Node, id string) *memhost.Node {
	for _, c := range n.Children() {
		if v, ok := c.Attr("id"); ok && v == id {
			return c
		}
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}
