package state

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator produces fresh, previously unused handles.
type Generator interface {
	Next() Handle
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func() Handle

func (f GeneratorFunc) Next() Handle { return f() }

// UUIDGenerator issues random UUID handles.
type UUIDGenerator struct{}

func (UUIDGenerator) Next() Handle {
	return Handle(uuid.NewString())
}

// SequenceGenerator issues handles "<Prefix><n>" with n counting from 1.
// It also records how many handles it has produced.
type SequenceGenerator struct {
	Prefix string
	Issued int
}

func (g *SequenceGenerator) Next() Handle {
	g.Issued++
	return Handle(fmt.Sprintf("%s%d", g.Prefix, g.Issued))
}
