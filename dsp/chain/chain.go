// Package chain builds ordered effect stacks from declarative node
// descriptions through a type registry.
package chain

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-synth/dsp/core"
)

// ErrUnknownEffect is returned when a node references an unregistered
// effect type.
var ErrUnknownEffect = errors.New("unknown effect type")

// Processor is the buffer-transform contract every chain node satisfies.
type Processor interface {
	Process(buf *core.StereoBuffer) error
}

// Node pairs one node description with the context it is built under.
type Node struct {
	Params Params
	Ctx    Context
}

// Chain is an ordered sequence of effect processors. Nodes process the
// buffer strictly in declaration order.
type Chain struct {
	processors []Processor
	types      []string
}

// New builds every non-bypassed node through the registry. Construction
// fails on the first unknown type or invalid parameter set.
func New(registry *Registry, nodes []Node) (*Chain, error) {
	if registry == nil {
		return nil, errors.New("chain: nil registry")
	}

	c := &Chain{}

	for i, node := range nodes {
		if node.Params.Bypassed {
			continue
		}

		factory := registry.Lookup(node.Params.Type)
		if factory == nil {
			return nil, fmt.Errorf("chain node %d: %w: %q", i, ErrUnknownEffect, node.Params.Type)
		}

		proc, err := factory(node.Ctx, node.Params)
		if err != nil {
			return nil, fmt.Errorf("chain node %d (%s): %w", i, node.Params.Type, err)
		}

		c.processors = append(c.processors, proc)
		c.types = append(c.types, node.Params.Type)
	}

	return c, nil
}

// Process runs the buffer through every node in order.
func (c *Chain) Process(buf *core.StereoBuffer) error {
	for i, proc := range c.processors {
		if err := proc.Process(buf); err != nil {
			return fmt.Errorf("chain node %d (%s): %w", i, c.types[i], err)
		}
	}

	return nil
}

// Len returns the number of active nodes.
func (c *Chain) Len() int {
	return len(c.processors)
}
