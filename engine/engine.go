// Package engine renders declarative audio specifications: deterministic
// layered synthesis, envelope shaping, constant-power mixing, and a
// sequential stereo effect chain.
package engine

import (
	"fmt"
	"strconv"

	"github.com/cwbudde/algo-synth/dsp/chain"
	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/envelope"
	"github.com/cwbudde/algo-synth/dsp/mix"
	"github.com/cwbudde/algo-synth/dsp/rng"
	"github.com/cwbudde/algo-synth/dsp/synth"
	"github.com/cwbudde/algo-vecmath"
)

const (
	defaultSampleRate = 44100.0

	minDuration = 0.001
	maxDuration = 600.0
)

// Layer describes one synthesized voice of a Spec.
type Layer struct {
	Synth    synth.Params
	Envelope *envelope.ADSRParams // nil leaves the layer unshaped
	Volume   float64
	Pan      float64
}

// Spec is a complete, self-contained description of one render. The same
// Spec and seed always produce byte-identical output.
type Spec struct {
	Seed     uint32
	Duration float64 // seconds
	Layers   []Layer
	Effects  []chain.Params
}

// Engine renders Specs at a fixed sample rate. A single Engine is safe for
// concurrent Generate calls; every call derives its own generator streams
// and processor instances.
type Engine struct {
	sampleRate float64
	normalize  bool
	registry   *chain.Registry
}

// Option configures an Engine.
type Option func(*Engine) error

// WithSampleRate sets the render sample rate in Hz.
func WithSampleRate(rate float64) Option {
	return func(e *Engine) error {
		if err := core.CheckRange("engine.sample_rate", rate, 8000, 192000); err != nil {
			return err
		}

		e.sampleRate = rate

		return nil
	}
}

// WithNormalize scales each mix so its pre-effects peak sits at unity
// whenever the raw layer sum exceeds it.
func WithNormalize() Option {
	return func(e *Engine) error {
		e.normalize = true
		return nil
	}
}

// WithRegistry replaces the default effect registry.
func WithRegistry(r *chain.Registry) Option {
	return func(e *Engine) error {
		if r == nil {
			return fmt.Errorf("engine: nil registry")
		}

		e.registry = r

		return nil
	}
}

// New creates an engine with the default sample rate and effect registry.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		sampleRate: defaultSampleRate,
		registry:   chain.DefaultRegistry(),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// SampleRate returns the configured render rate in Hz.
func (e *Engine) SampleRate() float64 { return e.sampleRate }

// Generate renders the Spec into a stereo buffer.
//
// Every parameter of every layer and effect is validated before any audio
// is rendered, so an invalid Spec fails the whole call without partial
// work. Rendering itself does no I/O and starts no goroutines.
func (e *Engine) Generate(spec Spec) (*core.StereoBuffer, error) {
	if err := e.validate(spec); err != nil {
		return nil, err
	}

	// Building the chain first also validates every effect parameter set.
	fx, err := e.buildChain(spec)
	if err != nil {
		return nil, err
	}

	n := int(spec.Duration * e.sampleRate)
	if n < 1 {
		n = 1
	}

	layers := make([]mix.Layer, 0, len(spec.Layers))

	for i := range spec.Layers {
		layer := &spec.Layers[i]

		r := rng.ForComponent(spec.Seed, layerLabel(i))

		samples, err := synth.Render(layer.Synth, n, e.sampleRate, r)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}

		if layer.Envelope != nil {
			env, err := envelope.GenerateFixedDuration(*layer.Envelope, e.sampleRate, spec.Duration)
			if err != nil {
				return nil, fmt.Errorf("layer %d envelope: %w", i, err)
			}

			if len(env) > len(samples) {
				env = env[:len(samples)]
			}

			vecmath.MulBlockInPlace(samples[:len(env)], env)
			core.Zero(samples[len(env):])
		}

		layers = append(layers, mix.Layer{
			Samples: samples,
			Volume:  layer.Volume,
			Pan:     layer.Pan,
		})
	}

	var mixOpts []mix.Option
	if e.normalize {
		mixOpts = append(mixOpts, mix.WithNormalize())
	}

	buf, err := mix.NewMixer(mixOpts...).Mix(layers)
	if err != nil {
		return nil, err
	}

	if buf.Len() == 0 {
		buf = core.NewStereoBuffer(n)
	}

	if err := fx.Process(buf); err != nil {
		return nil, err
	}

	return buf, nil
}

// validate checks the whole Spec before any rendering happens.
func (e *Engine) validate(spec Spec) error {
	if err := core.CheckRange("engine.duration", spec.Duration, minDuration, maxDuration); err != nil {
		return err
	}

	for i := range spec.Layers {
		layer := &spec.Layers[i]

		if layer.Synth == nil {
			return fmt.Errorf("layer %d: missing synth parameters", i)
		}

		if err := layer.Synth.Validate(); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}

		if layer.Envelope != nil {
			if err := layer.Envelope.Validate(); err != nil {
				return fmt.Errorf("layer %d envelope: %w", i, err)
			}
		}

		if err := core.CheckRange("engine.volume", layer.Volume, 0, 1); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}

		if err := core.CheckRange("engine.pan", layer.Pan, 0, 1); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
	}

	return nil
}

// buildChain constructs the effect stack with one derived random stream per
// node, keyed by position and type so inserting a node never perturbs the
// streams of nodes before it.
func (e *Engine) buildChain(spec Spec) (*chain.Chain, error) {
	nodes := make([]chain.Node, 0, len(spec.Effects))

	for i, params := range spec.Effects {
		nodes = append(nodes, chain.Node{
			Params: params,
			Ctx: chain.Context{
				SampleRate: e.sampleRate,
				Rand:       rng.ForComponent(spec.Seed, effectLabel(i, params.Type)),
			},
		})
	}

	return chain.New(e.registry, nodes)
}

func layerLabel(i int) string {
	return "layer/" + strconv.Itoa(i) + "/synth"
}

func effectLabel(i int, effectType string) string {
	return "fx/" + strconv.Itoa(i) + "/" + effectType
}
