// Package patch reads and writes YAML descriptions of engine
// specifications. A patch file is a declarative document: it maps directly
// onto engine.Spec fields and carries no logic of its own, so the numeric
// validation performed by the engine is the single source of truth.
package patch

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-synth/dsp/chain"
	"github.com/cwbudde/algo-synth/dsp/effects"
	"github.com/cwbudde/algo-synth/dsp/envelope"
	"github.com/cwbudde/algo-synth/engine"
)

// Document is the YAML shape of one patch file.
type Document struct {
	Seed     uint32     `yaml:"seed"`
	Duration float64    `yaml:"duration"`
	Layers   []LayerDoc `yaml:"layers"`
	Effects  []FXDoc    `yaml:"effects,omitempty"`
}

// LayerDoc is the YAML shape of one layer.
type LayerDoc struct {
	Synth    SynthDoc     `yaml:"synth"`
	Envelope *EnvelopeDoc `yaml:"envelope,omitempty"`
	Volume   float64      `yaml:"volume"`
	Pan      float64      `yaml:"pan"`
}

// EnvelopeDoc is the YAML shape of an ADSR envelope.
type EnvelopeDoc struct {
	Attack  float64 `yaml:"attack"`
	Decay   float64 `yaml:"decay"`
	Sustain float64 `yaml:"sustain"`
	Release float64 `yaml:"release"`
}

// FXDoc is the YAML shape of one effect node.
type FXDoc struct {
	Type     string             `yaml:"type"`
	Bypassed bool               `yaml:"bypassed,omitempty"`
	Params   map[string]float64 `yaml:"params,omitempty"`
	Taps     []TapDoc           `yaml:"taps,omitempty"`
}

// TapDoc is the YAML shape of one multi-tap delay tap.
type TapDoc struct {
	DelayMs  float64 `yaml:"delay_ms"`
	Level    float64 `yaml:"level"`
	Pan      float64 `yaml:"pan"`
	CutoffHz float64 `yaml:"cutoff_hz,omitempty"`
}

// Parse decodes a YAML patch into an engine Spec. Unknown fields are
// rejected so typos surface as errors instead of silent defaults.
func Parse(data []byte) (engine.Spec, error) {
	var doc Document

	dec := newStrictDecoder(data)
	if err := dec.Decode(&doc); err != nil {
		return engine.Spec{}, fmt.Errorf("patch: %w", err)
	}

	return docToSpec(doc)
}

// Marshal encodes a Spec as a YAML patch.
func Marshal(spec engine.Spec) ([]byte, error) {
	doc, err := specToDoc(spec)
	if err != nil {
		return nil, err
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("patch: %w", err)
	}

	return out, nil
}

func docToSpec(doc Document) (engine.Spec, error) {
	spec := engine.Spec{
		Seed:     doc.Seed,
		Duration: doc.Duration,
	}

	for i, layer := range doc.Layers {
		params, err := layer.Synth.toParams()
		if err != nil {
			return engine.Spec{}, fmt.Errorf("patch layer %d: %w", i, err)
		}

		var env *envelope.ADSRParams
		if layer.Envelope != nil {
			env = &envelope.ADSRParams{
				Attack:  layer.Envelope.Attack,
				Decay:   layer.Envelope.Decay,
				Sustain: layer.Envelope.Sustain,
				Release: layer.Envelope.Release,
			}
		}

		spec.Layers = append(spec.Layers, engine.Layer{
			Synth:    params,
			Envelope: env,
			Volume:   layer.Volume,
			Pan:      layer.Pan,
		})
	}

	for _, fx := range doc.Effects {
		node := chain.Params{
			Type:     fx.Type,
			Bypassed: fx.Bypassed,
			Num:      fx.Params,
		}

		for _, tap := range fx.Taps {
			node.Taps = append(node.Taps, effects.Tap{
				DelayMs:  tap.DelayMs,
				Level:    tap.Level,
				Pan:      tap.Pan,
				CutoffHz: tap.CutoffHz,
			})
		}

		spec.Effects = append(spec.Effects, node)
	}

	return spec, nil
}

func specToDoc(spec engine.Spec) (Document, error) {
	doc := Document{
		Seed:     spec.Seed,
		Duration: spec.Duration,
	}

	for i, layer := range spec.Layers {
		synthDoc, err := fromParams(layer.Synth)
		if err != nil {
			return Document{}, fmt.Errorf("patch layer %d: %w", i, err)
		}

		layerDoc := LayerDoc{
			Synth:  synthDoc,
			Volume: layer.Volume,
			Pan:    layer.Pan,
		}

		if layer.Envelope != nil {
			layerDoc.Envelope = &EnvelopeDoc{
				Attack:  layer.Envelope.Attack,
				Decay:   layer.Envelope.Decay,
				Sustain: layer.Envelope.Sustain,
				Release: layer.Envelope.Release,
			}
		}

		doc.Layers = append(doc.Layers, layerDoc)
	}

	for _, fx := range spec.Effects {
		fxDoc := FXDoc{
			Type:     fx.Type,
			Bypassed: fx.Bypassed,
			Params:   fx.Num,
		}

		for _, tap := range fx.Taps {
			fxDoc.Taps = append(fxDoc.Taps, TapDoc{
				DelayMs:  tap.DelayMs,
				Level:    tap.Level,
				Pan:      tap.Pan,
				CutoffHz: tap.CutoffHz,
			})
		}

		doc.Effects = append(doc.Effects, fxDoc)
	}

	return doc, nil
}
