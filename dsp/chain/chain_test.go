package chain

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/rng"
)

const testRate = 44100.0

func testBuffer(n int) *core.StereoBuffer {
	buf := core.NewStereoBuffer(n)
	for i := range n {
		v := 0.8 * math.Sin(2*math.Pi*440*float64(i)/testRate)
		buf.Left[i] = v
		buf.Right[i] = v
	}

	return buf
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := NewRegistry()

	factory := func(_ Context, _ Params) (Processor, error) { return nil, nil }

	if err := r.Register("gate", factory); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	if err := r.Register("gate", factory); err == nil {
		t.Error("expected duplicate registration to fail")
	}

	if err := r.Register("", factory); err == nil {
		t.Error("expected empty type to fail")
	}

	if err := r.Register("x", nil); err == nil {
		t.Error("expected nil factory to fail")
	}
}

func TestDefaultRegistryTypes(t *testing.T) {
	r := DefaultRegistry()

	want := []string{"flanger", "gate", "granular_delay", "limiter", "multi_tap", "true_peak"}
	got := r.Types()

	if len(got) != len(want) {
		t.Fatalf("registered types: got %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("registered types: got %v, want %v", got, want)
		}
	}
}

func TestChainUnknownEffect(t *testing.T) {
	_, err := New(DefaultRegistry(), []Node{
		{Params: Params{Type: "reverb"}, Ctx: Context{SampleRate: testRate}},
	})

	if !errors.Is(err, ErrUnknownEffect) {
		t.Fatalf("expected ErrUnknownEffect, got %v", err)
	}
}

func TestChainInvalidParams(t *testing.T) {
	_, err := New(DefaultRegistry(), []Node{
		{
			Params: Params{Type: "limiter", Num: map[string]float64{"threshold_db": -30}},
			Ctx:    Context{SampleRate: testRate},
		},
	})

	if err == nil {
		t.Fatal("expected construction to fail on out-of-range threshold")
	}
}

func TestChainSkipsBypassedNodes(t *testing.T) {
	c, err := New(DefaultRegistry(), []Node{
		{Params: Params{Type: "flanger", Bypassed: true}, Ctx: Context{SampleRate: testRate}},
		{Params: Params{Type: "limiter"}, Ctx: Context{SampleRate: testRate}},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if c.Len() != 1 {
		t.Fatalf("expected 1 active node, got %d", c.Len())
	}
}

func TestChainProcessesInOrder(t *testing.T) {
	c, err := New(DefaultRegistry(), []Node{
		{
			Params: Params{Type: "flanger", Num: map[string]float64{"wet": 0.4}},
			Ctx:    Context{SampleRate: testRate},
		},
		{
			Params: Params{Type: "granular_delay"},
			Ctx:    Context{SampleRate: testRate, Rand: rng.New(7)},
		},
		{
			Params: Params{Type: "limiter", Num: map[string]float64{"threshold_db": -3}},
			Ctx:    Context{SampleRate: testRate},
		},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	buf := testBuffer(16384)
	if err := c.Process(buf); err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	ceiling := core.DBToLinear(-3)
	for i := range buf.Len() {
		if math.Abs(buf.Left[i]) > ceiling+1e-9 {
			t.Fatalf("final limiter did not hold ceiling at sample %d: %v", i, buf.Left[i])
		}
	}
}

func TestChainDeterministicRebuild(t *testing.T) {
	nodes := func() []Node {
		return []Node{
			{
				Params: Params{Type: "granular_delay", Num: map[string]float64{"jitter": 0.6}},
				Ctx:    Context{SampleRate: testRate, Rand: rng.New(11)},
			},
		}
	}

	run := func() *core.StereoBuffer {
		c, err := New(DefaultRegistry(), nodes())
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}

		buf := testBuffer(8192)
		if err := c.Process(buf); err != nil {
			t.Fatalf("Process failed: %v", err)
		}

		return buf
	}

	a := run()
	b := run()

	for i := range a.Len() {
		if a.Left[i] != b.Left[i] || a.Right[i] != b.Right[i] {
			t.Fatalf("rebuilt chain differs at sample %d", i)
		}
	}
}
