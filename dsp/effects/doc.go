// Package effects provides stereo buffer transforms: dynamics processors
// (lookahead limiter, true-peak limiter, gate) and delay-based modulation
// effects (flanger, multi-tap delay, granular delay).
//
// All effects share the same contract: parameters are validated at
// construction against documented closed intervals, Process mutates the
// buffer in place, and an empty buffer returns immediately.
package effects
