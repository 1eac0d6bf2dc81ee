// Package run holds the per-run latent context of a simulation: isolated
// random streams, the sampled batch-effect profile biasing biology, and the
// drift model biasing measurement. Biology and measurement sides are kept
// strictly apart so that observing a vessel can never change it.
package run

import "math/rand/v2"

// Stream offsets separate the three random streams owned by a VM. Each
// stream is a PCG generator keyed by (seed, offset); the offsets are part of
// the reproducibility contract and must not change between releases.
const (
	// StreamBiology drives cell-intrinsic random effects and contamination
	// events. Swapping it changes trajectories, never measurements directly.
	StreamBiology uint64 = 11
	// StreamTreatment is reserved for treatment-side stochasticity. It is
	// constructed but never drawn from, so introducing treatment noise later
	// cannot perturb the biology or assay streams.
	StreamTreatment uint64 = 223
	// StreamAssay drives measurement noise only. Swapping it changes
	// observed values while leaving every biological field bit-identical.
	StreamAssay uint64 = 4001

	// batchProfileSeedOffset derives the run batch profile seed from the run seed.
	batchProfileSeedOffset uint64 = 999
	// driftSeedOffset derives the measurement drift seed from the run seed.
	driftSeedOffset uint64 = 1777
)

// NewStream returns an isolated deterministic generator for one stream of a
// vessel or run seed.
func NewStream(seed, offset uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, offset))
}
