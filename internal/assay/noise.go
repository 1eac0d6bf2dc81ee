package assay

import "math/rand/v2"

// applyCV perturbs a mean with multiplicative gaussian noise at the given
// coefficient of variation. The draw is always consumed so stream position
// does not depend on the configured CV; with cv == 0 the mean is returned
// exactly, not approximately.
func applyCV(mean, cv, inflation float64, rng *rand.Rand) float64 {
	z := rng.NormFloat64()
	if cv <= 0 {
		return mean
	}
	out := mean * (1 + cv*inflation*z)
	if out < 0 {
		out = 0
	}
	return out
}
