package match

import "math"

// CosineSimilarity returns dot(a,b) / (|a|*|b|) in [0,1] for normalized
// inputs. Mismatched dimensions or a zero-magnitude vector yield 0; the
// function never divides by zero and never panics on shape mismatch.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}

	magA = math.Sqrt(magA)
	magB = math.Sqrt(magB)
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (magA * magB)
}
