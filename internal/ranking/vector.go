package ranking

import "math"

// Vector is a sparse vector. Indices are strictly increasing and aligned with Values.
type Vector struct {
	Indices []int
	Values  []float64
}

// Norm returns the Euclidean length of v.
func (v Vector) Norm() float64 {
	sum := 0.0
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Dot returns the inner product of a and b.
func Dot(a, b Vector) float64 {
	sum := 0.0
	i, j := 0, 0
	for i < len(a.Indices) && j < len(b.Indices) {
		switch {
		case a.Indices[i] == b.Indices[j]:
			sum += a.Values[i] * b.Values[j]
			i++
			j++
		case a.Indices[i] < b.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Cosine returns the cosine similarity of a and b clamped to [0,1].
// Zero-magnitude vectors have similarity 0 with everything.
func Cosine(a, b Vector) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	sim := Dot(a, b) / (na * nb)
	// TF-IDF weights are non-negative; clamp float drift
	switch {
	case math.IsNaN(sim) || sim < 0:
		return 0
	case sim > 1:
		return 1
	}
	return sim
}
