package metric

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTanimoto(t *testing.T) {
	tests := []struct {
		name           string
		common, na, nb int
		want           float64
	}{
		{"identical", 5, 5, 5, 1.0},
		{"disjoint", 0, 4, 6, 0.0},
		{"half_overlap", 2, 4, 4, 2.0 / 6.0},
		{"subset", 3, 3, 6, 0.5},
		{"both_empty", 0, 0, 0, 1.0},
		{"one_empty", 0, 0, 5, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Tanimoto(tt.common, tt.na, tt.nb), 1e-12)
			// Symmetric in the graph sizes.
			assert.InDelta(t, tt.want, Tanimoto(tt.common, tt.nb, tt.na), 1e-12)
		})
	}
}

func TestTanimoto_Range(t *testing.T) {
	for common := 0; common <= 4; common++ {
		for na := common; na <= 8; na++ {
			for nb := common; nb <= 8; nb++ {
				v := Tanimoto(common, na, nb)
				assert.GreaterOrEqual(t, v, 0.0)
				assert.LessOrEqual(t, v, 1.0)
			}
		}
	}
}

func TestDistance(t *testing.T) {
	assert.Equal(t, 0, Distance(5, 5, 5))
	assert.Equal(t, 3, Distance(3, 4, 6))
	assert.Equal(t, 6, Distance(0, 2, 6))
	assert.Equal(t, 0, Distance(0, 0, 0))
	// Symmetric in the graph sizes.
	assert.Equal(t, Distance(2, 3, 7), Distance(2, 7, 3))
}

func TestGLS(t *testing.T) {
	assert.InDelta(t, 1.0, GLS(5, 5, 5), 1e-12)
	assert.InDelta(t, 1.0, GLS(0, 0, 0), 1e-12)
	assert.InDelta(t, 0.0, GLS(0, 3, 3), 1e-12)

	// The size-ratio damping: same overlap, growing size mismatch scores
	// strictly lower.
	even := GLS(3, 3, 3)
	skew := GLS(3, 3, 6)
	assert.Greater(t, even, skew)
	assert.InDelta(t, 0.5*(4.0/7.0), skew, 1e-12)

	// Symmetric and bounded.
	for common := 0; common <= 3; common++ {
		for na := common; na <= 6; na++ {
			for nb := common; nb <= 6; nb++ {
				v := GLS(common, na, nb)
				assert.InDelta(t, v, GLS(common, nb, na), 1e-12)
				assert.GreaterOrEqual(t, v, 0.0)
				assert.LessOrEqual(t, v, 1.0)
			}
		}
	}
}

func TestGLS_MonotonicInCommon(t *testing.T) {
	prev := -1.0
	for common := 0; common <= 5; common++ {
		v := GLS(common, 5, 7)
		assert.Greater(t, v, prev)
		prev = v
	}
}
