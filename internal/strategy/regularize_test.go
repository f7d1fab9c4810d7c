package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/descent-ml/descent/internal/linalg"
	"github.com/descent-ml/descent/internal/optimize"
)

func TestWithL2(t *testing.T) {
	base := optimize.Func[[]float64](func(x []float64) (float64, []float64) {
		return linalg.Dot(x, x), linalg.Scale(2, x)
	})

	f := WithL2(base, 0.5)
	x := []float64{2, -2}
	value, grad := f.Calculate(x)

	// f(x) + (lambda/2)||x||^2 = 8 + 0.25*8 = 10
	assert.InDelta(t, 10, value, 1e-12)
	// grad + lambda*x = (4,-4) + (1,-1)
	assert.InDelta(t, 5, grad[0], 1e-12)
	assert.InDelta(t, -5, grad[1], 1e-12)
}

func TestWithL2_ZeroLambdaIsIdentity(t *testing.T) {
	base := optimize.Func[[]float64](func(x []float64) (float64, []float64) {
		return 7, []float64{1}
	})
	f := WithL2(base, 0)
	value, grad := f.Calculate([]float64{100})
	assert.Equal(t, 7.0, value)
	assert.Equal(t, []float64{1}, grad)
}

func TestL2Adjuster(t *testing.T) {
	a := L2Adjuster{Lambda: 2}
	value, grad := a.Adjust([]float64{1, 2}, []float64{0, 0}, 3)
	assert.InDelta(t, 3+5.0, value, 1e-12) // 3 + (2/2)*(1+4)
	assert.Equal(t, []float64{2, 4}, grad)
}

func TestL1Pseudo(t *testing.T) {
	a := L1Pseudo{Lambda: 1}

	tests := []struct {
		name string
		x    float64
		g    float64
		want float64
	}{
		{"positive coordinate", 2, 0.5, 1.5},
		{"negative coordinate", -2, 0.5, -0.5},
		{"zero, gradient pushes right", 0, -3, -2},
		{"zero, gradient pushes left", 0, 3, 2},
		{"zero, inside subdifferential", 0, 0.5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, adj := a.Adjust([]float64{tt.x}, []float64{tt.g}, 10)
			require.Len(t, adj, 1)
			assert.InDelta(t, tt.want, adj[0], 1e-12)
			assert.InDelta(t, 10+abs(tt.x), value, 1e-12)
		})
	}
}

func TestSoftThreshold(t *testing.T) {
	assert.Equal(t, 0.0, softThreshold(0.3, 0.5))
	assert.Equal(t, 0.0, softThreshold(-0.5, 0.5))
	assert.InDelta(t, 0.5, softThreshold(1, 0.5), 1e-12)
	assert.InDelta(t, -1.5, softThreshold(-2, 0.5), 1e-12)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
