package colorblend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLerpEndpoints(t *testing.T) {
	cases := []struct {
		name   string
		c1, c2 RGB
	}{
		{"black_white", RGB{0, 0, 0}, RGB{255, 255, 255}},
		{"violet_indigo", RGB{148, 0, 211}, RGB{75, 0, 130}},
		{"equal", RGB{10, 20, 30}, RGB{10, 20, 30}},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.c1, Lerp(tt.c1, tt.c2, 0))
			assert.Equal(t, tt.c2, Lerp(tt.c1, tt.c2, 1))
		})
	}
}

func TestLerpMidpoint(t *testing.T) {
	got := Lerp(RGB{0, 0, 0}, RGB{200, 100, 50}, 0.5)
	assert.Equal(t, RGB{100, 50, 25}, got)
}

func TestScaleTruncates(t *testing.T) {
	// 0.5 * 255 = 127.5, floor not round.
	got := Scale(RGB{255, 255, 255}, 0.5)
	assert.Equal(t, RGB{127, 127, 127}, got)
}

func TestScaleBounds(t *testing.T) {
	assert.Equal(t, RGB{0, 0, 0}, Scale(RGB{255, 69, 0}, 0))
	assert.Equal(t, RGB{255, 69, 0}, Scale(RGB{255, 69, 0}, 1))
}
