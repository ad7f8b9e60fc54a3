package led

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseColor_Hex(t *testing.T) {
	c, err := ParseColor("#FF8800")
	assert.NoError(t, err)
	assert.Equal(t, RGB{255, 136, 0}, c)

	c, err = ParseColor("#000000")
	assert.NoError(t, err)
	assert.Equal(t, RGB{0, 0, 0}, c)

	_, err = ParseColor("#FFF")
	assert.ErrorIs(t, err, ErrInvalidColor)

	_, err = ParseColor("#GGHHII")
	assert.ErrorIs(t, err, ErrInvalidColor)
}

func TestParseColor_RGBFunc(t *testing.T) {
	c, err := ParseColor("rgb(10, 20, 30)")
	assert.NoError(t, err)
	assert.Equal(t, RGB{10, 20, 30}, c)

	c, err = ParseColor("RGB(255,255,255)")
	assert.NoError(t, err)
	assert.Equal(t, RGB{255, 255, 255}, c)

	_, err = ParseColor("rgb(256,0,0)")
	assert.ErrorIs(t, err, ErrInvalidColor)

	_, err = ParseColor("rgb(-1,0,0)")
	assert.ErrorIs(t, err, ErrInvalidColor)

	_, err = ParseColor("rgb(1,2)")
	assert.ErrorIs(t, err, ErrInvalidColor)
}

func TestParseColor_Named(t *testing.T) {
	c, err := ParseColor("red")
	assert.NoError(t, err)
	assert.Equal(t, RGB{255, 0, 0}, c)

	c, err = ParseColor("ORANGE")
	assert.NoError(t, err)
	assert.Equal(t, RGB{255, 165, 0}, c)

	c, err = ParseColor("  pink  ")
	assert.NoError(t, err)
	assert.Equal(t, RGB{255, 192, 203}, c)

	_, err = ParseColor("chartreuse")
	assert.ErrorIs(t, err, ErrInvalidColor)

	_, err = ParseColor("")
	assert.ErrorIs(t, err, ErrInvalidColor)
}
