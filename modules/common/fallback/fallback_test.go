package fallback

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceholderPosterIsValidPNG(t *testing.T) {
	data, err := base64.StdEncoding.DecodeString(PlaceholderPosterBase64())
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	bounds := img.Bounds()
	assert.Equal(t, 1, bounds.Dx())
	assert.Equal(t, 1, bounds.Dy())
}

func TestSafeString(t *testing.T) {
	assert.Equal(t, "hello", SafeString("hello", "default"))
	assert.Equal(t, "hello", SafeString("  hello  ", "default"))
	assert.Equal(t, "default", SafeString("", "default"))
	assert.Equal(t, "default", SafeString("   ", "default"))
	assert.Equal(t, "default", SafeString(nil, "default"))
	assert.Equal(t, "default", SafeString(42, "default"))
}

func TestSafeInt(t *testing.T) {
	// JSON numbers arrive as float64.
	assert.Equal(t, 6, SafeInt(float64(6), 2))
	assert.Equal(t, 6, SafeInt(6, 2))
	assert.Equal(t, 6, SafeInt(int64(6), 2))
	assert.Equal(t, 6, SafeInt("6", 2))

	assert.Equal(t, 2, SafeInt(float64(0), 2))
	assert.Equal(t, 2, SafeInt(-1, 2))
	assert.Equal(t, 2, SafeInt("not a number", 2))
	assert.Equal(t, 2, SafeInt(nil, 2))
}
