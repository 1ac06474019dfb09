package utils

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoDataURL(t *testing.T) {
	payload := []byte("fake-mp4-bytes")
	url := VideoDataURL(payload)

	require.True(t, strings.HasPrefix(url, VideoDataPrefix))

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, VideoDataPrefix))
	require.NoError(t, err)
	assert.Equal(t, payload, decoded)
}

func TestVideoDataURLEmpty(t *testing.T) {
	assert.Equal(t, VideoDataPrefix, VideoDataURL(nil))
}

func TestEncodeFramesToMP4NoFrames(t *testing.T) {
	_, err := EncodeFramesToMP4("ffmpeg", nil, 8)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no frames")
}

func TestEncodeFramesToMP4MissingBinary(t *testing.T) {
	_, err := EncodeFramesToMP4("definitely-not-ffmpeg-xyz", [][]byte{[]byte("frame")}, 8)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ffmpeg not found")
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "exact", truncateString("exact", 5))
	assert.Equal(t, "abc...", truncateString("abcdef", 3))
}
