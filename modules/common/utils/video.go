package utils

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"log"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
)

// VideoDataPrefix is the data-URL prefix for encoded MP4 payloads.
const VideoDataPrefix = "data:video/mp4;base64,"

// VideoDataURL wraps MP4 bytes as a base64 data URL.
func VideoDataURL(videoData []byte) string {
	return VideoDataPrefix + base64.StdEncoding.EncodeToString(videoData)
}

// EncodeFramesToMP4 writes PNG frames into a temp workspace and runs
// ffmpeg to produce an MP4. The workspace is removed on every path,
// success or failure.
func EncodeFramesToMP4(ffmpegPath string, frames [][]byte, fps int) ([]byte, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("no frames to encode")
	}
	if fps <= 0 {
		fps = 8
	}

	if _, err := exec.LookPath(ffmpegPath); err != nil {
		return nil, fmt.Errorf("ffmpeg not found at %q: %w", ffmpegPath, err)
	}

	tempDir, err := os.MkdirTemp("", "mythiq_encode")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	for i, frame := range frames {
		framePath := filepath.Join(tempDir, fmt.Sprintf("frame_%05d.png", i))
		if err := os.WriteFile(framePath, frame, 0644); err != nil {
			return nil, fmt.Errorf("failed to write frame %d: %w", i, err)
		}
	}

	outputPath := filepath.Join(tempDir, "output.mp4")
	cmd := exec.Command(ffmpegPath,
		"-y",
		"-framerate", fmt.Sprintf("%d", fps),
		"-i", filepath.Join(tempDir, "frame_%05d.png"),
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-movflags", "+faststart",
		outputPath)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	log.Printf("🎞️  Encoding %d frames at %d fps", len(frames), fps)
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg failed: %w (%s)", err, truncateString(stderr.String(), 300))
	}

	videoData, err := os.ReadFile(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read encoded video: %w", err)
	}

	log.Printf("✅ Encoded video: %d bytes", len(videoData))
	return videoData, nil
}

// PosterWebPBase64 converts the first frame of a generation into a
// WebP poster and returns it base64-encoded.
func PosterWebPBase64(pngFrame []byte, quality float32) (string, error) {
	img, err := png.Decode(bytes.NewReader(pngFrame))
	if err != nil {
		return "", fmt.Errorf("failed to decode poster frame: %w", err)
	}

	options, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, quality)
	if err != nil {
		return "", fmt.Errorf("failed to create WebP encoder options: %w", err)
	}

	var webpBuffer bytes.Buffer
	if err := webp.Encode(&webpBuffer, img, options); err != nil {
		return "", fmt.Errorf("failed to encode WebP poster: %w", err)
	}

	webpData := webpBuffer.Bytes()
	log.Printf("✅ Poster rendered: %d bytes → %d bytes WebP", len(pngFrame), len(webpData))

	return base64.StdEncoding.EncodeToString(webpData), nil
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
