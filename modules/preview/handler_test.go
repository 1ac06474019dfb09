package preview

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mythiq-video-creator/modules/common/config"
	generatevideo "mythiq-video-creator/modules/generate-video"
)

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()

	// No Gemini keys, so previews use the deterministic fallback line.
	config.SetConfigForTest(&config.Config{
		Device:              "cpu",
		MochiEndpoint:       "http://localhost:7860",
		CogVideoEndpoint:    "http://localhost:7861",
		AnimateDiffEndpoint: "http://localhost:7862",
		FFmpegPath:          "ffmpeg",
	})

	router := mux.NewRouter()
	NewHandler(generatevideo.NewService()).RegisterRoutes(router)
	return router
}

func postPreview(t *testing.T, router *mux.Router, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/generate-video-preview", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandlePreviewMissingPrompt(t *testing.T) {
	router := newTestRouter(t)

	for _, payload := range []string{`{}`, `{"prompt":""}`, `{"prompt":"  "}`} {
		rec := postPreview(t, router, payload)

		assert.Equal(t, http.StatusBadRequest, rec.Code, "payload: %s", payload)

		var resp PreviewResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, "Prompt is required", resp.Error)
	}
}

func TestHandlePreviewInvalidJSON(t *testing.T) {
	rec := postPreview(t, newTestRouter(t), "{not json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp PreviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Invalid request body", resp.Error)
}

func TestHandlePreviewPhotorealistic(t *testing.T) {
	rec := postPreview(t, newTestRouter(t), `{"prompt":"a golden retriever on a beach"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp PreviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Equal(t, "photorealistic", resp.RecommendedModel)
	assert.Contains(t, resp.Preview, "Mochi-1")

	// Cold pipeline: 6s * 45s/s render plus 90s load.
	assert.Equal(t, "~360 seconds", resp.EstimatedTime)
}

func TestHandlePreviewAnimationClampsDuration(t *testing.T) {
	rec := postPreview(t, newTestRouter(t), `{"prompt":"a cartoon robot dancing","duration":10}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp PreviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "animation", resp.RecommendedModel)
	assert.Contains(t, resp.Preview, "AnimateDiff")
	assert.Contains(t, resp.Preview, "2-second")

	// AnimateDiff caps at 2s: 2 * 20s/s render plus 40s load.
	assert.Equal(t, "~80 seconds", resp.EstimatedTime)
}

func TestHandlePreviewCreative(t *testing.T) {
	rec := postPreview(t, newTestRouter(t), `{"prompt":"abstract swirling colors","duration":3}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp PreviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "creative", resp.RecommendedModel)
	assert.Equal(t, "~150 seconds", resp.EstimatedTime)
}
