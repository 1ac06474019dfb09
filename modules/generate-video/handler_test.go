package generatevideo

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mythiq-video-creator/modules/common/utils"
	"mythiq-video-creator/modules/progress"
)

func newTestRouter(svc *Service) *mux.Router {
	r := mux.NewRouter()
	NewHandler(svc, nil, nil, progress.NewHub()).RegisterRoutes(r)
	return r
}

func postJSON(t *testing.T, router *mux.Router, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandleGenerateInvalidJSON(t *testing.T) {
	svc, _ := newStubService()
	rec := postJSON(t, newTestRouter(svc), "/generate-video", "{not json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid request body", body["error"])
}

func TestHandleGenerateMissingPrompt(t *testing.T) {
	svc, _ := newStubService()
	router := newTestRouter(svc)

	for _, payload := range []string{`{}`, `{"prompt":""}`, `{"prompt":"   "}`} {
		rec := postJSON(t, router, "/generate-video", payload)

		assert.Equal(t, http.StatusBadRequest, rec.Code, "payload: %s", payload)
		body := decodeBody(t, rec)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Prompt is required", body["error"])
	}
}

func TestHandleGenerateSuccess(t *testing.T) {
	svc, _ := newStubService()
	rec := postJSON(t, newTestRouter(svc), "/generate-video",
		`{"prompt":"a cartoon cat","duration":2}`)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)

	assert.Equal(t, true, body["success"])
	assert.Equal(t, "animation", body["model_used"])
	assert.Equal(t, float64(2), body["duration"])
	assert.Equal(t, "a cartoon cat", body["prompt"])
	assert.NotEmpty(t, body["timestamp"])
	assert.True(t, strings.HasPrefix(body["video_data"].(string), utils.VideoDataPrefix))
	assert.NotEmpty(t, body["poster_data"])
}

func TestHandleGenerateModelTypeAlias(t *testing.T) {
	svc, stubs := newStubService()
	router := newTestRouter(svc)

	// model_type alone is honored.
	rec := postJSON(t, router, "/generate-video",
		`{"prompt":"a real dog","model_type":"creative","duration":2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "creative", decodeBody(t, rec)["model_used"])
	assert.Equal(t, 1, stubs.creative.inferCalls)

	// model wins when both are present.
	rec = postJSON(t, router, "/generate-video",
		`{"prompt":"a real dog","model":"animation","model_type":"creative","duration":2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "animation", decodeBody(t, rec)["model_used"])
	assert.Equal(t, 1, stubs.anim.inferCalls)
}

func TestHandleGenerateCoercesLooseTypes(t *testing.T) {
	svc, stubs := newStubService()

	// Duration as a string and a non-string model value: the duration
	// is coerced, the unusable model is ignored in favor of model_type.
	rec := postJSON(t, newTestRouter(svc), "/generate-video",
		`{"prompt":"a real dog","duration":"2","model":123,"model_type":"creative"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "creative", body["model_used"])
	assert.Equal(t, float64(2), body["duration"])
	assert.Equal(t, 1, stubs.creative.inferCalls)
}

func TestHandleGenerateUnknownModelAutoDetects(t *testing.T) {
	svc, _ := newStubService()
	rec := postJSON(t, newTestRouter(svc), "/generate-video",
		`{"prompt":"a cartoon cat","model":"dall-e","duration":2}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "animation", decodeBody(t, rec)["model_used"])
}

func TestHandleGeneratePipelineFailureIs500(t *testing.T) {
	svc, stubs := newStubService()
	stubs.photo.loadErr = assert.AnError

	rec := postJSON(t, newTestRouter(svc), "/generate-video",
		`{"prompt":"a real dog","duration":2}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "Mochi-1")
}

func TestHandleGenerateAsyncUnconfigured(t *testing.T) {
	svc, _ := newStubService()
	rec := postJSON(t, newTestRouter(svc), "/generate-video-async",
		`{"prompt":"a real dog"}`)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Async generation is not configured", body["error"])
}

func TestHandleJobStatusUnconfigured(t *testing.T) {
	svc, _ := newStubService()
	req := httptest.NewRequest(http.MethodGet, "/video-jobs/abc-123", nil)
	rec := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["success"])
}
