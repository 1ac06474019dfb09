package progress

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func subscribers(h *Hub, jobID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[jobID])
}

func TestPublishDeliversToSubscriber(t *testing.T) {
	h := NewHub()
	c := &client{jobID: "job-1", send: make(chan []byte, 1)}
	h.addClient(c)

	h.Publish(Update{JobID: "job-1", Status: "processing", ModelUsed: "animation"})

	var got Update
	require.NoError(t, json.Unmarshal(<-c.send, &got))
	assert.Equal(t, "job_update", got.Type)
	assert.Equal(t, "job-1", got.JobID)
	assert.Equal(t, "processing", got.Status)
	assert.Equal(t, "animation", got.ModelUsed)
}

func TestPublishOnlyReachesMatchingJob(t *testing.T) {
	h := NewHub()
	mine := &client{jobID: "job-1", send: make(chan []byte, 1)}
	other := &client{jobID: "job-2", send: make(chan []byte, 1)}
	h.addClient(mine)
	h.addClient(other)

	h.Publish(Update{JobID: "job-1", Status: "completed"})

	assert.Len(t, mine.send, 1)
	assert.Len(t, other.send, 0)
}

func TestPublishDropsSlowSubscriber(t *testing.T) {
	h := NewHub()

	// Zero-capacity channel with no reader: the send never succeeds,
	// so the publisher must drop the client instead of blocking.
	slow := &client{jobID: "job-1", send: make(chan []byte)}
	healthy := &client{jobID: "job-1", send: make(chan []byte, 1)}
	h.addClient(slow)
	h.addClient(healthy)

	h.Publish(Update{JobID: "job-1", Status: "processing"})

	assert.Equal(t, 1, subscribers(h, "job-1"))
	assert.Len(t, healthy.send, 1)

	// The dropped client's channel is closed so its writePump exits.
	_, open := <-slow.send
	assert.False(t, open)
}

func TestPublishWithoutSubscribers(t *testing.T) {
	h := NewHub()
	assert.NotPanics(t, func() {
		h.Publish(Update{JobID: "nobody-listening", Status: "failed"})
	})
}

func TestRemoveClientCleansUpJobEntry(t *testing.T) {
	h := NewHub()
	c := &client{jobID: "job-1", send: make(chan []byte, 1)}
	h.addClient(c)
	require.Equal(t, 1, subscribers(h, "job-1"))

	h.removeClient(c)
	assert.Equal(t, 0, subscribers(h, "job-1"))

	// Removing twice must not close the channel again.
	assert.NotPanics(t, func() { h.removeClient(c) })
}
