package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBrevoChannel(endpoint string) *BrevoChannel {
	return &BrevoChannel{
		apiKey:     "xkeysib-test",
		from:       "Data Security <noreply@example.com>",
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 2 * time.Second},
		timeout:    2 * time.Second,
	}
}

func TestBrevoSendAccepted(t *testing.T) {
	var got brevoPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "xkeysib-test", r.Header.Get("api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte(`{"messageId":"1"}`))
	}))
	defer srv.Close()

	c := newTestBrevoChannel(srv.URL)
	err := c.Send(context.Background(), Message{To: "a@b.c", Subject: "s", Text: "t", HTML: "<p>t</p>"})
	require.NoError(t, err)

	assert.Equal(t, "noreply@example.com", got.Sender.Email)
	assert.Equal(t, "Data Security", got.Sender.Name)
	require.Len(t, got.To, 1)
	assert.Equal(t, "a@b.c", got.To[0].Email)
	assert.Equal(t, "t", got.TextContent)
}

func TestBrevoSendRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Key not found"}`))
	}))
	defer srv.Close()

	c := newTestBrevoChannel(srv.URL)
	err := c.Send(context.Background(), Message{To: "a@b.c"})
	require.Error(t, err)

	var chErr *ChannelError
	require.ErrorAs(t, err, &chErr)
	assert.Equal(t, http.StatusUnauthorized, chErr.StatusCode)
	assert.Contains(t, chErr.Body, "Key not found")
}

func TestSplitFromAddress(t *testing.T) {
	name, addr := splitFromAddress("Data Security <x@y.z>")
	assert.Equal(t, "Data Security", name)
	assert.Equal(t, "x@y.z", addr)

	name, addr = splitFromAddress("plain@addr.io")
	assert.Equal(t, "", name)
	assert.Equal(t, "plain@addr.io", addr)
}
