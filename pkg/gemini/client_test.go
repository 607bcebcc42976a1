package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-goog-api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		require.Len(t, req.Contents[0].Parts, 1)
		assert.Equal(t, "say hi", req.Contents[0].Parts[0].Text)

		fmt.Fprint(w, `{"candidates":[{"content":{"parts":[{"text":"hi"}]}}]}`)
	}))
	defer server.Close()

	client := NewClient("secret", time.Second)
	client.BaseURL = server.URL

	text, err := client.GenerateContent(context.Background(), "say hi")
	require.NoError(t, err)
	assert.Equal(t, "hi", text)
}

func TestGenerateContentWithoutKey(t *testing.T) {
	client := NewClient("", time.Second)
	assert.False(t, client.HasKey())

	_, err := client.GenerateContent(context.Background(), "say hi")
	assert.EqualError(t, err, "gemini API key is not configured")
}

func TestGenerateContentAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"code":400,"message":"invalid argument"}}`)
	}))
	defer server.Close()

	client := NewClient("secret", time.Second)
	client.BaseURL = server.URL

	_, err := client.GenerateContent(context.Background(), "say hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Gemini API error 400: invalid argument")
}

func TestGenerateContentUnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	client := NewClient("secret", time.Second)
	client.BaseURL = server.URL

	_, err := client.GenerateContent(context.Background(), "say hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "returned status 503")
}

func TestGenerateContentEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"candidates":[]}`)
	}))
	defer server.Close()

	client := NewClient("secret", time.Second)
	client.BaseURL = server.URL

	_, err := client.GenerateContent(context.Background(), "say hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no response from Gemini")
}

func TestGenerateContentHonorsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server watches the connection and cancels
		// r.Context() when the client gives up; otherwise Close() deadlocks.
		io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewClient("secret", time.Minute)
	client.BaseURL = server.URL

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.GenerateContent(ctx, "say hi")
	assert.Error(t, err)
}
