package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecognize(t *testing.T) {
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		// First line is the usual empty result, transcript follows
		w.Write([]byte(`{"result":[]}
{"result":[{"alternative":[{"transcript":"my answer is yes"}],"final":true}],"result_index":0}`))
	}))
	defer server.Close()

	svc := NewSTTService(server.URL, "api-key")

	text, err := svc.Recognize(context.Background(), []byte("audio"), "audio/l16; rate=16000")

	require.NoError(t, err)
	assert.Equal(t, "my answer is yes", text)
	assert.Equal(t, "audio/l16; rate=16000", gotContentType)
}

func TestRecognizeEmptyAudio(t *testing.T) {
	svc := NewSTTService("http://127.0.0.1:1", "key")

	_, err := svc.Recognize(context.Background(), nil, "audio/l16")

	assert.ErrorIs(t, err, ErrNoSpeech)
}

func TestRecognizeNoTranscript(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":[]}`))
	}))
	defer server.Close()

	svc := NewSTTService(server.URL, "key")

	_, err := svc.Recognize(context.Background(), []byte("audio"), "audio/l16")

	assert.ErrorIs(t, err, ErrNotUnderstood)
}

func TestRecognizeServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad", http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewSTTService(server.URL, "key")

	_, err := svc.Recognize(context.Background(), []byte("audio"), "audio/l16")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotUnderstood)
}
