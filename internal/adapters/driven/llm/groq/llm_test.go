package groq

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdityaTheDev/YoutubeAssistant/internal/core/ports/driven"
)

func TestNewLLMService_RequiresAPIKey(t *testing.T) {
	_, err := NewLLMService(LLMConfig{})
	assert.Error(t, err)
}

func TestNewLLMService_Defaults(t *testing.T) {
	svc, err := NewLLMService(LLMConfig{APIKey: "gsk_test"})
	require.NoError(t, err)

	assert.Equal(t, DefaultLLMModel, svc.ModelName())
	assert.Equal(t, DefaultBaseURL, svc.baseURL)
}

func TestGenerate(t *testing.T) {
	var gotReq chatCompletionRequest
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		fmt.Fprint(w, `{"choices":[{"message":{"content":"The video explains recursion."}}]}`)
	}))
	defer srv.Close()

	svc, err := NewLLMService(LLMConfig{
		APIKey:            "gsk_test",
		BaseURL:           srv.URL,
		RequestsPerMinute: -1,
	})
	require.NoError(t, err)

	out, err := svc.Generate(context.Background(), "explain the video", driven.GenerateOptions{
		Temperature: 0.2,
		MaxTokens:   512,
	})
	require.NoError(t, err)

	assert.Equal(t, "The video explains recursion.", out)
	assert.Equal(t, "Bearer gsk_test", gotAuth)
	assert.Equal(t, DefaultLLMModel, gotReq.Model)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "user", gotReq.Messages[0].Role)
	assert.Equal(t, "explain the video", gotReq.Messages[0].Content)
	assert.Equal(t, 0.2, gotReq.Temperature)
	assert.Equal(t, 512, gotReq.MaxTokens)
}

func TestGenerate_ZeroTemperatureIsSent(t *testing.T) {
	var rawBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&rawBody))
		fmt.Fprint(w, `{"choices":[{"message":{"content":"ok"}}]}`)
	}))
	defer srv.Close()

	svc, err := NewLLMService(LLMConfig{APIKey: "gsk_test", BaseURL: srv.URL, RequestsPerMinute: -1})
	require.NoError(t, err)

	_, err = svc.Generate(context.Background(), "translate this", driven.GenerateOptions{Temperature: 0})
	require.NoError(t, err)

	// Temperature 0 is deterministic mode, not "use the provider default".
	temp, present := rawBody["temperature"]
	require.True(t, present)
	assert.Equal(t, 0.0, temp)
}

func TestGenerate_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"message":"invalid api key","type":"invalid_request_error"}}`)
	}))
	defer srv.Close()

	svc, err := NewLLMService(LLMConfig{APIKey: "gsk_bad", BaseURL: srv.URL, RequestsPerMinute: -1})
	require.NoError(t, err)

	_, err = svc.Generate(context.Background(), "hello", driven.GenerateOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestGenerate_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer srv.Close()

	svc, err := NewLLMService(LLMConfig{APIKey: "gsk_test", BaseURL: srv.URL, RequestsPerMinute: -1})
	require.NoError(t, err)

	_, err = svc.Generate(context.Background(), "hello", driven.GenerateOptions{})
	assert.Error(t, err)
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/models", r.URL.Path)
		fmt.Fprint(w, `{"data":[]}`)
	}))
	defer srv.Close()

	svc, err := NewLLMService(LLMConfig{APIKey: "gsk_test", BaseURL: srv.URL})
	require.NoError(t, err)

	assert.NoError(t, svc.Ping(context.Background()))
}
