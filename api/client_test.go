package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginSendsFormAndParsesToken(t *testing.T) {
	var gotContentType, gotUser, gotPass string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/token", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseForm())
		gotUser = r.PostFormValue("username")
		gotPass = r.PostFormValue("password")
		fmt.Fprint(w, `{"access_token":"tok-123","token_type":"bearer"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	token, err := c.Login("alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
	assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	assert.Equal(t, "alice", gotUser)
	assert.Equal(t, "secret", gotPass)
}

func TestLoginFailureCarriesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"detail":"Incorrect username or password"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.Login("alice", "wrong")
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, "Incorrect username or password", Message(err, "fallback"))
}

func TestMessageFallsBackWithoutDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.History()
	require.Error(t, err)
	assert.Equal(t, "generic failure", Message(err, "generic failure"))
	assert.False(t, IsUnauthorized(err))
}

func TestMessageFallsBackOnTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewClient(srv.URL, time.Second)
	_, err := c.Models()
	require.Error(t, err)
	assert.Equal(t, "generic failure", Message(err, "generic failure"))
}

func TestBearerHeaderOnlyWhenTokenSet(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)

	_, err := c.History()
	require.NoError(t, err)
	assert.Empty(t, gotAuth)

	c.SetToken("tok-123")
	_, err = c.History()
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)

	c.ClearToken()
	_, err = c.History()
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestModelsParsesProviderList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/models", r.URL.Path)
		fmt.Fprint(w, `{"chatProviders":[{"name":"openai_chat_completion","model":"gpt-4o-mini"},{"name":"anthropic","model":"claude-3-haiku"}]}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	models, err := c.Models()
	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, "openai_chat_completion", models[0].Provider)
	assert.Equal(t, "gpt-4o-mini", models[0].Model)
	assert.Equal(t, "claude-3-haiku (anthropic)", models[1].Label())
}

func TestMalformedSuccessBodyIsTypedError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `this is not json`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.Models()
	require.Error(t, err)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "malformed response from server", apiErr.Detail)
}

func TestTranslateRequestBody(t *testing.T) {
	var got translationRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/tasks/translation", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		fmt.Fprint(w, `{"output_text":"Hola"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	out, err := c.Translate("Hello", "Spanish", "gpt-4o-mini", "openai_chat_completion")
	require.NoError(t, err)
	assert.Equal(t, "Hola", out)
	assert.Equal(t, "Hello", got.InputText)
	assert.Equal(t, "Spanish", got.TargetLanguage)
	assert.Equal(t, "gpt-4o-mini", got.ModelName)
	assert.Equal(t, "openai_chat_completion", got.Provider)
}

func TestCaptionRequestIncludesTopic(t *testing.T) {
	var got captionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/tasks/caption", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		fmt.Fprint(w, `{"output_text":"A caption"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	out, err := c.Caption("sunset photo", "Instagram post", "gpt-4o-mini", "openai_chat_completion")
	require.NoError(t, err)
	assert.Equal(t, "A caption", out)
	assert.Equal(t, "Instagram post", got.Topic)
	assert.Equal(t, "sunset photo", got.InputText)
}
