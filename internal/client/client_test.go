package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rvasani/shopcopilot/internal/chat"
)

// capturedForm holds what the fake backend saw in a /chat request.
type capturedForm struct {
	message   string
	hasToken  bool
	token     string
	hasImage  bool
	imageName string
	imageData []byte
}

// chatServer builds a fake /chat endpoint that captures the multipart form
// and replies with the given payload.
func chatServer(t *testing.T, status int, payload string) (*httptest.Server, *capturedForm) {
	t.Helper()
	form := &capturedForm{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/chat", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		values, ok := r.MultipartForm.Value["message"]
		require.True(t, ok, "message part must always be present")
		form.message = values[0]

		if tok, ok := r.MultipartForm.Value["token"]; ok {
			form.hasToken = true
			form.token = tok[0]
		}

		if files, ok := r.MultipartForm.File["image"]; ok {
			form.hasImage = true
			form.imageName = files[0].Filename
			f, err := files[0].Open()
			require.NoError(t, err)
			defer f.Close()
			form.imageData, err = io.ReadAll(f)
			require.NoError(t, err)
		}

		w.WriteHeader(status)
		_, _ = w.Write([]byte(payload))
	}))
	t.Cleanup(srv.Close)
	return srv, form
}

func TestChat_MultipartParts(t *testing.T) {
	srv, form := chatServer(t, http.StatusOK, `{"reply":"ok"}`)
	c := New(srv.URL, 0)

	_, err := c.Chat(context.Background(), chat.TurnRequest{
		Message:   "red sneakers under $50",
		ImageName: "shoe.jpg",
		ImageData: []byte("jpegdata"),
		Token:     "tok-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "red sneakers under $50", form.message)
	assert.True(t, form.hasToken)
	assert.Equal(t, "tok-1", form.token)
	assert.True(t, form.hasImage)
	assert.Equal(t, "shoe.jpg", form.imageName)
	assert.Equal(t, []byte("jpegdata"), form.imageData)
}

func TestChat_AnonymousTextOnly(t *testing.T) {
	srv, form := chatServer(t, http.StatusOK, `{"reply":"ok"}`)
	c := New(srv.URL, 0)

	_, err := c.Chat(context.Background(), chat.TurnRequest{Message: ""})
	require.NoError(t, err)

	assert.Equal(t, "", form.message, "message part is sent even when empty")
	assert.False(t, form.hasToken, "token part must be omitted in anonymous mode")
	assert.False(t, form.hasImage, "image part must be omitted without an attachment")
}

func TestChat_DecodesReplyAndProducts(t *testing.T) {
	// Alias keys (name/url) come from the older backend draft and must
	// decode the same as title/link.
	srv, _ := chatServer(t, http.StatusOK, `{
		"reply": "Here are some options",
		"products": [
			{"title":"Sneaker A","price":"$45","image":"http://x/a.png","link":"http://x/a","source":"Amazon"},
			{"name":"Sneaker B","price":"$49","url":"http://x/b"}
		]
	}`)
	c := New(srv.URL, 0)

	reply, err := c.Chat(context.Background(), chat.TurnRequest{Message: "sneakers"})
	require.NoError(t, err)

	assert.Equal(t, "Here are some options", reply.Text)
	require.Len(t, reply.Products, 2)
	assert.Equal(t, "Sneaker A", reply.Products[0].Title)
	assert.Equal(t, "http://x/a", reply.Products[0].Link)
	assert.Equal(t, "Sneaker B", reply.Products[1].Title)
	assert.Equal(t, "http://x/b", reply.Products[1].Link)
}

func TestChat_ProductsOmitted(t *testing.T) {
	srv, _ := chatServer(t, http.StatusOK, `{"reply":"no matches"}`)
	c := New(srv.URL, 0)

	reply, err := c.Chat(context.Background(), chat.TurnRequest{Message: "x"})
	require.NoError(t, err)
	assert.Empty(t, reply.Products)
}

func TestChat_ServerError(t *testing.T) {
	srv, _ := chatServer(t, http.StatusInternalServerError, `boom`)
	c := New(srv.URL, 0)

	_, err := c.Chat(context.Background(), chat.TurnRequest{Message: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server error")
}

func TestChat_MalformedBody(t *testing.T) {
	srv, _ := chatServer(t, http.StatusOK, `<html>definitely not json</html>`)
	c := New(srv.URL, 0)

	_, err := c.Chat(context.Background(), chat.TurnRequest{Message: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal response")
}

func TestChat_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused from here on
	c := New(srv.URL, 0)

	_, err := c.Chat(context.Background(), chat.TurnRequest{Message: "x"})
	require.Error(t, err)
}

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var creds struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		require.Equal(t, "ada", creds.Username)
		require.Equal(t, "hunter2", creds.Password)

		_, _ = w.Write([]byte(`{"token":"tok-7","username":"ada"}`))
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, 0)
	res, err := c.Login(context.Background(), "ada", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "tok-7", res.Token)
	assert.Equal(t, "ada", res.Username)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"invalid"}`, http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, 0)
	_, err := c.Login(context.Background(), "ada", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server error")
}

func TestRegister(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/register", r.URL.Path)

		var creds struct {
			Username string `json:"username"`
			Email    string `json:"email"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		require.Equal(t, "ada", creds.Username)
		require.Equal(t, "ada@example.com", creds.Email)

		_, _ = w.Write([]byte(`{"token":"tok-8","username":"ada"}`))
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, 0)
	res, err := c.Register(context.Background(), "ada", "ada@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "tok-8", res.Token)
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	t.Cleanup(srv.Close)

	require.NoError(t, New(srv.URL, 0).Ping(context.Background()))
}

func TestPing_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"degraded"}`))
	}))
	t.Cleanup(srv.Close)

	require.Error(t, New(srv.URL, 0).Ping(context.Background()))
}
