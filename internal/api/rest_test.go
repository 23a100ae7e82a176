package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *RESTClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewRESTClient(srv.URL, 5*time.Second)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestLogin_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "budi@example.com", body["email"])
		assert.Equal(t, "secret", body["password"])

		writeJSON(t, w, http.StatusOK, map[string]any{
			"token": "tok-abc",
			"user": map[string]any{
				"id":       1,
				"username": "budi",
				"email":    "budi@example.com",
			},
		})
	})

	res, err := c.Login(context.Background(), "budi@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", res.Token)
	assert.Equal(t, int64(1), res.User.ID)
	assert.Equal(t, "budi", res.User.Username)
}

func TestLogin_WrongPassword_SurfacesServerMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]any{
			"message": "Email atau password salah.",
		})
	})

	_, err := c.Login(context.Background(), "budi@example.com", "wrong")
	require.Error(t, err)

	// Login is not a bearer-authorized call; its 401 must not collapse into
	// the rejected-credential sentinel, because the server message is the
	// whole point of the error.
	require.NotErrorIs(t, err, ErrUnauthorized)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Email atau password salah.", err.Error())
}

func TestLogin_MalformedSuccessBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{"token": ""})
	})

	_, err := c.Login(context.Background(), "a@b.com", "p")
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, err.Error(), "malformed")
}

func TestLogin_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := NewRESTClient(srv.URL, time.Second)

	_, err := c.Login(context.Background(), "a@b.com", "p")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestProfile_SendsBearerToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-abc", r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, map[string]any{
			"user": map[string]any{"id": 1, "username": "budi"},
		})
	})

	user, err := c.Profile(context.Background(), "tok-abc")
	require.NoError(t, err)
	assert.Equal(t, "budi", user.Username)
}

func TestProfile_RejectedCredential(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]any{"message": "Unauthenticated."})
	})

	_, err := c.Profile(context.Background(), "expired")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestUpdateProfile_ValidationErrorsAggregated(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnprocessableEntity, map[string]any{
			"message": "The given data was invalid.",
			"errors": map[string][]string{
				"username": {"Username sudah digunakan."},
				"email":    {"Format email tidak valid."},
			},
		})
	})

	_, err := c.UpdateProfile(context.Background(), "tok", &ProfileUpdate{Username: "taken"})
	require.Error(t, err)

	// Field messages are joined in key order, so the output is stable.
	assert.Equal(t, "Format email tidak valid.\nUsername sudah digunakan.", err.Error())
}

func TestUploadProfilePhoto_Multipart(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/profile/upload-photo", r.URL.Path)

		file, header, err := r.FormFile("photo")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "avatar.png", header.Filename)

		got, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, payload, got)

		writeJSON(t, w, http.StatusOK, map[string]any{
			"profile_picture_url": "https://cdn.example.com/a.png",
		})
	})

	url, err := c.UploadProfilePhoto(context.Background(), "tok", &Photo{
		FileName:    "avatar.png",
		ContentType: "image/png",
		Body:        strings.NewReader(string(payload)),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/a.png", url)
}

func TestPlaces_QueryParameters(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "kopi", q.Get("search"))
		assert.Equal(t, "3", q.Get("category_id"))
		assert.Equal(t, "-6.2", q.Get("latitude"))
		assert.Equal(t, "106.8", q.Get("longitude"))

		writeJSON(t, w, http.StatusOK, map[string]any{
			"places": []map[string]any{
				{"id": 10, "name": "Kopi Tuku", "distance": 1.4},
			},
		})
	})

	places, err := c.Places(context.Background(), "", &PlaceQuery{
		Search:     "kopi",
		CategoryID: 3,
		Latitude:   -6.2,
		Longitude:  106.8,
	})
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "Kopi Tuku", places[0].Name)
	require.NotNil(t, places[0].DistanceKm)
	assert.InDelta(t, 1.4, *places[0].DistanceKm, 1e-9)
}

func TestPlaces_AnonymousCallOmitsAuthorization(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, map[string]any{"places": []any{}})
	})

	places, err := c.Places(context.Background(), "", nil)
	require.NoError(t, err)
	assert.Empty(t, places)
}

func TestToggleFavorite_PathAndMethod(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/places/42/toggle-favorite", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]any{"message": "ok"})
	})

	require.NoError(t, c.ToggleFavorite(context.Background(), "tok", 42))
}

func TestPlace_IncludesFavoritedFlag(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/places/7", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]any{
			"place": map[string]any{"id": 7, "name": "Taman Suropati", "is_favorited": true},
		})
	})

	p, err := c.Place(context.Background(), "tok", 7)
	require.NoError(t, err)
	assert.True(t, p.IsFavorited)
}

func TestPing(t *testing.T) {
	t.Run("reachable", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusOK, map[string]any{"categories": []any{}})
		})
		assert.NoError(t, c.Ping(context.Background()))
	})

	t.Run("server error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		assert.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
	})

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		c := NewRESTClient(srv.URL, time.Second)
		assert.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
	})
}

func TestError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "fields take precedence",
			err: &Error{
				StatusCode: 422,
				Message:    "The given data was invalid.",
				Fields: map[string][]string{
					"password": {"Minimal 8 karakter.", "Harus mengandung angka."},
					"email":    {"Wajib diisi."},
				},
			},
			want: "Wajib diisi.\nMinimal 8 karakter.\nHarus mengandung angka.",
		},
		{
			name: "message only",
			err:  &Error{StatusCode: 404, Message: "Tempat tidak ditemukan."},
			want: "Tempat tidak ditemukan.",
		},
		{
			name: "empty body",
			err:  &Error{StatusCode: 500},
			want: "request rejected by server",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestError_IsNotSentinel(t *testing.T) {
	err := &Error{StatusCode: 422, Message: "nope"}
	assert.False(t, errors.Is(err, ErrUnauthorized))
	assert.False(t, errors.Is(err, ErrUnavailable))
}
