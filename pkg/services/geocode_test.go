package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNominatim(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "foodtook-test", r.Header.Get("User-Agent"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/search":
			if r.URL.Query().Get("q") == "nowhere" {
				w.Write([]byte(`[]`))
				return
			}
			w.Write([]byte(`[{"display_name":"Av. Reforma 222, CDMX","lat":"19.4270","lon":"-99.1677"}]`))
		case "/reverse":
			if r.URL.Query().Get("lat") == "0" {
				w.Write([]byte(`{"error":"Unable to geocode"}`))
				return
			}
			w.Write([]byte(`{"display_name":"Av. Reforma 222, CDMX","lat":"19.4270","lon":"-99.1677"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGeocoderSearch(t *testing.T) {
	srv := newNominatim(t)
	g := NewGeocoder(srv.URL+"/", "foodtook-test", time.Second)

	places, err := g.Search(context.Background(), "Reforma 222", 0)
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, 19.4270, places[0].Latitude)
	assert.Equal(t, -99.1677, places[0].Longitude)

	_, err = g.Locate(context.Background(), "nowhere")
	assert.True(t, errors.Is(err, ErrNoGeocodeResult))
}

func TestGeocoderReverse(t *testing.T) {
	srv := newNominatim(t)
	g := NewGeocoder(srv.URL, "foodtook-test", time.Second)

	p, err := g.Reverse(context.Background(), 19.427, -99.1677)
	require.NoError(t, err)
	assert.Equal(t, "Av. Reforma 222, CDMX", p.DisplayName)

	_, err = g.Reverse(context.Background(), 0, 0)
	assert.True(t, errors.Is(err, ErrNoGeocodeResult))
}

func TestGeocoderTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	g := NewGeocoder(srv.URL, "foodtook-test", 20*time.Millisecond)
	_, err := g.Search(context.Background(), "x", 1)
	assert.Error(t, err)
}

func TestClassifyAuthError(t *testing.T) {
	cases := map[string]string{
		"INVALID_PASSWORD":                              "Correo o contraseña incorrectos",
		"INVALID_LOGIN_CREDENTIALS":                     "Correo o contraseña incorrectos",
		"EMAIL_NOT_FOUND":                               "No existe una cuenta con ese correo",
		"TOO_MANY_ATTEMPTS_TRY_LATER : Access disabled": "Demasiados intentos. Inténtalo más tarde.",
		"something else":                                "Ocurrió un error. Inténtalo de nuevo.",
	}
	for reason, want := range cases {
		ae := ClassifyAuthError(errors.New(reason))
		assert.Equal(t, want, ae.Message, reason)
	}

	wrapped := ClassifyAuthError(NewAuthError(AuthWeakPassword, nil))
	assert.Equal(t, AuthWeakPassword, wrapped.Code)
	assert.Equal(t, AuthUnknown, NewAuthError("auth/bogus", nil).Code)
	assert.Nil(t, ClassifyAuthError(nil))
}
