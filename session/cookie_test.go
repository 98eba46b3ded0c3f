package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookies_WriteSetsHttpOnlyOneYear(t *testing.T) {
	now := time.Now()
	rec := httptest.NewRecorder()
	cookies := Cookies{Name: "token"}

	cookies.Write(rec, Token{Value: "abc", ExpiresAt: now.Add(365 * 24 * time.Hour)}, now)

	res := rec.Result()
	require.Len(t, res.Cookies(), 1)
	c := res.Cookies()[0]
	assert.Equal(t, "token", c.Name)
	assert.Equal(t, "abc", c.Value)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, 365*24*60*60, c.MaxAge)
}

func TestCookies_Clear(t *testing.T) {
	rec := httptest.NewRecorder()
	Cookies{Name: "token"}.Clear(rec)

	c := rec.Result().Cookies()
	require.Len(t, c, 1)
	assert.Empty(t, c[0].Value)
	assert.Less(t, c[0].MaxAge, 0)
}

func TestCookies_Read(t *testing.T) {
	cookies := Cookies{Name: "token"}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, cookies.Read(r))

	r.Header.Set("Authorization", "Bearer from-header")
	assert.Equal(t, "from-header", cookies.Read(r))

	r.AddCookie(&http.Cookie{Name: "token", Value: "from-cookie"})
	assert.Equal(t, "from-cookie", cookies.Read(r))

	assert.Empty(t, cookies.Read(nil))
}
