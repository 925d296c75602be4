package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authform "gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.AuthForm"
	config "gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.Config"
	logger "gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.Logger"
	ghmmodels "gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.Models"
)

var sessionCfg = config.SessionConfig{MaxAge: time.Hour}

func testContext(req *http.Request) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = req
	return c, rec
}

func TestCookieStorage_RoundTrip(t *testing.T) {
	c, rec := testContext(httptest.NewRequest(http.MethodGet, "/", nil))
	storage := NewCookieStorage(c, sessionCfg)

	session := &ghmmodels.Session{Token: "t", User: json.RawMessage(`{"username": "ana"}`)}
	require.NoError(t, authform.SaveSession(storage, session, time.Hour, time.Now()))

	loaded, err := authform.LoadSession(storage)
	require.NoError(t, err)
	assert.Equal(t, "t", loaded.Token)
	assert.JSONEq(t, `{"username":"ana"}`, string(loaded.User))

	// A follow-up request carrying the cookies sees the same session
	next := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range rec.Result().Cookies() {
		assert.True(t, ck.HttpOnly, ck.Name)
		assert.Equal(t, http.SameSiteLaxMode, ck.SameSite, ck.Name)
		next.AddCookie(ck)
	}
	c2, _ := testContext(next)
	restored, err := authform.LoadSession(NewCookieStorage(c2, sessionCfg))
	require.NoError(t, err)
	assert.Equal(t, "t", restored.Token)
	assert.Equal(t, "ana", DisplayName(restored))
}

func TestCookieStorage_DeleteHidesPendingValue(t *testing.T) {
	c, _ := testContext(httptest.NewRequest(http.MethodGet, "/", nil))
	storage := NewCookieStorage(c, sessionCfg)

	require.NoError(t, storage.Set(ghmmodels.StorageKeyToken, "t"))
	require.NoError(t, authform.ClearSession(storage))

	_, err := authform.LoadSession(storage)
	assert.ErrorIs(t, err, authform.ErrNoSession)
}

func TestCookieStorage_RejectsPastExpiry(t *testing.T) {
	c, _ := testContext(httptest.NewRequest(http.MethodGet, "/", nil))
	storage := NewCookieStorage(c, sessionCfg)

	assert.Error(t, storage.SetWithExpiry(ghmmodels.StorageKeyToken, "t", time.Now().Add(-time.Minute)))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "", DisplayName(nil))
	assert.Equal(t, "Ana", DisplayName(&ghmmodels.Session{User: json.RawMessage(`{"firstName":"Ana","username":"ana"}`)}))
	assert.Equal(t, "ana", DisplayName(&ghmmodels.Session{User: json.RawMessage(`{"username":"ana"}`)}))
	assert.Equal(t, "", DisplayName(&ghmmodels.Session{User: json.RawMessage(`[1,2]`)}))
}

func TestRequestLogger_EchoesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger(logger.Nop()))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "abc", rec.Header().Get(RequestIDHeader))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)
}
