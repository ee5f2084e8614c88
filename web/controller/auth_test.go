package controller

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/ecocart/ecocart/database"
	"github.com/ecocart/ecocart/logger"
	redisutil "github.com/ecocart/ecocart/util/redis"
	"github.com/ecocart/ecocart/web/cache"
	"github.com/ecocart/ecocart/web/middleware"
	"github.com/ecocart/ecocart/web/session"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup() *gin.Engine {
	logger.InitLogger(logging.ERROR)
	gin.SetMode(gin.TestMode)
	os.Remove("test.db")
	database.InitDB("test.db")
	cache.InvalidateProducts()
	redisutil.Del(cache.KeyCategories)

	manager := session.NewManager(
		session.NewDBStore(),
		[]byte("0123456789abcdef0123456789abcdef"),
		24*time.Hour,
		false,
	)

	engine := gin.New()
	engine.Use(manager.Middleware())
	api := engine.Group("/api")
	NewAuthController(api, manager)
	NewCatalogController(api)
	NewCartController(api)
	NewVoiceController(api)
	NewStatusController(api)
	return engine
}

func teardown() {
	db, _ := database.GetDB().DB()
	db.Close()
	os.Remove("test.db")
}

func doJSON(engine *gin.Engine, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)
	return recorder
}

func sessionCookie(t *testing.T, recorder *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == session.CookieName {
			return cookie
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func errorBody(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body["error"]
}

func TestRegisterLoginFlow(t *testing.T) {
	engine := setup()
	defer teardown()

	// Register creates the account and logs it in
	recorder := doJSON(engine, http.MethodPost, "/api/register",
		`{"username":"alice01","password":"longpass1"}`, nil)
	require.Equal(t, http.StatusCreated, recorder.Code)

	var registered map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &registered))
	assert.Equal(t, "alice01", registered["username"])
	assert.NotEmpty(t, registered["id"])
	assert.NotContains(t, registered, "password")

	registerCookie := sessionCookie(t, recorder)
	assert.True(t, registerCookie.HttpOnly)

	// Wrong password is rejected with the generic message
	recorder = doJSON(engine, http.MethodPost, "/api/login",
		`{"username":"alice01","password":"wrongpass1"}`, nil)
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "Invalid username or password", errorBody(t, recorder))

	// Unknown username gets the exact same response
	recorder = doJSON(engine, http.MethodPost, "/api/login",
		`{"username":"nobody99","password":"longpass1"}`, nil)
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "Invalid username or password", errorBody(t, recorder))

	// Correct login succeeds and rotates the session token
	recorder = doJSON(engine, http.MethodPost, "/api/login",
		`{"username":"alice01","password":"longpass1"}`, registerCookie)
	require.Equal(t, http.StatusOK, recorder.Code)
	loginCookie := sessionCookie(t, recorder)
	assert.NotEqual(t, registerCookie.Value, loginCookie.Value)

	// The pre-login session is dead
	recorder = doJSON(engine, http.MethodGet, "/api/user", "", registerCookie)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// The fresh one works
	recorder = doJSON(engine, http.MethodGet, "/api/user", "", loginCookie)
	require.Equal(t, http.StatusOK, recorder.Code)
	var current map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &current))
	assert.Equal(t, "alice01", current["username"])
	assert.NotContains(t, current, "password")

	// Logout kills the session
	recorder = doJSON(engine, http.MethodPost, "/api/logout", "", loginCookie)
	require.Equal(t, http.StatusOK, recorder.Code)
	cleared := sessionCookie(t, recorder)
	assert.Less(t, cleared.MaxAge, 0)

	recorder = doJSON(engine, http.MethodGet, "/api/user", "", loginCookie)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestRegisterValidation(t *testing.T) {
	engine := setup()
	defer teardown()

	cases := []struct {
		body    string
		wantMsg string
	}{
		{`{"username":"ab","password":"longpass1"}`, "Username must be at least 3 characters"},
		{`{"username":"alice01","password":"short"}`, "Password must be at least 8 characters"},
		{`{"username":`, "Invalid request body"},
	}
	for _, tc := range cases {
		recorder := doJSON(engine, http.MethodPost, "/api/register", tc.body, nil)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, tc.wantMsg, errorBody(t, recorder))
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	engine := setup()
	defer teardown()

	recorder := doJSON(engine, http.MethodPost, "/api/register",
		`{"username":"alice01","password":"longpass1"}`, nil)
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = doJSON(engine, http.MethodPost, "/api/register",
		`{"username":"alice01","password":"otherpass99"}`, nil)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "Username already exists", errorBody(t, recorder))
}

func TestCurrentUserWithoutSession(t *testing.T) {
	engine := setup()
	defer teardown()

	recorder := doJSON(engine, http.MethodGet, "/api/user", "", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Empty(t, recorder.Body.String())
}

func TestLogoutWithoutSession(t *testing.T) {
	engine := setup()
	defer teardown()

	recorder := doJSON(engine, http.MethodPost, "/api/logout", "", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestCartRequiresLogin(t *testing.T) {
	engine := setup()
	defer teardown()

	recorder := doJSON(engine, http.MethodGet, "/api/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestRateLimitOnCredentialRoutesOnly(t *testing.T) {
	setup()
	defer teardown()

	manager := session.NewManager(
		session.NewDBStore(),
		[]byte("0123456789abcdef0123456789abcdef"),
		24*time.Hour,
		false,
	)
	engine := gin.New()
	engine.Use(manager.Middleware())
	api := engine.Group("/api")
	NewAuthController(api, manager,
		middleware.RateLimitMiddleware(middleware.AuthRateLimitConfig()))

	recorder := doJSON(engine, http.MethodPost, "/api/register",
		`{"username":"shopper9","password":"longpass1"}`, nil)
	require.Equal(t, http.StatusCreated, recorder.Code)
	cookie := sessionCookie(t, recorder)

	// Polling the session is never throttled
	for i := 0; i < 12; i++ {
		recorder = doJSON(engine, http.MethodGet, "/api/user", "", cookie)
		assert.Equal(t, http.StatusOK, recorder.Code)
	}

	// Credential attempts are
	codes := make([]int, 0, 11)
	for i := 0; i < 11; i++ {
		recorder = doJSON(engine, http.MethodPost, "/api/login",
			`{"username":"shopper9","password":"wrongpass1"}`, nil)
		codes = append(codes, recorder.Code)
	}
	assert.Equal(t, http.StatusUnauthorized, codes[0])
	assert.Equal(t, http.StatusTooManyRequests, codes[len(codes)-1])
}
