package controller

import (
	"net/http"
	"testing"

	"github.com/ecocart/ecocart/web/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticsRequireLogin(t *testing.T) {
	engine := setup()
	defer teardown()

	recorder := doJSON(engine, http.MethodGet, "/api/settings", "", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = doJSON(engine, http.MethodPost, "/api/logs/10", "", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestGetAllSettings(t *testing.T) {
	engine := setup()
	defer teardown()

	cookie := loginCookieFor(t, engine)

	recorder := doJSON(engine, http.MethodGet, "/api/settings", "", cookie)
	require.Equal(t, http.StatusOK, recorder.Code)

	settings := &entity.AllSetting{}
	msg := decodeMsg(t, recorder, settings)
	require.True(t, msg.Success)
	assert.Equal(t, 8080, settings.WebPort)
	assert.Equal(t, 20, settings.PageSize)
	assert.Equal(t, 1440, settings.SessionMaxAge)
}

func TestGetLogs(t *testing.T) {
	engine := setup()
	defer teardown()

	// Registering writes an info entry into the log buffer
	cookie := loginCookieFor(t, engine)

	recorder := doJSON(engine, http.MethodPost, "/api/logs/20", "", cookie)
	require.Equal(t, http.StatusOK, recorder.Code)

	logs := []string{}
	msg := decodeMsg(t, recorder, &logs)
	require.True(t, msg.Success)
	assert.NotEmpty(t, logs)
}
