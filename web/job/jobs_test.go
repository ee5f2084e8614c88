package job

import (
	"os"
	"testing"
	"time"

	"github.com/ecocart/ecocart/database"
	"github.com/ecocart/ecocart/logger"
	"github.com/ecocart/ecocart/web/session"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup() {
	logger.InitLogger(logging.ERROR)
	os.Remove("test.db")
	database.InitDB("test.db")
}

func teardown() {
	db, _ := database.GetDB().DB()
	db.Close()
	os.Remove("test.db")
}

func TestClearSessionsJob(t *testing.T) {
	setup()
	defer teardown()

	store := session.NewDBStore()
	require.NoError(t, store.Create("stale-token", "user-1", -time.Minute))
	require.NoError(t, store.Create("live-token", "user-2", time.Hour))

	NewClearSessionsJob().Run()

	_, ok := store.Resolve("stale-token")
	assert.False(t, ok)
	userId, ok := store.Resolve("live-token")
	assert.True(t, ok)
	assert.Equal(t, "user-2", userId)
}

func TestCheckpointDBJob(t *testing.T) {
	setup()
	defer teardown()

	assert.NotPanics(t, func() {
		NewCheckpointDBJob().Run()
	})
}
