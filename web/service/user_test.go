package service

import (
	"os"
	"strings"
	"testing"

	"github.com/ecocart/ecocart/database"
	"github.com/ecocart/ecocart/logger"
	redisutil "github.com/ecocart/ecocart/util/redis"
	"github.com/ecocart/ecocart/web/cache"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup() {
	logger.InitLogger(logging.ERROR)
	dbPath := "test.db"
	os.Remove(dbPath)
	database.InitDB(dbPath)
	cache.InvalidateProducts()
	redisutil.Del(cache.KeyCategories)
}

func teardown() {
	db, _ := database.GetDB().DB()
	db.Close()
	os.Remove("test.db")
}

func TestCreateUser(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}

	user, err := service.CreateUser("alice01", "longpass1")
	require.NoError(t, err)
	assert.NotEmpty(t, user.Id)
	assert.Equal(t, "alice01", user.Username)
	assert.NotEqual(t, "longpass1", user.Password, "stored password must be a hash")

	fetched, err := service.GetUserById(user.Id)
	require.NoError(t, err)
	assert.Equal(t, user.Username, fetched.Username)
}

func TestCreateUserDuplicate(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}

	_, err := service.CreateUser("alice01", "longpass1")
	require.NoError(t, err)

	// Same username always fails, regardless of password
	_, err = service.CreateUser("alice01", "otherpass99")
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestCreateUserValidation(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}

	cases := []struct {
		username string
		password string
		wantMsg  string
	}{
		{"ab", "longpass1", "Username must be at least 3 characters"},
		// Two runes, eight bytes: limits count characters, not bytes
		{"🌱🌱", "longpass1", "Username must be at least 3 characters"},
		{strings.Repeat("a", 51), "longpass1", "Username must be less than 50 characters"},
		{"alice01", "short", "Password must be at least 8 characters"},
		{"alice01", strings.Repeat("p", 101), "Password must be less than 100 characters"},
	}
	for _, tc := range cases {
		_, err := service.CreateUser(tc.username, tc.password)
		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr)
		assert.Equal(t, tc.wantMsg, err.Error())
	}
}

func TestCreateUserMultibyteUsername(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}

	// 40 runes but 120 bytes, well inside the 50-character limit
	name := strings.Repeat("環", 40)
	user, err := service.CreateUser(name, "longpass1")
	require.NoError(t, err)
	assert.Equal(t, name, user.Username)
}

func TestCheckUser(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}

	created, err := service.CreateUser("alice01", "longpass1")
	require.NoError(t, err)

	user := service.CheckUser("alice01", "longpass1")
	require.NotNil(t, user)
	assert.Equal(t, created.Id, user.Id)

	// Wrong password and unknown username are indistinguishable
	assert.Nil(t, service.CheckUser("alice01", "wrongpass1"))
	assert.Nil(t, service.CheckUser("nobody", "longpass1"))
}
