package session

import (
	"context"
	"fmt"
	"time"

	"github.com/ecocart/ecocart/database"
	"github.com/ecocart/ecocart/database/model"
	"github.com/ecocart/ecocart/logger"

	goredis "github.com/redis/go-redis/v9"
)

// Store persists the mapping from opaque session tokens to user ids.
// Implementations must be safe for concurrent use.
type Store interface {
	// Create stores a token for a user with the given lifetime.
	Create(token, userId string, ttl time.Duration) error
	// Resolve returns the user id for an active token. Unknown or expired
	// tokens resolve to ("", false).
	Resolve(token string) (string, bool)
	// Destroy invalidates a token. Destroying an absent token is not an error.
	Destroy(token string) error
}

// dbStore keeps sessions in the sessions table so logins survive restarts.
// Expiry is evaluated lazily on Resolve; expired rows are dropped on touch
// and swept by a daily job.
type dbStore struct{}

// NewDBStore returns the database-backed session store.
func NewDBStore() Store {
	return &dbStore{}
}

func (s *dbStore) Create(token, userId string, ttl time.Duration) error {
	db := database.GetDB()
	return db.Create(&model.Session{
		Id:         token,
		UserId:     userId,
		ExpiryTime: time.Now().Add(ttl).Unix(),
	}).Error
}

func (s *dbStore) Resolve(token string) (string, bool) {
	db := database.GetDB()
	sess := &model.Session{}
	err := db.Model(model.Session{}).
		Where("id = ?", token).
		First(sess).
		Error
	if database.IsNotFound(err) {
		return "", false
	} else if err != nil {
		logger.Warning("resolve session err:", err)
		return "", false
	}
	if sess.ExpiryTime <= time.Now().Unix() {
		if err := s.Destroy(token); err != nil {
			logger.Warning("drop expired session err:", err)
		}
		return "", false
	}
	return sess.UserId, true
}

func (s *dbStore) Destroy(token string) error {
	db := database.GetDB()
	return db.Where("id = ?", token).Delete(model.Session{}).Error
}

// ClearExpired deletes all expired session rows. Housekeeping only;
// correctness never depends on it.
func ClearExpired() (int64, error) {
	db := database.GetDB()
	result := db.Where("expiry_time <= ?", time.Now().Unix()).Delete(model.Session{})
	return result.RowsAffected, result.Error
}

// redisStore keeps sessions in Redis with native TTL expiry.
type redisStore struct {
	client *goredis.Client
}

// NewRedisStore returns a Redis-backed session store.
func NewRedisStore(client *goredis.Client) Store {
	return &redisStore{client: client}
}

func redisKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

func (s *redisStore) Create(token, userId string, ttl time.Duration) error {
	return s.client.Set(context.Background(), redisKey(token), userId, ttl).Err()
}

func (s *redisStore) Resolve(token string) (string, bool) {
	userId, err := s.client.Get(context.Background(), redisKey(token)).Result()
	if err == goredis.Nil {
		return "", false
	}
	if err != nil {
		logger.Warning("resolve session err:", err)
		return "", false
	}
	return userId, true
}

func (s *redisStore) Destroy(token string) error {
	return s.client.Del(context.Background(), redisKey(token)).Err()
}
