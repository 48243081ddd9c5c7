package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/questionbase/questionbase/api/internal/config"
)

func TestRedisOptions(t *testing.T) {
	opts := redisOptions(config.RedisConfig{Host: "cache", Port: 6380, Password: "pw", DB: 2})

	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 3*time.Second, opts.ReadTimeout)
}

func TestRedisDBClose(t *testing.T) {
	db := &RedisDB{}
	assert.NoError(t, db.Close())
}
