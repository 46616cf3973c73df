package redisrepos

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/studentlogs/core"
	"github.com/trezcool/studentlogs/tests"
)

// TEST_REDIS_ADDR points to a disposable server; DB 15 is flushed before each case.
func TestRepositories(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	conf := core.RedisConfig{Addr: addr, DB: 15}

	testutil.RunRepositorySuite(t, func(t *testing.T) testutil.Repositories {
		ctx := context.Background()
		rdb, err := Open(ctx, conf)
		require.NoError(t, err)
		require.NoError(t, rdb.FlushDB(ctx).Err())
		t.Cleanup(func() { _ = rdb.Close() })

		return testutil.Repositories{
			Courses: NewCourseRepository(rdb),
			Logs:    NewLogRepository(rdb),
		}
	})
}

func TestLoadHashes_skipsMissing(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	rdb, err := Open(ctx, core.RedisConfig{Addr: addr, DB: 15})
	require.NoError(t, err)
	defer rdb.Close()
	require.NoError(t, rdb.FlushDB(ctx).Err())

	require.NoError(t, rdb.HSet(ctx, courseInfoKey("CS4690"), "id", "CS4690", "display", "DevOps").Err())

	hashes, err := loadHashes(ctx, rdb, []string{"CS4690", "GONE"}, courseInfoKey)
	require.NoError(t, err)
	require.Len(t, hashes, 1)
	require.Equal(t, "DevOps", hashes[0]["display"])
}

func TestOpen_timeout(t *testing.T) {
	// non-routable address: the ping can only end through the timeout
	conf := core.RedisConfig{Addr: "10.255.255.1:6379", Timeout: 300 * time.Millisecond}

	start := time.Now()
	_, err := Open(context.Background(), conf)
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}
