package services

import (
	"TodoGo/models"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisCache(t *testing.T) (*RedisTaskCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisTaskCache(client, time.Minute), mr
}

func TestRedisTaskCache_ServesAndInvalidates(t *testing.T) {
	cache, mr := newRedisCache(t)
	db := newTestDB(t)
	svc := NewTaskService(db, cache)
	ctx := context.Background()

	first := mustCreate(t, svc, "Pay rent", models.DueLater)
	tasks, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.True(t, mr.Exists(taskListCacheKey))
	assert.Equal(t, time.Minute, mr.TTL(taskListCacheKey))

	// a row written behind the service's back is not seen while the snapshot is live
	require.NoError(t, db.Create(&models.Task{Text: "Sneaky", Due: models.DueToday}).Error)
	tasks, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)

	_, err = svc.SetCompleted(ctx, first.ID, true)
	require.NoError(t, err)
	assert.False(t, mr.Exists(taskListCacheKey))

	tasks, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
}

func TestRedisTaskCache_RoundTripKeepsShape(t *testing.T) {
	cache, _ := newRedisCache(t)
	ctx := context.Background()
	at := "09:15:00"

	_, gen, ok := cache.Get(ctx)
	require.False(t, ok)
	cache.Set(ctx, gen, []models.Task{
		{ID: 2, Text: "Move", Due: models.DueProject, SubSteps: []models.Substep{{ID: 1, TaskID: 2, Text: "Boxes", Completed: true}}},
		{ID: 1, Text: "Standup", Due: models.DueToday, ScheduledTime: &at},
	})

	tasks, _, ok := cache.Get(ctx)
	require.True(t, ok)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Boxes", tasks[0].SubSteps[0].Text)
	assert.True(t, tasks[0].SubSteps[0].Completed)
	require.NotNil(t, tasks[1].ScheduledTime)
	assert.Equal(t, at, *tasks[1].ScheduledTime)

	cache.Invalidate(ctx)
	_, _, ok = cache.Get(ctx)
	assert.False(t, ok)
}

func TestRedisTaskCache_CorruptEntryIsDropped(t *testing.T) {
	cache, mr := newRedisCache(t)
	require.NoError(t, mr.Set(taskListCacheKey, "{not json"))

	_, _, ok := cache.Get(context.Background())
	assert.False(t, ok)
	assert.False(t, mr.Exists(taskListCacheKey))
}

// writeBetweenQueryAndSet 在 List 查询完成之后、快照写入之前插入一次写操作
type writeBetweenQueryAndSet struct {
	*RedisTaskCache
	write func()
}

func (c *writeBetweenQueryAndSet) Set(ctx context.Context, gen int64, tasks []models.Task) {
	if c.write != nil {
		write := c.write
		c.write = nil
		write()
	}
	c.RedisTaskCache.Set(ctx, gen, tasks)
}

func TestRedisTaskCache_WriteDuringListIsNotMasked(t *testing.T) {
	redisCache, mr := newRedisCache(t)
	cache := &writeBetweenQueryAndSet{RedisTaskCache: redisCache}
	svc := NewTaskService(newTestDB(t), cache)
	ctx := context.Background()

	task := mustCreate(t, svc, "Pay rent", models.DueToday)
	cache.write = func() {
		_, err := svc.SetCompleted(ctx, task.ID, true)
		require.NoError(t, err)
	}

	_, err := svc.List(ctx)
	require.NoError(t, err)
	assert.False(t, mr.Exists(taskListCacheKey))

	tasks, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].Completed)
	assert.True(t, mr.Exists(taskListCacheKey))

	tasks, err = svc.List(ctx)
	require.NoError(t, err)
	assert.True(t, tasks[0].Completed)
}

func TestRedisTaskCache_SetWithOldGenerationIsDropped(t *testing.T) {
	cache, mr := newRedisCache(t)
	ctx := context.Background()

	_, gen, ok := cache.Get(ctx)
	require.False(t, ok)
	assert.Equal(t, int64(0), gen)

	cache.Invalidate(ctx)
	cache.Set(ctx, gen, []models.Task{{ID: 1, Text: "Old", Due: models.DueToday}})
	assert.False(t, mr.Exists(taskListCacheKey))

	_, gen, ok = cache.Get(ctx)
	require.False(t, ok)
	assert.Equal(t, int64(1), gen)
	cache.Set(ctx, gen, []models.Task{{ID: 1, Text: "New", Due: models.DueToday}})

	tasks, _, ok := cache.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, "New", tasks[0].Text)
}

func TestNewTaskCache_WithoutClient(t *testing.T) {
	assert.IsType(t, NopTaskCache{}, NewTaskCache(nil, time.Minute))
}
