package services

import (
	"TodoGo/config"
	"TodoGo/models"
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	taskListCacheKey = "todo:tasks:list"
	// taskListGenKey 每次失效加一, 快照只能写入读取时的那一代
	taskListGenKey = "todo:tasks:gen"
)

// noGeneration 表示读不到代数, 这次结果不写入缓存
const noGeneration int64 = -1

var errStaleSnapshot = errors.New("task list snapshot is stale")

// TaskCache 缓存 List 的结果, 任何写操作之后失效.
// Get 未命中时返回当前代数, Set 只在代数没有变化时写入.
type TaskCache interface {
	Get(ctx context.Context) (tasks []models.Task, gen int64, ok bool)
	Set(ctx context.Context, gen int64, tasks []models.Task)
	Invalidate(ctx context.Context)
}

// NopTaskCache 未配置 Redis 时使用
type NopTaskCache struct{}

func (NopTaskCache) Get(context.Context) ([]models.Task, int64, bool) { return nil, noGeneration, false }
func (NopTaskCache) Set(context.Context, int64, []models.Task)        {}
func (NopTaskCache) Invalidate(context.Context)                       {}

// RedisTaskCache 把任务列表快照存成一个 JSON 字符串. 缓存失败只记录日志
type RedisTaskCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisTaskCache(client *redis.Client, ttl time.Duration) *RedisTaskCache {
	return &RedisTaskCache{client: client, ttl: ttl}
}

func (c *RedisTaskCache) Get(ctx context.Context) ([]models.Task, int64, bool) {
	values, err := c.client.MGet(ctx, taskListCacheKey, taskListGenKey).Result()
	if err != nil {
		config.Logger.Warnw("读取任务缓存失败", "error", err)
		return nil, noGeneration, false
	}

	gen, err := parseGeneration(values[1])
	if err != nil {
		config.Logger.Warnw("任务缓存代数格式错误", "error", err)
		return nil, noGeneration, false
	}

	data, ok := values[0].(string)
	if !ok {
		return nil, gen, false
	}
	var tasks []models.Task
	if err := json.Unmarshal([]byte(data), &tasks); err != nil {
		config.Logger.Warnw("任务缓存格式错误", "error", err)
		c.Invalidate(ctx)
		return nil, noGeneration, false
	}
	return tasks, gen, true
}

// Set 在 WATCH 代数键的事务里写快照, 期间有失效就放弃
func (c *RedisTaskCache) Set(ctx context.Context, gen int64, tasks []models.Task) {
	if gen == noGeneration {
		return
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		config.Logger.Warnw("序列化任务缓存失败", "error", err)
		return
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, taskListGenKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != gen {
			return errStaleSnapshot
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, taskListCacheKey, data, c.ttl)
			return nil
		})
		return err
	}, taskListGenKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleSnapshot), errors.Is(err, redis.TxFailedErr):
		config.Logger.Debugw("任务列表已变化, 跳过缓存写入", "generation", gen)
	default:
		config.Logger.Warnw("写入任务缓存失败", "error", err)
	}
}

func (c *RedisTaskCache) Invalidate(ctx context.Context) {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, taskListGenKey)
		pipe.Del(ctx, taskListCacheKey)
		return nil
	})
	if err != nil {
		config.Logger.Warnw("清除任务缓存失败", "error", err)
	}
}

func parseGeneration(value any) (int64, error) {
	if value == nil {
		return 0, nil
	}
	raw, ok := value.(string)
	if !ok {
		return 0, errors.New("unexpected generation type")
	}
	return strconv.ParseInt(raw, 10, 64)
}

// NewTaskCache 根据 Redis 客户端是否存在选择实现
func NewTaskCache(client *redis.Client, ttl time.Duration) TaskCache {
	if client == nil {
		return NopTaskCache{}
	}
	return NewRedisTaskCache(client, ttl)
}
