// Package history 记录 HTTP 服务的展开请求。
//
// 记录以 JSON 形式写入 Redis LIST（LPUSH → LTRIM → EXPIRE），最新记录在表头。
// 未启用 Redis 时使用 [Nop]。
package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/lwmacct/251207-go-pkg-contraction/internal/config"
)

// ErrDisabled 历史记录未启用。
var ErrDisabled = errors.New("history: disabled")

// Entry 一次展开请求的记录。只保存统计信息，不保存文本内容。
type Entry struct {
	ID              string    `json:"id"`
	Time            time.Time `json:"time"`
	InputCharacters int       `json:"input_characters"`
	Characters      int       `json:"characters"`
	Words           int       `json:"words"`
	Replacements    int       `json:"replacements"`
}

// NewEntry 以新的 uuid 与当前 UTC 时间（秒精度）创建记录。
func NewEntry() Entry {
	return Entry{
		ID:   uuid.NewString(),
		Time: time.Now().UTC().Truncate(time.Second),
	}
}

// Recorder 历史记录存取接口。
type Recorder interface {
	Record(ctx context.Context, e Entry) error
	Recent(ctx context.Context, n int64) ([]Entry, error)
}

// Redis 基于 Redis LIST 的 [Recorder]。
type Redis struct {
	rdb       *redis.Client
	key       string
	maxLen    int64
	retention time.Duration
}

// NewRedis 创建 Redis 记录器，key 为列表名，maxLen 为保留条数，retention 为 0 时不设置过期。
func NewRedis(rdb *redis.Client, key string, maxLen int64, retention time.Duration) *Redis {
	return &Redis{rdb: rdb, key: key, maxLen: maxLen, retention: retention}
}

// Record 写入一条记录并裁剪列表。
func (r *Redis) Record(ctx context.Context, e Entry) error {
	b, err := sonic.Marshal(e)
	if err != nil {
		return fmt.Errorf("history: marshal entry: %w", err)
	}

	if err := r.rdb.LPush(ctx, r.key, string(b)).Err(); err != nil {
		return fmt.Errorf("history: lpush %s: %w", r.key, err)
	}
	if r.maxLen > 0 {
		if err := r.rdb.LTrim(ctx, r.key, 0, r.maxLen-1).Err(); err != nil {
			return fmt.Errorf("history: ltrim %s: %w", r.key, err)
		}
	}
	if r.retention > 0 {
		if err := r.rdb.Expire(ctx, r.key, r.retention).Err(); err != nil {
			return fmt.Errorf("history: expire %s: %w", r.key, err)
		}
	}

	return nil
}

// Recent 返回最新的 n 条记录，最新在前。
func (r *Redis) Recent(ctx context.Context, n int64) ([]Entry, error) {
	if n <= 0 {
		return []Entry{}, nil
	}

	raw, err := r.rdb.LRange(ctx, r.key, 0, n-1).Result()
	if err != nil {
		return nil, fmt.Errorf("history: lrange %s: %w", r.key, err)
	}

	entries := make([]Entry, 0, len(raw))
	for _, item := range raw {
		var e Entry
		if err := sonic.UnmarshalString(item, &e); err != nil {
			return nil, fmt.Errorf("history: decode entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, nil
}

// Nop 未启用 Redis 时的 [Recorder]。
type Nop struct{}

// Record 不做任何事。
func (Nop) Record(context.Context, Entry) error { return nil }

// Recent 总是返回 [ErrDisabled]。
func (Nop) Recent(context.Context, int64) ([]Entry, error) { return nil, ErrDisabled }

// Dial 根据配置创建 Redis 客户端并 Ping 校验连通性。
func Dial(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("history: parse redis url: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if cfg.ReadTimeout > 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("history: ping %s (db=%d): %w", opts.Addr, opts.DB, err)
	}

	return rdb, nil
}

// Open 根据配置返回 [Recorder]。
//
// Redis 被禁用时返回 [Nop] 与 nil closer；否则调用 [Dial]，closer 用于关闭连接。
func Open(ctx context.Context, cfg config.RedisConfig) (Recorder, func() error, error) {
	if cfg.Disabled {
		return Nop{}, nil, nil
	}

	rdb, err := Dial(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	return NewRedis(rdb, cfg.Prefix+"history", cfg.MaxLen, cfg.Retention), rdb.Close, nil
}
