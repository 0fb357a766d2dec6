package store

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("key not found")

// KV 按带作用域的 key 存取序列化后的记录，ttl 为 0 表示不过期
// 会话与申请列表都走这一层，换成别的存储时调用方不需要改动
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Expire(ctx context.Context, key string, ttl time.Duration) error
}
