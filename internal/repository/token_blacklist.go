// Package repository 提供了数据访问层的实现。
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// TokenBlacklist 记录已登出的 token（以 jti 标识），直到其自然过期。
type TokenBlacklist interface {
	Add(ctx context.Context, jti string, ttl time.Duration) error
	Contains(ctx context.Context, jti string) (bool, error)
}

type redisTokenBlacklist struct {
	redisClient *redis.Client
}

// NewTokenBlacklist 创建一个基于 Redis 的 TokenBlacklist 实例。
func NewTokenBlacklist(redisClient *redis.Client) TokenBlacklist {
	return &redisTokenBlacklist{redisClient: redisClient}
}

func blacklistKey(jti string) string {
	return fmt.Sprintf("blacklist:%s", jti)
}

// Add 将 jti 写入黑名单，ttl 应为 token 的剩余有效期。
func (r *redisTokenBlacklist) Add(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		// 已过期的 token 不需要再记录
		return nil
	}
	if err := r.redisClient.Set(ctx, blacklistKey(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	return nil
}

// Contains 判断 jti 是否已被拉黑。
func (r *redisTokenBlacklist) Contains(ctx context.Context, jti string) (bool, error) {
	n, err := r.redisClient.Exists(ctx, blacklistKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return n > 0, nil
}

// noopTokenBlacklist 在未配置 Redis 时使用，登出不产生任何效果。
type noopTokenBlacklist struct{}

// NewNoopTokenBlacklist 返回一个不记录任何内容的 TokenBlacklist。
func NewNoopTokenBlacklist() TokenBlacklist {
	return noopTokenBlacklist{}
}

func (noopTokenBlacklist) Add(context.Context, string, time.Duration) error { return nil }

func (noopTokenBlacklist) Contains(context.Context, string) (bool, error) { return false, nil }
