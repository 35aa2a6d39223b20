package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter 出站请求QPS限速器
// Cloudinary管理API按配额计费且超限会惩罚性封禁，递归拉取文件夹层级时
// 请求量与层级数成正比，所有出站调用统一经过限速器平滑
type Limiter struct {
	mu     sync.Mutex
	qps    int // 0表示不限速
	bucket *rate.Limiter
}

// New 创建限速器，qps为每秒请求数上限，0或负数表示不限速
func New(qps int) *Limiter {
	l := &Limiter{}
	l.rebuild(qps)
	return l
}

// rebuild 重建令牌桶，桶容量等于QPS，允许一秒内的突发
// 调用方需持有锁或处于构造期
func (l *Limiter) rebuild(qps int) {
	if qps <= 0 {
		l.qps = 0
		l.bucket = rate.NewLimiter(rate.Inf, 1)
		return
	}
	l.qps = qps
	l.bucket = rate.NewLimiter(rate.Limit(qps), qps)
}

// Wait 阻塞直到获得令牌，上下文取消或超时时返回错误
func (l *Limiter) Wait(ctx context.Context) error {
	return l.current().Wait(ctx)
}

// Allow 非阻塞检查是否放行当前请求
func (l *Limiter) Allow() bool {
	return l.current().Allow()
}

// SetQPS 运行时调整限速，重建令牌桶即丢弃已积累的令牌
func (l *Limiter) SetQPS(qps int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rebuild(qps)
}

// QPS 返回当前限速值，0表示不限速
func (l *Limiter) QPS() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.qps
}

func (l *Limiter) current() *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.bucket
}
