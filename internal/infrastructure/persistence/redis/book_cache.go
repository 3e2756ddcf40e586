package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/circuitbreaker"
)

// ErrCacheMiss 缓存未命中
var ErrCacheMiss = errors.New("book cache miss")

// BookCache 图书详情缓存（Cache-Aside）
// 设计说明:
// 1. Key设计:book:{id},TTL默认10分钟
// 2. 所有Redis访问经过熔断器:缓存故障时读路径立即降级直连数据库,
//    不让每个请求都等缓存超时
// 3. 缓存错误只影响性能不影响正确性,调用方对Get/Set失败一律容忍
type BookCache struct {
	client *goredis.Client
	cb     *circuitbreaker.CircuitBreaker
	ttl    time.Duration
}

// NewBookCache 创建图书缓存
func NewBookCache(client *goredis.Client) *BookCache {
	cb := circuitbreaker.NewCircuitBreaker("book-cache", circuitbreaker.Config{
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	cb.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
		log.Printf("熔断器[%s]状态变化: %s → %s", name, from, to)
	})

	return &BookCache{
		client: client,
		cb:     cb,
		ttl:    10 * time.Minute,
	}
}

// cachedBook 缓存序列化结构(与领域实体解耦,字段变更不破坏旧缓存的反序列化)
type cachedBook struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       int64   `json:"price"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
	Author      string  `json:"author"`
	Rating      float64 `json:"rating"`
	CreatedAt   int64   `json:"created_at"`
	UpdatedAt   int64   `json:"updated_at"`
}

// Get 读取缓存的图书详情
// 未命中返回ErrCacheMiss;熔断器打开时返回ErrOpenState,调用方降级查库
func (c *BookCache) Get(ctx context.Context, id uint) (*book.Book, error) {
	var b *book.Book

	err := c.cb.Execute(func() error {
		data, err := c.client.Get(ctx, bookKey(id)).Bytes()
		if err != nil {
			if errors.Is(err, goredis.Nil) {
				// 未命中不算下游故障,不计入熔断统计之外单独返回
				b = nil
				return nil
			}
			return err
		}

		var cached cachedBook
		if err := json.Unmarshal(data, &cached); err != nil {
			// 缓存内容损坏,按未命中处理
			b = nil
			return nil
		}

		b = &book.Book{
			ID:          cached.ID,
			Title:       cached.Title,
			Description: cached.Description,
			Price:       cached.Price,
			Stock:       cached.Stock,
			Category:    cached.Category,
			Author:      cached.Author,
			Rating:      cached.Rating,
			CreatedAt:   time.Unix(cached.CreatedAt, 0),
			UpdatedAt:   time.Unix(cached.UpdatedAt, 0),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrCacheMiss
	}

	return b, nil
}

// Set 写入图书详情缓存
func (c *BookCache) Set(ctx context.Context, b *book.Book) error {
	return c.cb.Execute(func() error {
		cached := cachedBook{
			ID:          b.ID,
			Title:       b.Title,
			Description: b.Description,
			Price:       b.Price,
			Stock:       b.Stock,
			Category:    b.Category,
			Author:      b.Author,
			Rating:      b.Rating,
			CreatedAt:   b.CreatedAt.Unix(),
			UpdatedAt:   b.UpdatedAt.Unix(),
		}

		data, err := json.Marshal(cached)
		if err != nil {
			return err
		}

		return c.client.Set(ctx, bookKey(b.ID), data, c.ttl).Err()
	})
}

// Invalidate 删除图书详情缓存(更新或删除图书后调用)
func (c *BookCache) Invalidate(ctx context.Context, id uint) error {
	return c.cb.Execute(func() error {
		return c.client.Del(ctx, bookKey(id)).Err()
	})
}

func bookKey(id uint) string {
	return fmt.Sprintf("book:%d", id)
}
