package book

import (
	"context"
	"errors"
	"log"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// GetBookUseCase 图书详情查询用例
// Cache-Aside模式:先查Redis缓存,未命中回源数据库并回填。
// 缓存故障时降级为直查数据库(BookCache内置熔断器)。
type GetBookUseCase struct {
	bookService book.Service
	cache       *redis.BookCache
}

// NewGetBookUseCase 创建详情查询用例
// cache可以为nil(未部署Redis时直查数据库)
func NewGetBookUseCase(bookService book.Service, cache *redis.BookCache) *GetBookUseCase {
	return &GetBookUseCase{bookService: bookService, cache: cache}
}

// Execute 执行详情查询
func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (*BookListItem, error) {
	// 1. 查缓存
	if uc.cache != nil {
		b, err := uc.cache.Get(ctx, id)
		if err == nil {
			metrics.ObserveCacheRequest("book", "hit")
			item := toListItem(b)
			return &item, nil
		}
		if errors.Is(err, redis.ErrCacheMiss) {
			metrics.ObserveCacheRequest("book", "miss")
		} else {
			// 缓存不可用(含熔断打开),降级直查数据库
			metrics.ObserveCacheRequest("book", "error")
		}
	}

	// 2. 回源数据库
	b, err := uc.bookService.GetBookByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3. 回填缓存,失败不影响响应
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, b); err != nil {
			log.Printf("回填图书缓存失败: book_id=%d, err=%v", id, err)
		}
	}

	item := toListItem(b)
	return &item, nil
}
