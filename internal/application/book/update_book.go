package book

import (
	"context"
	"log"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// UpdateBookUseCase 图书部分更新用例
// 更新成功后失效详情缓存(先改库再删缓存),并发布updated事件。
type UpdateBookUseCase struct {
	bookService book.Service
	cache       *redis.BookCache
	publisher   EventPublisher
}

// NewUpdateBookUseCase 创建更新用例
func NewUpdateBookUseCase(bookService book.Service, cache *redis.BookCache, publisher EventPublisher) *UpdateBookUseCase {
	return &UpdateBookUseCase{bookService: bookService, cache: cache, publisher: publisher}
}

// UpdateBookRequest 部分更新请求DTO
// nil表示字段未提供,保持原值
type UpdateBookRequest struct {
	Title       *string
	Description *string
	Price       *int64
	Stock       *int
	Category    *string
	Author      *string
	Rating      *float64
}

// Execute 执行更新
func (uc *UpdateBookUseCase) Execute(ctx context.Context, callerID uint, id uint, req UpdateBookRequest) (*BookListItem, error) {
	start := time.Now()

	patch := book.Patch{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
		Author:      req.Author,
		Rating:      req.Rating,
	}

	updated, err := uc.bookService.UpdateBook(ctx, callerID, id, patch)
	if err != nil {
		metrics.ObserveBookMutation("update", mutationResult(err), time.Since(start))
		return nil, err
	}

	metrics.ObserveBookMutation("update", "ok", time.Since(start))

	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, id); err != nil {
			log.Printf("失效图书缓存失败: book_id=%d, err=%v", id, err)
		}
	}

	publishEvent(uc.publisher, RoutingKeyBookUpdated, BookEvent{
		BookID:     updated.ID,
		Title:      updated.Title,
		Action:     "updated",
		OperatorID: callerID,
	})

	item := toListItem(updated)
	return &item, nil
}
