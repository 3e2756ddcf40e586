package book

import (
	"context"
	"log"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// DeleteBookUseCase 图书删除用例
type DeleteBookUseCase struct {
	bookService book.Service
	cache       *redis.BookCache
	publisher   EventPublisher
}

// NewDeleteBookUseCase 创建删除用例
func NewDeleteBookUseCase(bookService book.Service, cache *redis.BookCache, publisher EventPublisher) *DeleteBookUseCase {
	return &DeleteBookUseCase{bookService: bookService, cache: cache, publisher: publisher}
}

// Execute 执行删除
// ID不存在时直接返回NotFound(不触发角色检查),见领域服务契约
func (uc *DeleteBookUseCase) Execute(ctx context.Context, callerID uint, id uint) error {
	start := time.Now()

	if err := uc.bookService.DeleteBook(ctx, callerID, id); err != nil {
		metrics.ObserveBookMutation("delete", mutationResult(err), time.Since(start))
		return err
	}

	metrics.ObserveBookMutation("delete", "ok", time.Since(start))

	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, id); err != nil {
			log.Printf("失效图书缓存失败: book_id=%d, err=%v", id, err)
		}
	}

	publishEvent(uc.publisher, RoutingKeyBookDeleted, BookEvent{
		BookID:     id,
		Action:     "deleted",
		OperatorID: callerID,
	})

	return nil
}
