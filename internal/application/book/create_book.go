package book

import (
	"context"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// CreateBookUseCase 图书创建用例
// 前置检查(查重/鉴权/校验)全部在领域服务内按固定顺序执行,
// 应用层只负责DTO转换、指标与事件发布。
type CreateBookUseCase struct {
	bookService book.Service
	publisher   EventPublisher
}

// NewCreateBookUseCase 创建用例
func NewCreateBookUseCase(bookService book.Service, publisher EventPublisher) *CreateBookUseCase {
	return &CreateBookUseCase{bookService: bookService, publisher: publisher}
}

// CreateBookRequest 创建请求DTO
type CreateBookRequest struct {
	Title       string
	Description string
	Price       int64 // 分
	Stock       int
	Category    string
	Author      string
	Rating      float64
}

// Execute 执行创建
func (uc *CreateBookUseCase) Execute(ctx context.Context, callerID uint, req CreateBookRequest) (*BookListItem, error) {
	start := time.Now()

	b := book.NewBook(req.Title, req.Description, req.Price, req.Stock,
		req.Category, req.Author, req.Rating)

	created, err := uc.bookService.CreateBook(ctx, callerID, b)
	if err != nil {
		metrics.ObserveBookMutation("create", mutationResult(err), time.Since(start))
		return nil, err
	}

	metrics.ObserveBookMutation("create", "ok", time.Since(start))
	publishEvent(uc.publisher, RoutingKeyBookCreated, BookEvent{
		BookID:     created.ID,
		Title:      created.Title,
		Action:     "created",
		OperatorID: callerID,
	})

	item := toListItem(created)
	return &item, nil
}
