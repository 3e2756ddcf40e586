package book

import (
	"context"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// ListBooksUseCase 目录列表查询用例
// 设计说明:
// 1. 原始查询参数先整体校验为查询计划,任一参数非法则拒绝整个请求
// 2. 过滤(含隐含的stock>0)、排序、分页全部下推到存储层
// 3. 响应只携带books/totalPages/currentPage,总条数不对外暴露
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{bookService: bookService}
}

// ListBooksRequest 列表查询请求DTO(原始字符串,未校验)
type ListBooksRequest struct {
	Category string
	Author   string
	Rating   string
	Title    string
	Page     string
	Limit    string
	SortBy   string
	Order    string
}

// BookListItem 列表项DTO
type BookListItem struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       int64   `json:"price"` // 价格(分)
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
	Author      string  `json:"author"`
	Rating      float64 `json:"rating"`
}

// ListBooksResponse 列表查询响应DTO
type ListBooksResponse struct {
	Books       []BookListItem `json:"books"`
	TotalPages  int            `json:"totalPages"`
	CurrentPage int            `json:"currentPage"`
}

// Execute 执行列表查询
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (*ListBooksResponse, error) {
	start := time.Now()

	// 1. 原始参数 → 查询计划
	q, err := book.ParseListQuery(book.ListQueryRaw{
		Category: req.Category,
		Author:   req.Author,
		Rating:   req.Rating,
		Title:    req.Title,
		Page:     req.Page,
		Limit:    req.Limit,
		SortBy:   req.SortBy,
		Order:    req.Order,
	})
	if err != nil {
		metrics.ObserveCatalogQuery("invalid", 0, 0)
		return nil, err
	}

	// 2. 执行查询
	result, err := uc.bookService.ListBooks(ctx, q)
	if err != nil {
		metrics.ObserveCatalogQuery("error", 0, 0)
		return nil, err
	}

	// 3. 转换为DTO
	// 即使本页为空也返回[]而不是null
	items := make([]BookListItem, len(result.Books))
	for i, b := range result.Books {
		items[i] = toListItem(b)
	}

	metrics.ObserveCatalogQuery("ok", len(items), time.Since(start))

	return &ListBooksResponse{
		Books:       items,
		TotalPages:  result.TotalPages,
		CurrentPage: result.CurrentPage,
	}, nil
}

func toListItem(b *book.Book) BookListItem {
	return BookListItem{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		Price:       b.Price,
		Stock:       b.Stock,
		Category:    b.Category,
		Author:      b.Author,
		Rating:      b.Rating,
	}
}
