package dto

import "fmt"

// CreateBookRequest HTTP创建图书请求
// 字段约束的完整校验在领域层(错误文案统一),这里只做required级别的绑定
type CreateBookRequest struct {
	Title       string  `json:"title" binding:"required" example:"Go程序设计语言"`
	Description string  `json:"description" example:"Go语言权威教程"`
	Price       int64   `json:"price" binding:"min=0" example:"7900"` // 价格(分),79.00元
	Stock       int     `json:"stock" binding:"min=0" example:"100"`
	Category    string  `json:"category" binding:"required" example:"编程"`
	Author      string  `json:"author" binding:"required" example:"Alan Donovan"`
	Rating      float64 `json:"rating" binding:"min=0,max=5" example:"4.8"`
}

// UpdateBookRequest HTTP部分更新请求
// 所有字段可选,nil表示保持原值;未知字段在解码阶段拒绝(DisallowUnknownFields)
type UpdateBookRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *int64   `json:"price"`
	Stock       *int     `json:"stock"`
	Category    *string  `json:"category"`
	Author      *string  `json:"author"`
	Rating      *float64 `json:"rating"`
}

// BookResponse HTTP图书响应
type BookResponse struct {
	ID          uint    `json:"id" example:"1"`
	Title       string  `json:"title" example:"Go程序设计语言"`
	Description string  `json:"description" example:"Go语言权威教程"`
	Price       int64   `json:"price" example:"7900"`       // 价格(分)
	PriceYuan   string  `json:"price_yuan" example:"79.00"` // 价格(元),方便前端显示
	Stock       int     `json:"stock" example:"100"`
	Category    string  `json:"category" example:"编程"`
	Author      string  `json:"author" example:"Alan Donovan"`
	Rating      float64 `json:"rating" example:"4.8"`
}

// ListBooksResponse HTTP图书列表响应
// 对外契约:{ "books": [...], "totalPages": N, "currentPage": N }
type ListBooksResponse struct {
	Books       []BookResponse `json:"books"`
	TotalPages  int            `json:"totalPages" example:"5"`
	CurrentPage int            `json:"currentPage" example:"1"`
}

// DeleteBookResponse HTTP删除响应
type DeleteBookResponse struct {
	Message string `json:"message" example:"图书删除成功"`
}

// FormatPriceYuan 价格分→元的字符串表示,如7900 → "79.00"
func FormatPriceYuan(priceFen int64) string {
	return fmt.Sprintf("%.2f", float64(priceFen)/100.0)
}
