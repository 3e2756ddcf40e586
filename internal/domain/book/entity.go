package book

import (
	"time"
	"unicode/utf8"
)

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. Book是目录聚合的根实体,包含上架图书的全部属性
// 2. 价格使用int64存储"分"为单位(避免浮点数精度问题)
// 3. Title作为业务唯一标识(数据库层唯一索引兜底,见repository实现)
// 4. 实体要么完整合法要么不存在,不允许部分构造(Validate保证)
type Book struct {
	ID          uint
	Title       string  // 书名(全局唯一)
	Description string  // 图书描述(可选)
	Price       int64   // 价格(单位:分,1元=100分)
	Stock       int     // 库存数量
	Category    string  // 分类
	Author      string  // 作者
	Rating      float64 // 评分(0-5)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// 字段约束
const (
	TitleMinLen       = 2   // 标题最短字符数
	TitleMaxLen       = 100 // 标题最长字符数
	DescriptionMaxLen = 500 // 描述最长字符数
	RatingMin         = 0.0
	RatingMax         = 5.0
)

// NewBook 创建新图书(工厂方法)
// 注意:调用方需在持久化前调用Validate,保证实体完整合法
func NewBook(title, description string, price int64, stock int, category, author string, rating float64) *Book {
	now := time.Now()
	return &Book{
		Title:       title,
		Description: description,
		Price:       price,
		Stock:       stock,
		Category:    category,
		Author:      author,
		Rating:      rating,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate 校验全部字段约束
// 业务规则:
// - 标题2-100个字符,非空
// - 描述最长500个字符(可为空)
// - 价格>=0
// - 库存>=0
// - 分类、作者非空
// - 评分在[0,5]区间
func (b *Book) Validate() error {
	if err := validateTitle(b.Title); err != nil {
		return err
	}
	if err := validateDescription(b.Description); err != nil {
		return err
	}
	if b.Price < 0 {
		return ErrInvalidPrice
	}
	if b.Stock < 0 {
		return ErrInvalidStock
	}
	if b.Category == "" {
		return ErrInvalidCategory
	}
	if b.Author == "" {
		return ErrInvalidAuthor
	}
	if err := validateRating(b.Rating); err != nil {
		return err
	}
	return nil
}

// InStock 是否有库存(列表查询只返回有库存的图书)
func (b *Book) InStock() bool {
	return b.Stock > 0
}

// =========================================
// Patch:部分更新
// =========================================

// Patch 部分更新载荷
// 设计说明:
// 每个字段用指针表达"提供了/未提供",未提供的字段保持原值。
// 相比map[string]interface{},字段集是封闭的,校验可以做到逐字段穷举,
// 未知字段在DTO解码阶段即被拒绝,不会被悄悄合并进实体。
type Patch struct {
	Title       *string
	Description *string
	Price       *int64
	Stock       *int
	Category    *string
	Author      *string
	Rating      *float64
}

// IsEmpty 是否没有任何待更新字段
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Price == nil &&
		p.Stock == nil && p.Category == nil && p.Author == nil && p.Rating == nil
}

// Validate 逐字段校验提供的值
// 任一字段违反约束即返回错误,此时不允许应用到实体(实体保持原状)
func (p Patch) Validate() error {
	if p.Title != nil {
		if err := validateTitle(*p.Title); err != nil {
			return err
		}
	}
	if p.Description != nil {
		if err := validateDescription(*p.Description); err != nil {
			return err
		}
	}
	if p.Price != nil && *p.Price < 0 {
		return ErrInvalidPrice
	}
	if p.Stock != nil && *p.Stock < 0 {
		return ErrInvalidStock
	}
	if p.Category != nil && *p.Category == "" {
		return ErrInvalidCategory
	}
	if p.Author != nil && *p.Author == "" {
		return ErrInvalidAuthor
	}
	if p.Rating != nil {
		if err := validateRating(*p.Rating); err != nil {
			return err
		}
	}
	return nil
}

// Apply 将补丁合并到实体(领域行为)
// 前置条件:Validate已通过
func (b *Book) Apply(p Patch) {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
	if p.Price != nil {
		b.Price = *p.Price
	}
	if p.Stock != nil {
		b.Stock = *p.Stock
	}
	if p.Category != nil {
		b.Category = *p.Category
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.Rating != nil {
		b.Rating = *p.Rating
	}
	b.UpdatedAt = time.Now()
}

// =========================================
// 字段校验辅助函数
// =========================================

func validateTitle(title string) error {
	n := utf8.RuneCountInString(title)
	if n < TitleMinLen || n > TitleMaxLen {
		return ErrInvalidTitle
	}
	return nil
}

func validateDescription(desc string) error {
	if utf8.RuneCountInString(desc) > DescriptionMaxLen {
		return ErrInvalidDescription
	}
	return nil
}

func validateRating(rating float64) error {
	if rating < RatingMin || rating > RatingMax {
		return ErrInvalidRating
	}
	return nil
}
