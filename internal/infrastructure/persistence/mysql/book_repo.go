package mysql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// bookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误(如标题撞唯一索引),转换为业务错误
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		// title唯一索引冲突 → Conflict
		// 并发创建同名图书时先查重可能双双通过,这里是最终兜底
		if isDuplicateError(err) {
			return book.ErrTitleDuplicate
		}
		return apperrors.Wrap(err, "创建图书失败")
	}

	// 回填存储分配的ID与时间戳
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := r.db.WithContext(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// FindByTitle 根据标题精确查找
// title列是utf8mb4_bin排序规则,等值比较天然是字节级大小写敏感,
// 且能命中唯一索引
func (r *bookRepository) FindByTitle(ctx context.Context, title string) (*book.Book, error) {
	var model BookModel
	err := r.db.WithContext(ctx).Where("title = ?", title).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// Update 保存图书全部字段
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)
	model.ID = b.ID
	model.CreatedAt = b.CreatedAt

	db := r.getDB(ctx)
	if err := db.Save(model).Error; err != nil {
		// 改名撞到其他图书的标题
		if isDuplicateError(err) {
			return book.ErrTitleDuplicate
		}
		return apperrors.Wrap(err, "更新图书失败")
	}

	b.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除图书(物理删除)
// 行被真正移出唯一索引,同名图书随后可以重新创建
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&BookModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除图书失败")
	}

	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}

	return nil
}

// List 按查询计划返回一页图书
func (r *bookRepository) List(ctx context.Context, q *book.Query) ([]*book.Book, error) {
	var models []BookModel

	query := r.applyFilter(r.db.WithContext(ctx).Model(&BookModel{}), q)

	// 排序:SortBy来自领域层的封闭枚举,天然是白名单,不存在注入面
	if q.SortBy != "" {
		direction := "ASC"
		if q.Order == book.OrderDesc {
			direction = "DESC"
		}
		query = query.Order(fmt.Sprintf("%s %s", q.SortBy, direction))
	}

	// 分页
	query = query.Offset(q.Offset()).Limit(q.PageSize)

	if err := query.Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询图书列表失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}

	return books, nil
}

// Count 统计满足过滤谓词的总数(不含分页)
func (r *bookRepository) Count(ctx context.Context, q *book.Query) (int64, error) {
	var total int64

	query := r.applyFilter(r.db.WithContext(ctx).Model(&BookModel{}), q)
	if err := query.Count(&total).Error; err != nil {
		return 0, apperrors.Wrap(err, "查询图书总数失败")
	}

	return total, nil
}

// LockByID 悲观锁查询图书(SELECT FOR UPDATE)
// 更新工作流在事务内锁行,防止并发更新互相覆盖
func (r *bookRepository) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel

	db := r.getDB(ctx)
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "锁定图书失败")
	}

	return toBookEntity(&model), nil
}

// applyFilter 把查询计划的过滤谓词翻译成WHERE条件
// List与Count共用,保证数据页和总数针对同一组谓词
func (r *bookRepository) applyFilter(query *gorm.DB, q *book.Query) *gorm.DB {
	// 隐含谓词:只返回有库存的图书
	query = query.Where("stock > 0")

	if q.Category != "" {
		query = query.Where("category = ?", q.Category)
	}
	if q.Author != "" {
		query = query.Where("author = ?", q.Author)
	}
	if q.MinRating != nil {
		query = query.Where("rating >= ?", *q.MinRating)
	}
	if q.TitleLike != "" {
		// title列是binary排序规则,子串匹配需要显式折叠大小写
		pattern := "%" + escapeLike(strings.ToLower(q.TitleLike)) + "%"
		query = query.Where("LOWER(title) LIKE ?", pattern)
	}

	return query
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toBookModel 领域实体 → GORM模型
func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		Title:       b.Title,
		Description: b.Description,
		Price:       b.Price,
		Stock:       b.Stock,
		Category:    b.Category,
		Author:      b.Author,
		Rating:      b.Rating,
	}
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:          model.ID,
		Title:       model.Title,
		Description: model.Description,
		Price:       model.Price,
		Stock:       model.Stock,
		Category:    model.Category,
		Author:      model.Author,
		Rating:      model.Rating,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// getDB 从context获取事务DB,如果没有则使用默认DB
func (r *bookRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}
