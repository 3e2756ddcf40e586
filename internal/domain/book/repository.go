package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
// 3. 存储层需为title建唯一索引:创建时的"先查后插"存在check-then-act竞态,
//    两个并发请求可能同时通过查重,最终由唯一索引兜底,
//    实现方应把唯一索引冲突转换为ErrTitleDuplicate
type Repository interface {
	// Create 创建图书(标题冲突返回ErrTitleDuplicate)
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书(不存在返回ErrBookNotFound)
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByTitle 根据标题精确查找(大小写敏感,不存在返回ErrBookNotFound)
	FindByTitle(ctx context.Context, title string) (*Book, error)

	// Update 保存图书全部字段(改名撞唯一索引时返回ErrTitleDuplicate)
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书(物理删除,标题随之可复用;不存在返回ErrBookNotFound)
	Delete(ctx context.Context, id uint) error

	// List 按查询计划返回一页图书(过滤+排序+分页)
	List(ctx context.Context, q *Query) ([]*Book, error)

	// Count 统计满足同一组过滤谓词的总数(不受分页影响)
	Count(ctx context.Context, q *Query) (int64, error)

	// LockByID 悲观锁查询(SELECT FOR UPDATE,事务内使用)
	// 更新工作流用它锁行,防止并发更新互相覆盖
	LockByID(ctx context.Context, id uint) (*Book, error)
}

// TxRunner 事务执行器接口
// fn内通过context取到事务句柄,返回error时回滚,否则提交
type TxRunner interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
