package book

import (
	"context"
	"errors"
)

// Mutation 写操作类别
type Mutation string

const (
	MutationCreate Mutation = "create"
	MutationUpdate Mutation = "update"
	MutationDelete Mutation = "delete"
)

// Gate 写操作授权门
// 设计说明:
// 1. 根据调用方ID解析角色,三类写操作统一要求admin角色
// 2. 失败即关闭:身份无法解析时必须拒绝(ErrUnauthorized),绝不默认放行
// 3. 接口定义在book域,由user域提供实现(依赖倒置)
type Gate interface {
	Authorize(ctx context.Context, callerID uint, m Mutation) error
}

// ListResult 分页查询结果
type ListResult struct {
	Books       []*Book
	TotalPages  int
	CurrentPage int
}

// Service 图书领域服务接口
// 包含目录读取(分页查询)与受控写入(创建/更新/删除)两类能力。
//
// 写入工作流的前置检查顺序固定,第一个失败的检查短路返回:
//
//	创建: 标题查重 → 角色鉴权 → 字段校验 → 插入
//	更新: 按ID查找 → 角色鉴权 → 补丁校验合并 → 保存
//	删除: 按ID查找 → 角色鉴权 → 删除
//
// 注意:存在性检查先于鉴权,未授权调用方因此能探测到记录是否存在。
// 这是当前对外契约的一部分(删除不存在的ID必须直接返回NotFound,
// 不触发角色检查),如需收紧信息暴露需要同步调整契约。
type Service interface {
	// ListBooks 执行查询计划,返回一页图书及分页信息
	ListBooks(ctx context.Context, q *Query) (*ListResult, error)

	// GetBookByID 根据ID获取图书详情
	GetBookByID(ctx context.Context, id uint) (*Book, error)

	// CreateBook 创建图书,返回含存储分配ID的完整实体
	CreateBook(ctx context.Context, callerID uint, b *Book) (*Book, error)

	// UpdateBook 部分更新,返回合并后的实体
	UpdateBook(ctx context.Context, callerID uint, id uint, patch Patch) (*Book, error)

	// DeleteBook 删除图书
	DeleteBook(ctx context.Context, callerID uint, id uint) error
}

// service 领域服务实现
type service struct {
	repo Repository
	gate Gate
	tx   TxRunner
}

// NewService 创建图书领域服务
func NewService(repo Repository, gate Gate, tx TxRunner) Service {
	return &service{repo: repo, gate: gate, tx: tx}
}

// ListBooks 分页查询
// 数据页与总数是对同一组过滤谓词的两次独立查询,Count不受分页影响。
// totalPages = ceil(total/pageSize),total为0时为0。
// 请求超出末页时返回空列表,CurrentPage保持请求页码,不算错误。
func (s *service) ListBooks(ctx context.Context, q *Query) (*ListResult, error) {
	books, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Count(ctx, q)
	if err != nil {
		return nil, err
	}

	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(q.PageSize) - 1) / int64(q.PageSize))
	}

	return &ListResult{
		Books:       books,
		TotalPages:  totalPages,
		CurrentPage: q.Page,
	}, nil
}

// GetBookByID 根据ID获取图书
func (s *service) GetBookByID(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateBook 创建图书
// 前置检查顺序:标题查重 → 鉴权 → 字段校验 → 插入
func (s *service) CreateBook(ctx context.Context, callerID uint, b *Book) (*Book, error) {
	// 1. 标题查重(大小写敏感精确匹配)
	// 并发创建同名图书时两边都可能通过这里,最终由存储层唯一索引兜底
	existing, err := s.repo.FindByTitle(ctx, b.Title)
	if err != nil && !errors.Is(err, ErrBookNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrTitleDuplicate
	}

	// 2. 角色鉴权
	if err := s.gate.Authorize(ctx, callerID, MutationCreate); err != nil {
		return nil, err
	}

	// 3. 全量字段校验
	if err := b.Validate(); err != nil {
		return nil, err
	}

	// 4. 插入(唯一索引冲突由Repository转为ErrTitleDuplicate)
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// UpdateBook 部分更新
// 在事务内用行锁执行查找-合并-保存,防止两个并发更新互相覆盖。
// 前置检查顺序:按ID查找 → 鉴权 → 补丁校验 → 合并保存。
// 补丁校验失败时事务内未发生任何写入,存储中的记录保持原状。
func (s *service) UpdateBook(ctx context.Context, callerID uint, id uint, patch Patch) (*Book, error) {
	var updated *Book
	err := s.tx.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 行锁查找
		b, err := s.repo.LockByID(txCtx, id)
		if err != nil {
			return err
		}

		// 2. 角色鉴权
		if err := s.gate.Authorize(txCtx, callerID, MutationUpdate); err != nil {
			return err
		}

		// 3. 补丁校验(任一字段非法则整体拒绝,实体不被触碰)
		if patch.IsEmpty() {
			return ErrEmptyPatch
		}
		if err := patch.Validate(); err != nil {
			return err
		}

		// 4. 合并并保存
		b.Apply(patch)
		if err := s.repo.Update(txCtx, b); err != nil {
			return err
		}

		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteBook 删除图书
// 前置检查顺序:按ID查找 → 鉴权 → 删除。
// ID不存在时直接返回ErrBookNotFound,不触发角色检查。
func (s *service) DeleteBook(ctx context.Context, callerID uint, id uint) error {
	// 1. 存在性检查
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	// 2. 角色鉴权
	if err := s.gate.Authorize(ctx, callerID, MutationDelete); err != nil {
		return err
	}

	// 3. 删除
	return s.repo.Delete(ctx, id)
}
