package user

import (
	"context"
	"errors"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// MutationGate 图书写操作授权门(book.Gate的实现)
// 设计说明:
// 1. 角色以数据库中的当前值为准,不信任Token里的role声明
//    (角色被降级后旧Token不应继续拥有admin权限)
// 2. 失败即关闭:callerID缺失或用户查不到时一律按未登录拒绝,
//    存储层故障同理不放行
// 3. 三类写操作(create/update/delete)要求同一权限级别:admin
type MutationGate struct {
	repo Repository
}

// NewMutationGate 创建授权门
func NewMutationGate(repo Repository) *MutationGate {
	return &MutationGate{repo: repo}
}

// Authorize 判定调用方是否可以执行指定写操作
func (g *MutationGate) Authorize(ctx context.Context, callerID uint, m book.Mutation) error {
	if callerID == 0 {
		return apperrors.ErrUnauthorized
	}

	u, err := g.repo.FindByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			// Token指向的用户已不存在,视同身份无法解析
			return apperrors.ErrUnauthorized
		}
		return err
	}

	if !u.Role.IsAdmin() {
		return book.ForbiddenError(m)
	}

	return nil
}
