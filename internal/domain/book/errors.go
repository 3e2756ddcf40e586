package book

import (
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "找不到该ID对应的图书")

	// ErrTitleDuplicate 标题已存在(创建或改名时与现有图书冲突)
	ErrTitleDuplicate = apperrors.New(apperrors.ErrCodeConflict, "图书已存在")

	// ErrInvalidTitle 标题长度非法
	ErrInvalidTitle = apperrors.New(apperrors.ErrCodeInvalidInput, "标题长度应为2-100个字符")

	// ErrInvalidDescription 描述过长
	ErrInvalidDescription = apperrors.New(apperrors.ErrCodeInvalidInput, "描述最长500个字符")

	// ErrInvalidPrice 无效的价格
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidInput, "价格不能为负数")

	// ErrInvalidStock 无效的库存
	ErrInvalidStock = apperrors.New(apperrors.ErrCodeInvalidInput, "库存不能为负数")

	// ErrInvalidCategory 分类为空
	ErrInvalidCategory = apperrors.New(apperrors.ErrCodeInvalidInput, "分类不能为空")

	// ErrInvalidAuthor 作者为空
	ErrInvalidAuthor = apperrors.New(apperrors.ErrCodeInvalidInput, "作者不能为空")

	// ErrInvalidRating 评分越界
	ErrInvalidRating = apperrors.New(apperrors.ErrCodeInvalidInput, "评分必须在0-5之间")

	// ErrEmptyPatch 更新请求不包含任何字段
	ErrEmptyPatch = apperrors.New(apperrors.ErrCodeInvalidInput, "更新内容不能为空")

	// 写操作权限错误(按操作类型区分提示文案)
	ErrOnlyAdminCreate = apperrors.New(apperrors.ErrCodeForbidden, "只有管理员可以添加图书")
	ErrOnlyAdminUpdate = apperrors.New(apperrors.ErrCodeForbidden, "只有管理员可以修改图书")
	ErrOnlyAdminDelete = apperrors.New(apperrors.ErrCodeForbidden, "只有管理员可以删除图书")
)

// ForbiddenError 返回指定操作类型对应的权限错误
func ForbiddenError(m Mutation) *apperrors.AppError {
	switch m {
	case MutationUpdate:
		return ErrOnlyAdminUpdate
	case MutationDelete:
		return ErrOnlyAdminDelete
	default:
		return ErrOnlyAdminCreate
	}
}
