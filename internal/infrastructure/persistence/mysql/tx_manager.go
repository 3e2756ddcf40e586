package mysql

import (
	"context"

	"gorm.io/gorm"
)

// txKey 事务在context中的键(非导出类型,避免与其他包的key冲突)
type txKey struct{}

// txFromContext 从context提取事务DB,没有则返回nil
func txFromContext(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return nil
}

// TxManager 事务管理器(实现book.TxRunner)
// 设计说明:
// 1. 封装GORM的Transaction方法
// 2. 通过context传递事务DB(避免全局变量)
// 3. 更新工作流用它把"行锁查找→合并→保存"放进同一事务
//
// 使用示例:
//
//	err := txManager.Transaction(ctx, func(ctx context.Context) error {
//	    b, err := bookRepo.LockByID(ctx, id) // 行锁
//	    if err != nil {
//	        return err
//	    }
//	    b.Apply(patch)
//	    return bookRepo.Update(ctx, b) // nil提交,非nil回滚
//	})
type TxManager struct {
	db *gorm.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction 执行事务
// fn返回error时自动ROLLBACK,返回nil时自动COMMIT
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}
