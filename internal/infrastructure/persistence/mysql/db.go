package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate，生产环境应换成版本化迁移脚本）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true, // 把驱动错误翻译为gorm.ErrDuplicatedKey等
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&BookModel{},
	)
}

// UserModel GORM用户模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/user/entity.go是领域实体，不依赖GORM
// 3. Role在库里存tinyint(0=普通用户,1=管理员),数字表示只存在于这一层,
//    Repository负责与领域层的Role枚举互转
type UserModel struct {
	ID        uint           `gorm:"primaryKey"`
	Email     string         `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password  string         `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	Nickname  string         `gorm:"size:50;not null;comment:昵称"`
	Role      int8           `gorm:"type:tinyint;default:0;comment:角色(0普通用户1管理员)"`
	CreatedAt time.Time      `gorm:"comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间（软删除）"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// BookModel GORM图书模型
// 设计说明:
// 1. Title有唯一索引:创建工作流"先查重再插入"存在并发竞态,
//    唯一索引是最终兜底,冲突由repository转换为业务Conflict错误
// 2. Title列用utf8mb4_bin排序规则:标题查重是字节级精确匹配,
//    索引的唯一性语义必须与之一致(默认ci排序规则会把大小写不同的
//    标题也判为冲突)
// 3. 图书删除是物理删除(没有DeletedAt):删除后标题立即可复用,
//    软删除残留在唯一索引里会让已删除的标题永远占坑
// 4. 价格用int64存"分",避免浮点数精度问题
// 5. 可排序列(title/price/rating/stock)均可被列表查询的ORDER BY命中
type BookModel struct {
	ID          uint      `gorm:"primaryKey"`
	Title       string    `gorm:"type:varchar(100) COLLATE utf8mb4_bin;uniqueIndex;not null;comment:书名(全局唯一)"`
	Description string    `gorm:"size:500;comment:图书描述"`
	Price       int64     `gorm:"index;not null;comment:价格(分)"`
	Stock       int       `gorm:"index;default:0;comment:库存数量"`
	Category    string    `gorm:"index;size:100;not null;comment:分类"`
	Author      string    `gorm:"index;size:100;not null;comment:作者"`
	Rating      float64   `gorm:"index;default:0;comment:评分(0-5)"`
	CreatedAt   time.Time `gorm:"comment:创建时间"`
	UpdatedAt   time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}
