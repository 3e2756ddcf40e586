package user

import (
	"time"
)

// Role 用户角色(封闭枚举)
// 设计说明:
// 角色用枚举而不是数字标志位表达,避免"非0即admin"这类判断散落各处。
// 历史上角色曾是数字标志(0=普通用户,非0=管理员),数字表示现在只存在于
// 持久化模型中,领域层一律使用Role。
type Role string

const (
	// RoleStandard 普通用户(只读)
	RoleStandard Role = "standard"
	// RoleAdmin 管理员(可执行目录写操作)
	RoleAdmin Role = "admin"
)

// Valid 是否为已知角色
func (r Role) Valid() bool {
	return r == RoleStandard || r == RoleAdmin
}

// IsAdmin 是否为管理员
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// ParseRole 解析角色字符串,未知值一律按普通用户处理(最小权限)
func ParseRole(s string) Role {
	if Role(s) == RoleAdmin {
		return RoleAdmin
	}
	return RoleStandard
}

// User 用户实体（聚合根）
// DDD设计说明：
// 1. 密码已加密存储（bcrypt），不提供暴露明文的方法
// 2. 领域实体不依赖GORM tag（infrastructure层的Repository实现处理映射）
type User struct {
	ID        uint
	Email     string
	Password  string // bcrypt哈希值
	Nickname  string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser 创建新用户（工厂方法）
// hashedPassword必须是bcrypt加密后的密码;注册入口只创建普通用户,
// 管理员角色由运维直接在存储层授予
func NewUser(email, hashedPassword, nickname string) *User {
	now := time.Now()
	return &User{
		Email:     email,
		Password:  hashedPassword,
		Nickname:  nickname,
		Role:      RoleStandard,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UpdateNickname 更新昵称（领域行为）
func (u *User) UpdateNickname(nickname string) {
	u.Nickname = nickname
	u.UpdatedAt = time.Now()
}
