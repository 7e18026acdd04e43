package user

import (
	"time"
)

// User 用户实体(聚合根)
// 设计说明:
// 1. 密码已加密存储(bcrypt),不暴露明文
// 2. IsStaff为管理员标志:管理员可以修改/删除任何图书
// 3. 领域实体不依赖GORM tag,持久化映射由infrastructure层处理
type User struct {
	ID        uint
	Email     string
	Password  string // bcrypt哈希值
	Nickname  string
	IsStaff   bool // 管理员标志
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser 创建新用户(工厂方法)
// hashedPassword必须是bcrypt加密后的密码
func NewUser(email, hashedPassword, nickname string) *User {
	now := time.Now()
	return &User{
		Email:     email,
		Password:  hashedPassword,
		Nickname:  nickname,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UpdateNickname 更新昵称(领域行为)
func (u *User) UpdateNickname(nickname string) {
	u.Nickname = nickname
	u.UpdatedAt = time.Now()
}
