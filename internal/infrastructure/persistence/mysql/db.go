package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookhub/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明:
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数(MaxOpenConns、MaxIdleConns、ConnMaxLifetime)
// 3. 开发环境开启SQL日志,生产环境关闭
// 4. 自动迁移表结构(AutoMigrate)
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
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

	// 自动迁移表结构(开发环境)
	// 生产环境应使用版本化的迁移脚本,不要依赖AutoMigrate
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
		&UserBookRelationModel{},
	)
}

// UserModel GORM用户模型
// 设计说明:
// 1. infrastructure层的数据模型,包含GORM tag
// 2. domain/user/entity.go是领域实体,不依赖GORM
// 3. Repository负责两者之间的转换
type UserModel struct {
	ID        uint           `gorm:"primaryKey"`
	Email     string         `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password  string         `gorm:"size:255;not null;comment:密码(bcrypt加密)"`
	Nickname  string         `gorm:"size:50;not null;comment:昵称"`
	IsStaff   bool           `gorm:"default:false;comment:管理员标志"`
	CreatedAt time.Time      `gorm:"comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// BookModel GORM图书模型
// 设计说明:
// 1. 价格使用int64存储"分"为单位(避免浮点数精度问题)
// 2. Name和AuthorName加搜索索引,支持子串搜索
// 3. OwnerID可为NULL(匿名导入的图书没有归属者)
type BookModel struct {
	ID         uint           `gorm:"primaryKey"`
	Name       string         `gorm:"index:idx_search;size:200;not null;comment:书名"`
	Price      int64          `gorm:"index;not null;comment:价格(分)"`
	AuthorName string         `gorm:"index:idx_search;size:100;comment:作者名"`
	OwnerID    *uint          `gorm:"index;comment:归属者用户ID,可为空"`
	CreatedAt  time.Time      `gorm:"comment:创建时间"`
	UpdatedAt  time.Time      `gorm:"comment:更新时间"`
	DeletedAt  gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// UserBookRelationModel GORM用户-图书关系模型
// 设计说明:
// 1. (user_id, book_id)联合唯一索引,保证每个组合最多一行
// 2. Rate可为NULL:NULL表示未评分,与"评0分"语义不同
// 3. 关系行惰性创建(FirstOrCreate),不做软删除
type UserBookRelationModel struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"uniqueIndex:idx_user_book;not null;comment:用户ID"`
	BookID      uint      `gorm:"uniqueIndex:idx_user_book;not null;comment:图书ID"`
	Like        bool      `gorm:"column:like;default:false;comment:点赞"`
	InBookmarks bool      `gorm:"default:false;comment:收藏"`
	Rate        *int      `gorm:"type:tinyint;comment:评分1-5,NULL表示未评分"`
	CreatedAt   time.Time `gorm:"comment:创建时间"`
	UpdatedAt   time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (UserBookRelationModel) TableName() string {
	return "user_book_relations"
}
