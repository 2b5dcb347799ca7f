package database

import (
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/d60-Lab/instalite/config"
	"github.com/d60-Lab/instalite/internal/model"
)

// InitDB 根据 DSN 打开数据库并迁移表结构。
// postgres:// 或 host= 前缀走 postgres，其余按 sqlite 文件处理。
func InitDB(cfg config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	dsn := cfg.DatabaseURL
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "host=") {
		dialector = postgres.Open(dsn)
	} else {
		// sqlite 需要显式开启外键
		if !strings.Contains(dsn, "_fk=") && !strings.Contains(dsn, "foreign_keys") {
			if strings.Contains(dsn, "?") {
				dsn += "&_fk=1"
			} else {
				dsn += "?_fk=1"
			}
		}
		dialector = sqlite.Open(dsn)
	}

	gormCfg := &gorm.Config{}
	if cfg.Env == "release" {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Warn)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate 建表；join 表上的复合唯一键由模型 tag 声明
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.Comment{},
		&model.Like{},
		&model.Follow{},
	)
}
