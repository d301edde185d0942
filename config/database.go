package config

import (
	"TodoGo/models"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrDatabaseClosed = errors.New("database closed before first use")

// Database 持有进程内唯一的连接池, 第一次使用时才建立连接
type Database struct {
	conf Config

	once sync.Once
	db   *gorm.DB
	err  error
}

func NewDatabase(conf Config) *Database {
	return &Database{conf: conf}
}

// Conn 返回连接池, 多次调用得到同一个句柄
func (d *Database) Conn() (*gorm.DB, error) {
	d.once.Do(func() {
		d.db, d.err = open(d.conf)
	})
	return d.db, d.err
}

// Migrate 进行数据库表结构迁移
func (d *Database) Migrate() error {
	db, err := d.Conn()
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(&models.Task{}, &models.Substep{}); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}
	return nil
}

// Close 关闭连接池. 在 Conn 之前调用时, 之后的 Conn 返回 ErrDatabaseClosed
func (d *Database) Close() error {
	d.once.Do(func() {
		d.err = ErrDatabaseClosed
	})
	if d.db == nil {
		return nil
	}
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func open(config Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch config.DBDriver {
	case "mysql":
		dialector = mysql.Open(config.GetDBConnString())
	case "sqlite":
		dialector = sqlite.Open(config.GetDBConnString())
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", config.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel(config)),
	})
	if err != nil {
		return nil, err
	}

	// 设置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if config.DBDriver == "sqlite" {
		// 单文件数据库只允许一个写连接
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

func gormLogLevel(config Config) logger.LogLevel {
	switch config.Environment {
	case "test":
		return logger.Silent
	case "production":
		return logger.Warn
	default:
		return logger.Info
	}
}
