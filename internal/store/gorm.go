package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// KVRecord 落库的键值行
type KVRecord struct {
	Key       string `gorm:"primaryKey;size:191"`
	Value     []byte `gorm:"type:blob"`
	ExpiresAt *time.Time
	UpdatedAt time.Time
}

func (KVRecord) TableName() string { return "kv_records" }

// Gorm mysql/sqlite 实现
type Gorm struct {
	db *gorm.DB
}

func OpenGorm(driver, dsn string, logMode bool) (*Gorm, error) {
	gormLogger := logger.Default
	if !logMode {
		gormLogger = gormLogger.LogMode(logger.Silent)
	}

	var dialector gorm.Dialector
	switch driver {
	case "mysql":
		dialector = mysql.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if driver == "sqlite" {
		_, _ = sqlDB.Exec("PRAGMA journal_mode = WAL;")
		_, _ = sqlDB.Exec("PRAGMA synchronous = NORMAL;")
	}

	return &Gorm{db: db}, nil
}

// AutoMigrate 自动建表（开发阶段 OK）
func (g *Gorm) AutoMigrate() error {
	return g.db.AutoMigrate(&KVRecord{})
}

func (g *Gorm) Get(ctx context.Context, key string) ([]byte, error) {
	var rec KVRecord
	err := g.db.WithContext(ctx).First(&rec, "`key` = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if rec.ExpiresAt != nil && time.Now().After(*rec.ExpiresAt) {
		_ = g.db.WithContext(ctx).Delete(&KVRecord{}, "`key` = ?", key).Error
		return nil, ErrNotFound
	}
	return rec.Value, nil
}

func (g *Gorm) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	rec := KVRecord{Key: key, Value: value}
	if ttl > 0 {
		t := time.Now().Add(ttl)
		rec.ExpiresAt = &t
	}
	// 幂等写入：同 key 覆盖
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		UpdateAll: true,
	}).Create(&rec).Error
}

func (g *Gorm) Delete(ctx context.Context, key string) error {
	return g.db.WithContext(ctx).Delete(&KVRecord{}, "`key` = ?", key).Error
}

func (g *Gorm) Expire(ctx context.Context, key string, ttl time.Duration) error {
	var expiresAt *time.Time
	if ttl > 0 {
		t := time.Now().Add(ttl)
		expiresAt = &t
	}
	return g.db.WithContext(ctx).Model(&KVRecord{}).
		Where("`key` = ?", key).
		Update("expires_at", expiresAt).Error
}
