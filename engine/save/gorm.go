package save

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// saveRow is one named record in the realm_saves table.
type saveRow struct {
	Name      string `gorm:"primaryKey;size:64"`
	Data      []byte
	UpdatedAt time.Time
}

func (saveRow) TableName() string { return "realm_saves" }

// GormStore keeps records in a SQL table through gorm.
type GormStore struct {
	db *gorm.DB
}

// OpenPostgres connects to postgres and migrates the saves table.
func OpenPostgres(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return NewGormStore(db)
}

// NewGormStore wraps an open gorm handle and migrates the saves table.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&saveRow{}); err != nil {
		return nil, fmt.Errorf("migrating saves table: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Put(ctx context.Context, name string, data []byte) error {
	if err := CheckName(name); err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Where(&saveRow{Name: name}).
		Assign(saveRow{Data: data, UpdatedAt: time.Now()}).
		FirstOrCreate(&saveRow{}).Error
}

func (s *GormStore) Get(ctx context.Context, name string) ([]byte, error) {
	if err := CheckName(name); err != nil {
		return nil, err
	}
	var row saveRow
	err := s.db.WithContext(ctx).
		Where(&saveRow{Name: name}).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return row.Data, nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
