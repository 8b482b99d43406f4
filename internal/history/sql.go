package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/BerylCAtieno/landing-assistant-agent/internal/page"
)

type designRow struct {
	ID        string         `gorm:"primaryKey;size:64"`
	Name      string         `gorm:"size:255;not null"`
	Blocks    datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time `gorm:"index"`
}

func (designRow) TableName() string { return "designs" }

// OpenDB opens a gorm connection for driver "sqlite" or "postgres".
func OpenDB(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}
	return db, nil
}

type SQLStore struct {
	db *gorm.DB
	stamp
}

func NewSQLStore(db *gorm.DB) (*SQLStore, error) {
	if err := db.AutoMigrate(&designRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate designs table: %w", err)
	}
	return &SQLStore{db: db, stamp: defaultStamp()}, nil
}

func (s *SQLStore) Save(ctx context.Context, name string, blocks []page.Block) (string, error) {
	d, err := s.design(name, blocks)
	if err != nil {
		return "", err
	}
	raw, err := json.Marshal(d.Blocks)
	if err != nil {
		return "", fmt.Errorf("failed to encode blocks: %w", err)
	}
	row := designRow{ID: d.ID, Name: d.Name, Blocks: datatypes.JSON(raw), CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", fmt.Errorf("failed to save design: %w", err)
	}
	return d.ID, nil
}

func (s *SQLStore) Load(ctx context.Context, id string) (*Design, error) {
	var row designRow
	err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load design %s: %w", id, err)
	}
	var blocks []page.Block
	if err := json.Unmarshal(row.Blocks, &blocks); err != nil {
		return nil, fmt.Errorf("failed to decode design %s: %w", id, err)
	}
	return &Design{ID: row.ID, Name: row.Name, Blocks: blocks, CreatedAt: row.CreatedAt, UpdatedAt: row.UpdatedAt}, nil
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&designRow{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete design %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) Duplicate(ctx context.Context, id string) (string, error) {
	d, err := s.Load(ctx, id)
	if err != nil {
		return "", err
	}
	return s.Save(ctx, d.Name+copySuffix, d.Blocks)
}

func (s *SQLStore) List(ctx context.Context) ([]Summary, error) {
	var rows []designRow
	if err := s.db.WithContext(ctx).Order("updated_at desc").Order("id desc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list designs: %w", err)
	}
	out := make([]Summary, 0, len(rows))
	for _, r := range rows {
		var blocks []json.RawMessage
		_ = json.Unmarshal(r.Blocks, &blocks)
		out = append(out, Summary{ID: r.ID, Name: r.Name, Blocks: len(blocks), UpdatedAt: r.UpdatedAt})
	}
	return out, nil
}
