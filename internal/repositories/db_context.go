package repositories

import (
	"context"
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/jobsift/jobsift/internal/entities"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DbContext struct {
	DB *gorm.DB
}

func NewDbContext(connectionString string) (*DbContext, error) {
	db, err := gorm.Open(sqlite.Open(connectionString), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}

	return &DbContext{DB: db}, nil
}

func (c *DbContext) Migrate() error {

	for _, model := range []any{
		entities.Company{},
		entities.Job{},
		entities.User{},
		entities.SavedJob{},
		entities.BlockedCompany{},
		entities.SeenJob{},
		entities.TailoredResume{},
	} {
		if err := c.DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// RunStage wraps one logical ingest stage in a transaction. Entity inserts
// inside a stage open their own savepoints, so a bad row rolls back alone
// while the stage commit covers everything that succeeded.
func (c *DbContext) RunStage(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return c.DB.WithContext(ctx).Transaction(fn)
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
