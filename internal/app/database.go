package app

import (
	"os"
	"path"
	"runtime/debug"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/talkincode/sheetshop/config"
	"github.com/talkincode/sheetshop/internal/domain"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func getDatabase(cfg config.DBConfig, dataDir string) (*gorm.DB, error) {
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	if cfg.Debug {
		gcfg.Logger = logger.Default.LogMode(logger.Info)
	}

	var dialector gorm.Dialector
	switch strings.ToLower(strings.TrimSpace(cfg.Type)) {
	case "postgres", "postgresql":
		if cfg.Dsn == "" {
			return nil, errors.New("database: postgres requires a dsn")
		}
		dialector = postgres.Open(cfg.Dsn)
	case "", "sqlite", "sqlite3":
		dsn := cfg.Dsn
		if dsn == "" {
			dsn = path.Join(dataDir, "sheetshop.db")
		}
		dialector = sqlite.Open(dsn)
	default:
		return nil, errors.Errorf("database: unsupported type %q", cfg.Type)
	}

	db, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return nil, errors.Wrap(err, "database: open")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "database: handle")
	}
	sqlDB.SetMaxOpenConns(8)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(time.Hour)
	return db, nil
}

func (a *Application) MigrateDB() (err error) {
	defer func() {
		if err1 := recover(); err1 != nil {
			if os.Getenv("GO_DEGUB_TRACE") != "" {
				debug.PrintStack()
			}
			zap.S().Error(err1)
			err = errors.Errorf("database migration panic: %v", err1)
		}
	}()
	if err := a.gormDB.Migrator().AutoMigrate(domain.Tables...); err != nil {
		return errors.Wrap(err, "database migration failed")
	}
	return nil
}
