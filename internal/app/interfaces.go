package app

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/talkincode/sheetshop/config"
	"github.com/talkincode/sheetshop/internal/catalog"
	"github.com/talkincode/sheetshop/internal/session"
	"github.com/talkincode/sheetshop/internal/whatsapp"
	"gorm.io/gorm"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// CatalogProvider provides the current product catalog
type CatalogProvider interface {
	Catalog() *catalog.Catalog
}

// SessionProvider provides visitor sessions
type SessionProvider interface {
	Sessions() *session.Manager
}

// MessengerProvider provides the WhatsApp link service
type MessengerProvider interface {
	Messenger() *whatsapp.Service
}

// OrderLogProvider provides the submitted order log
type OrderLogProvider interface {
	OrderLog() *OrderLogWriter
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// AppContext combines all provider interfaces for full application context
// Handlers should depend on specific providers or this combined interface
type AppContext interface {
	DBProvider
	ConfigProvider
	CatalogProvider
	SessionProvider
	MessengerProvider
	OrderLogProvider
	SchedulerProvider

	// ReloadCatalog fetches the product sheet again and replaces the catalog
	ReloadCatalog(ctx context.Context) (int, error)

	// Jobs lists the scheduled background jobs
	Jobs() []JobInfo

	// RunJob runs a scheduled job immediately
	RunJob(name string) error
}
