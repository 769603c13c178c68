package app

import (
	"context"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/bwmarrin/snowflake"
	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/talkincode/sheetshop/config"
	"github.com/talkincode/sheetshop/internal/catalog"
	"github.com/talkincode/sheetshop/internal/feed"
	"github.com/talkincode/sheetshop/internal/session"
	"github.com/talkincode/sheetshop/internal/whatsapp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/gorm"
)

const (
	workerPoolSize = 16
	sessionSweep   = "@every 5m"
)

type Application struct {
	appConfig *config.AppConfig
	gormDB    *gorm.DB
	sched     *cron.Cron
	catalog   *catalog.Catalog
	loader    *feed.Loader
	messenger *whatsapp.Service
	sessions  *session.Manager
	events    *OrderEvents
	orderLog  *OrderLogWriter
	pool      *ants.Pool
	jobs      []job
}

// Ensure Application implements all interfaces
var (
	_ DBProvider        = (*Application)(nil)
	_ ConfigProvider    = (*Application)(nil)
	_ CatalogProvider   = (*Application)(nil)
	_ SessionProvider   = (*Application)(nil)
	_ MessengerProvider = (*Application)(nil)
	_ OrderLogProvider  = (*Application)(nil)
	_ AppContext        = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) DB() *gorm.DB {
	return a.gormDB
}

// OverrideDB replaces the application's database handle (used in tests).
func (a *Application) OverrideDB(db *gorm.DB) {
	a.gormDB = db
}

func (a *Application) Catalog() *catalog.Catalog {
	return a.catalog
}

func (a *Application) Sessions() *session.Manager {
	return a.sessions
}

func (a *Application) Messenger() *whatsapp.Service {
	return a.messenger
}

func (a *Application) OrderLog() *OrderLogWriter {
	return a.orderLog
}

func (a *Application) Events() *OrderEvents {
	return a.events
}

// Scheduler returns the cron scheduler
func (a *Application) Scheduler() *cron.Cron {
	return a.sched
}

// InitLogger builds the global zap logger from cfg.
func InitLogger(cfg *config.AppConfig) {
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller())
	} else {
		var err error
		zapConfig.OutputPaths = []string{"stdout"}
		logger, err = zapConfig.Build(zap.AddCaller())
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)
}

// Init wires every component and performs the first catalog load. The
// first load always installs its result, even an empty catalog.
func (a *Application) Init(ctx context.Context) error {
	cfg := a.appConfig
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	if a.gormDB == nil {
		a.gormDB, err = getDatabase(cfg.Database, cfg.GetDataDir())
		if err != nil {
			return err
		}
		zap.S().Infof("Database connection successful, type: %s", cfg.Database.Type)
	}
	if err := a.MigrateDB(); err != nil {
		return err
	}

	a.pool, err = ants.NewPool(workerPoolSize, ants.WithPanicHandler(func(p interface{}) {
		zap.S().Errorf("worker panic: %v", p)
	}))
	if err != nil {
		return errors.Wrap(err, "create worker pool")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return errors.Wrap(err, "create id node")
	}
	a.orderLog = NewOrderLogWriter(a.gormDB, node)
	a.events = NewOrderEvents(a.pool)
	if err := a.events.Subscribe("order_log", a.orderLog.Write); err != nil {
		return err
	}
	if mailer := NewMailer(cfg.Smtp, cfg.Shop.Currency); mailer != nil {
		if err := a.events.Subscribe("mail_notify", mailer.SendOrder); err != nil {
			return err
		}
	}

	a.messenger = whatsapp.New(
		whatsapp.NewLinkBuilder(cfg.Shop.MessagingBase, cfg.Shop.WhatsAppNumber),
		whatsapp.QuickLink{Name: "question", Text: cfg.Shop.QuestionText},
		whatsapp.QuickLink{Name: "order", Text: cfg.Shop.OrderText},
	)
	if cfg.Shop.WhatsAppNumber == "" {
		zap.L().Warn("shop.whatsapp_number is not configured, orders cannot be sent")
	}

	a.loader = feed.NewLoader(FeedURL(cfg.Feed), cfg.Feed.Timeout)
	a.catalog = catalog.New(a.loader.Load(ctx))

	a.sessions, err = session.NewManager(session.Options{
		Catalog: a.catalog,
		Renderer: catalog.Renderer{
			Currency:         cfg.Shop.Currency,
			PlaceholderImage: cfg.Shop.PlaceholderImage,
		},
		Dispatcher:     a.messenger,
		Currency:       cfg.Shop.Currency,
		SearchThrottle: cfg.Shop.SearchThrottle,
		Publisher:      a.events,
		NodeID:         2,
	})
	if err != nil {
		return err
	}

	return a.initJob()
}

// FeedURL prefers an explicit url over a sheet id.
func FeedURL(cfg config.FeedConfig) string {
	if cfg.URL != "" {
		return cfg.URL
	}
	if cfg.SheetID != "" {
		return feed.URL(cfg.SheetID, cfg.SheetName)
	}
	return ""
}

// ReloadCatalog fetches the sheet again and swaps the catalog. On failure
// the current catalog is kept and the error returned.
func (a *Application) ReloadCatalog(ctx context.Context) (int, error) {
	products, err := a.loader.Fetch(ctx)
	if err != nil {
		zap.L().Error("catalog reload failed, keeping current catalog",
			zap.String("namespace", "feed"),
			zap.Int("current", a.catalog.Len()),
			zap.Error(err),
		)
		return a.catalog.Len(), err
	}
	a.catalog.Replace(products)
	zap.L().Info("catalog reloaded",
		zap.String("namespace", "feed"),
		zap.Int("count", len(products)),
	)
	return len(products), nil
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		<-a.sched.Stop().Done()
	}
	if a.events != nil {
		a.events.Wait()
	}
	if a.pool != nil {
		a.pool.Release()
	}
	if a.gormDB != nil {
		if sqlDB, err := a.gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = zap.L().Sync()
}
