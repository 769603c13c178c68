package config

import (
	"os"
	"path"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// SysConfig system config
type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
}

// WebConfig web config
type WebConfig struct {
	Host       string  `yaml:"host"`
	Port       int     `yaml:"port"`
	Secret     string  `yaml:"secret"`      // cookie signing key
	AdminToken string  `yaml:"admin_token"` // X-Admin-Token for /api/admin, empty disables admin routes
	RateLimit  float64 `yaml:"rate_limit"`  // requests per second per client, 0 disables
}

// DBConfig database config, only the order log lives here
type DBConfig struct {
	Type  string `yaml:"type"` // sqlite or postgres
	Dsn   string `yaml:"dsn"`
	Debug bool   `yaml:"debug"`
}

// LogConfig logger config
type LogConfig struct {
	Mode       string `yaml:"mode"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

// FeedConfig describes where the product sheet lives
type FeedConfig struct {
	URL         string        `yaml:"url"`
	SheetID     string        `yaml:"sheet_id"`
	SheetName   string        `yaml:"sheet_name"`
	Timeout     time.Duration `yaml:"timeout"`
	RefreshCron string        `yaml:"refresh_cron"` // empty disables periodic reload
}

// ShopConfig deployment-specific shop values
type ShopConfig struct {
	Currency         string        `yaml:"currency"`
	WhatsAppNumber   string        `yaml:"whatsapp_number"`
	MessagingBase    string        `yaml:"messaging_base"`
	PlaceholderImage string        `yaml:"placeholder_image"`
	SearchThrottle   time.Duration `yaml:"search_throttle"`
	SessionIdle      time.Duration `yaml:"session_idle"`
	QuestionText     string        `yaml:"question_text"`
	OrderText        string        `yaml:"order_text"`
}

// SmtpConfig owner notification mail, disabled when Host is empty
type SmtpConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	NotifyTo string `yaml:"notify_to"`
}

type AppConfig struct {
	System   SysConfig  `yaml:"system"`
	Web      WebConfig  `yaml:"web"`
	Database DBConfig   `yaml:"database"`
	Logger   LogConfig  `yaml:"logger"`
	Feed     FeedConfig `yaml:"feed"`
	Shop     ShopConfig `yaml:"shop"`
	Smtp     SmtpConfig `yaml:"smtp"`
}

func (c *AppConfig) GetLogDir() string {
	return path.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return path.Join(c.System.Workdir, "data")
}

func (c *AppConfig) initDirs() error {
	for _, dir := range []string{c.GetLogDir(), c.GetDataDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create dir %s", dir)
		}
	}
	return nil
}

// DefaultAppConfig returns a fresh copy of the built-in defaults.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		System: SysConfig{
			Appid:    "SheetShop",
			Location: "Asia/Kolkata",
			Workdir:  "/var/sheetshop",
			Debug:    true,
		},
		Web: WebConfig{
			Host:      "0.0.0.0",
			Port:      8080,
			Secret:    "9b6de5cc-0731-4fa5-8a3c-31fbb2ba3e6c",
			RateLimit: 20,
		},
		Database: DBConfig{
			Type: "sqlite",
			Dsn:  "",
		},
		Logger: LogConfig{
			Mode:       "development",
			FileEnable: true,
			Filename:   "/var/sheetshop/logs/sheetshop.log",
		},
		Feed: FeedConfig{
			SheetName:   "Sheet2",
			Timeout:     15 * time.Second,
			RefreshCron: "@every 10m",
		},
		Shop: ShopConfig{
			Currency:         "₹",
			MessagingBase:    "https://wa.me",
			PlaceholderImage: "https://images.unsplash.com/photo-1503602642458-232111445657?auto=format&fit=crop&w=1200&q=80",
			SearchThrottle:   150 * time.Millisecond,
			SessionIdle:      2 * time.Hour,
			QuestionText:     "Hi! I have a question about gifts",
			OrderText:        "Hi! I want to place an order",
		},
		Smtp: SmtpConfig{
			Port: 587,
		},
	}
}

func setEnvValue(name string, val *string) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		*val = evalue
	}
}

func setEnvBoolValue(name string, val *bool) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		*val = cast.ToBool(evalue)
	}
}

func setEnvIntValue(name string, val *int) {
	var evalue = os.Getenv(name)
	if evalue == "" {
		return
	}
	if v, err := cast.ToIntE(evalue); err == nil {
		*val = v
	}
}

func setEnvFloatValue(name string, val *float64) {
	var evalue = os.Getenv(name)
	if evalue == "" {
		return
	}
	if v, err := cast.ToFloat64E(evalue); err == nil {
		*val = v
	}
}

func setEnvDurationValue(name string, val *time.Duration) {
	var evalue = os.Getenv(name)
	if evalue == "" {
		return
	}
	if v, err := cast.ToDurationE(evalue); err == nil {
		*val = v
	}
}

// LoadConfig reads cfile (falling back to ./sheetshop.yml and /etc/sheetshop.yml),
// then applies SHEETSHOP_* environment overrides. A missing file is not an
// error; the defaults are used instead.
func LoadConfig(cfile string) (*AppConfig, error) {
	if cfile == "" {
		cfile = "sheetshop.yml"
	}
	if !fileExists(cfile) {
		cfile = "/etc/sheetshop.yml"
	}
	cfg := DefaultAppConfig()
	if fileExists(cfile) {
		data, err := os.ReadFile(cfile)
		if err != nil {
			return nil, errors.Wrap(err, "read config")
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", cfile)
		}
	}

	applyEnv(cfg)
	cfg.Shop.WhatsAppNumber = strings.TrimPrefix(strings.TrimSpace(cfg.Shop.WhatsAppNumber), "+")

	if err := cfg.initDirs(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *AppConfig) {
	setEnvValue("SHEETSHOP_SYSTEM_WORKER_DIR", &cfg.System.Workdir)
	setEnvValue("SHEETSHOP_SYSTEM_LOCATION", &cfg.System.Location)
	setEnvBoolValue("SHEETSHOP_SYSTEM_DEBUG", &cfg.System.Debug)

	setEnvValue("SHEETSHOP_WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("SHEETSHOP_WEB_PORT", &cfg.Web.Port)
	setEnvValue("SHEETSHOP_WEB_SECRET", &cfg.Web.Secret)
	setEnvValue("SHEETSHOP_WEB_ADMIN_TOKEN", &cfg.Web.AdminToken)
	setEnvFloatValue("SHEETSHOP_WEB_RATE_LIMIT", &cfg.Web.RateLimit)

	setEnvValue("SHEETSHOP_DB_TYPE", &cfg.Database.Type)
	setEnvValue("SHEETSHOP_DB_DSN", &cfg.Database.Dsn)
	setEnvBoolValue("SHEETSHOP_DB_DEBUG", &cfg.Database.Debug)

	setEnvValue("SHEETSHOP_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvBoolValue("SHEETSHOP_LOGGER_FILE_ENABLE", &cfg.Logger.FileEnable)
	setEnvValue("SHEETSHOP_LOGGER_FILENAME", &cfg.Logger.Filename)

	setEnvValue("SHEETSHOP_FEED_URL", &cfg.Feed.URL)
	setEnvValue("SHEETSHOP_FEED_SHEET_ID", &cfg.Feed.SheetID)
	setEnvValue("SHEETSHOP_FEED_SHEET_NAME", &cfg.Feed.SheetName)
	setEnvDurationValue("SHEETSHOP_FEED_TIMEOUT", &cfg.Feed.Timeout)
	setEnvValue("SHEETSHOP_FEED_REFRESH_CRON", &cfg.Feed.RefreshCron)

	setEnvValue("SHEETSHOP_SHOP_CURRENCY", &cfg.Shop.Currency)
	setEnvValue("SHEETSHOP_SHOP_WHATSAPP_NUMBER", &cfg.Shop.WhatsAppNumber)
	setEnvValue("SHEETSHOP_SHOP_MESSAGING_BASE", &cfg.Shop.MessagingBase)
	setEnvValue("SHEETSHOP_SHOP_PLACEHOLDER_IMAGE", &cfg.Shop.PlaceholderImage)
	setEnvDurationValue("SHEETSHOP_SHOP_SEARCH_THROTTLE", &cfg.Shop.SearchThrottle)
	setEnvDurationValue("SHEETSHOP_SHOP_SESSION_IDLE", &cfg.Shop.SessionIdle)
	setEnvValue("SHEETSHOP_SHOP_QUESTION_TEXT", &cfg.Shop.QuestionText)
	setEnvValue("SHEETSHOP_SHOP_ORDER_TEXT", &cfg.Shop.OrderText)

	setEnvValue("SHEETSHOP_SMTP_HOST", &cfg.Smtp.Host)
	setEnvIntValue("SHEETSHOP_SMTP_PORT", &cfg.Smtp.Port)
	setEnvValue("SHEETSHOP_SMTP_USER", &cfg.Smtp.User)
	setEnvValue("SHEETSHOP_SMTP_PASSWORD", &cfg.Smtp.Password)
	setEnvValue("SHEETSHOP_SMTP_FROM", &cfg.Smtp.From)
	setEnvValue("SHEETSHOP_SMTP_NOTIFY_TO", &cfg.Smtp.NotifyTo)
}

func fileExists(file string) bool {
	info, err := os.Stat(file)
	return err == nil && !info.IsDir()
}
