package db

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/oggyb/movie-social/internal/config"
)

// NewDB initializes the database connection using DSN from config.
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DB.Driver {
	case "sqlite":
		dialector = sqlite.Open(SQLiteDSN(cfg.DB.DSN))
	default:
		dialector = mysql.Open(cfg.DB.DSN)
	}

	level := logger.Warn
	if cfg.App.ENV == "development" {
		level = logger.Info // log SQL queries
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:  logger.Default.LogMode(level),
		NowFunc: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		// surface unique-index races as gorm.ErrDuplicatedKey
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// SQLite connection options. Writers take the write lock at BEGIN and wait
// up to the busy timeout for it, so concurrent read-check-write transactions
// queue instead of failing with "database is locked".
var sqliteParams = []string{
	"_busy_timeout=5000",
	"_txlock=immediate",
}

// SQLiteDSN adds the busy timeout and immediate transaction locking to dsn.
// Options already present in dsn are kept.
func SQLiteDSN(dsn string) string {
	for _, p := range sqliteParams {
		key := p[:strings.IndexByte(p, '=')+1]
		if strings.Contains(dsn, key) {
			continue
		}
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + p
	}
	return dsn
}

// Migrate ensures schema is in sync with models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
