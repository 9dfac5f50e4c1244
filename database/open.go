package database

import (
	"context"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rpupo63/portfolio-cms-backend/config"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

// Open connects to the database selected by cfg.Database.Type and verifies the connection.
func Open(ctx context.Context, cfg config.AppConfig, zl zerolog.Logger) (*gorm.DB, error) {
	gormLogger := logger.New(
		&zl,
		logger.Config{
			SlowThreshold:             cfg.Database.SlowThreshold,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  !cfg.IsProduction(),
		},
	)
	gormConfig := &gorm.Config{
		PrepareStmt: false,
		Logger:      gormLogger,
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Database.Type {
	case "supa":
		zl.Info().Msg("Connecting to Supabase database...")
		db, err = openPostgres(supabaseDSN(cfg.Supabase), gormConfig)
	case "postgres":
		zl.Info().Msg("Connecting to Postgres database...")
		db, err = openPostgres(cfg.Database.DSN, gormConfig)
	case "sqlite":
		zl.Info().Str("dsn", cfg.Database.DSN).Msg("Opening SQLite database...")
		db, err = gorm.Open(sqlite.Open(cfg.Database.DSN), gormConfig)
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.Database.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if len(cfg.Database.ReplicaDSNs) > 0 && cfg.Database.Type != "sqlite" {
		replicas := make([]gorm.Dialector, 0, len(cfg.Database.ReplicaDSNs))
		for _, dsn := range cfg.Database.ReplicaDSNs {
			replicas = append(replicas, postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true}))
		}
		resolver := dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		}).
			SetMaxOpenConns(cfg.Database.MaxOpen).
			SetMaxIdleConns(cfg.Database.MaxIdle).
			SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
		if err := db.Use(resolver); err != nil {
			return nil, fmt.Errorf("register read replicas: %w", err)
		}
		zl.Info().Int("replicas", len(replicas)).Msg("Read replicas registered")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	if cfg.Database.Type == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpen)
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdle)
		sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	var result int
	if err := db.WithContext(pingCtx).Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("test database connection: %w", err)
	}
	return db, nil
}

func openPostgres(dsn string, gormConfig *gorm.Config) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), gormConfig)
}

func supabaseDSN(c config.SupabaseConfig) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

// IsPostgres reports whether db talks to Postgres rather than SQLite.
func IsPostgres(db *gorm.DB) bool {
	return db.Dialector.Name() == "postgres"
}
