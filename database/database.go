package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"

	"github.com/gbur-rwanda/gbur-backend/config"
)

type Database struct {
	db                *gorm.DB
	blogPostRepo      *BlogPostRepo
	blogCategoryRepo  *BlogCategoryRepo
	regionRepo        *RegionRepo
	universityRepo    *UniversityRepo
	regionalStaffRepo *RegionalStaffRepo
	smallGroupRepo    *SmallGroupRepo
	contactRepo       *ContactMessageRepo
	subscriptionRepo  *SubscriptionRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:                db,
		blogPostRepo:      NewBlogPostRepo(db),
		blogCategoryRepo:  NewBlogCategoryRepo(db),
		regionRepo:        NewRegionRepo(db),
		universityRepo:    NewUniversityRepo(db),
		regionalStaffRepo: NewRegionalStaffRepo(db),
		smallGroupRepo:    NewSmallGroupRepo(db),
		contactRepo:       NewContactMessageRepo(db),
		subscriptionRepo:  NewSubscriptionRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) DB() *gorm.DB {
	return d.db
}

func (d Database) BlogPostRepo() *BlogPostRepo {
	return d.blogPostRepo
}

func (d Database) BlogCategoryRepo() *BlogCategoryRepo {
	return d.blogCategoryRepo
}

func (d Database) RegionRepo() *RegionRepo {
	return d.regionRepo
}

func (d Database) UniversityRepo() *UniversityRepo {
	return d.universityRepo
}

func (d Database) RegionalStaffRepo() *RegionalStaffRepo {
	return d.regionalStaffRepo
}

func (d Database) SmallGroupRepo() *SmallGroupRepo {
	return d.smallGroupRepo
}

func (d Database) ContactMessageRepo() *ContactMessageRepo {
	return d.contactRepo
}

func (d Database) SubscriptionRepo() *SubscriptionRepo {
	return d.subscriptionRepo
}

// Ping runs SELECT 1 against the primary.
func (d Database) Ping(ctx context.Context) error {
	var result int
	return d.db.WithContext(ctx).Raw("SELECT 1").Scan(&result).Error
}

// DSN builds the postgres connection string for DB_TYPE. "supa" reads the
// SUPABASE_* keys and forces TLS; "postgres" reads DB_*.
func DSN(cfg map[string]string) (string, error) {
	switch config.GetString(cfg, "DB_TYPE", "postgres") {
	case "supa":
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
			config.GetString(cfg, "SUPABASE_DB_HOST", ""),
			config.GetString(cfg, "SUPABASE_DB_USER", ""),
			config.GetString(cfg, "SUPABASE_DB_PASSWORD", ""),
			config.GetString(cfg, "SUPABASE_DB_NAME", ""),
			config.GetString(cfg, "SUPABASE_DB_PORT", "5432"),
		), nil
	case "postgres":
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			config.GetString(cfg, "DB_HOST", "localhost"),
			config.GetString(cfg, "DB_USER", "postgres"),
			config.GetString(cfg, "DB_PASSWORD", ""),
			config.GetString(cfg, "DB_NAME", "gbur"),
			config.GetString(cfg, "DB_PORT", "5432"),
			config.GetString(cfg, "DB_SSLMODE", "disable"),
		), nil
	default:
		return "", fmt.Errorf("unsupported DB_TYPE %q", cfg["DB_TYPE"])
	}
}

// NewGormLogger is the warn-level logger used for every connection.
func NewGormLogger() logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)
}

// Open connects to postgres. When DB_REPLICA_DSN is set, reads are routed to
// the replica through dbresolver and writes stay on the primary.
func Open(cfg map[string]string) (*gorm.DB, error) {
	dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt:    false,
		TranslateError: true,
		Logger:         NewGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if replica := config.GetString(cfg, "DB_REPLICA_DSN", ""); replica != "" {
		resolver := dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.New(postgres.Config{
				DSN:                  replica,
				PreferSimpleProtocol: true,
			})},
			Policy: dbresolver.RandomPolicy{},
		})
		if err := db.Use(resolver); err != nil {
			return nil, fmt.Errorf("registering read replica: %w", err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(config.GetInt(cfg, "DB_MAX_OPEN_CONNS", 10))
	sqlDB.SetMaxIdleConns(config.GetInt(cfg, "DB_MAX_IDLE_CONNS", 5))
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}
