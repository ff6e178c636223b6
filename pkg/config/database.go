package config

import (
	"context"
	"time"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/pkg/logger"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB holds the database connections
type DB struct {
	Gorm  *gorm.DB
	Redis *redis.Client
}

// InitDB opens the relational store selected by DB_DRIVER and, when
// REDIS_URL is set, the redis client.
func InitDB(cfg *Config) (*DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect to %s", cfg.DBDriver)
	}

	// Ping the database to verify connection
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, errors.Wrapf(err, "failed to ping %s", cfg.DBDriver)
	}
	logger.Log.WithField("driver", cfg.DBDriver).Info("Successfully connected to the database")

	db := &DB{Gorm: gormDB}
	if cfg.RedisURL != "" {
		db.Redis, err = initRedis(cfg.RedisURL)
		if err != nil {
			db.CloseDB()
			return nil, err
		}
	}
	return db, nil
}

func dialectorFor(cfg *Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "postgres":
		if cfg.PostgresConnStr == "" {
			return nil, errors.New("POSTGRES_CONN_STR environment variable not set")
		}
		return postgres.Open(cfg.PostgresConnStr), nil
	case "mysql":
		if cfg.MySQLDSN == "" {
			return nil, errors.New("MYSQL_DSN environment variable not set")
		}
		return mysql.Open(cfg.MySQLDSN), nil
	default:
		return nil, errors.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

func initRedis(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(err, "invalid REDIS_URL")
	}
	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(err, "failed to connect to redis")
	}
	logger.Log.Info("Successfully connected to Redis")
	return client, nil
}

// Migrate creates or updates every table
func (db *DB) Migrate() error {
	if err := db.Gorm.AutoMigrate(models.All()...); err != nil {
		return errors.Wrap(err, "failed to auto migrate models")
	}
	logger.Log.Info("Auto-migrations completed for all models")
	return nil
}

// CloseDB closes the database connections
func (db *DB) CloseDB() {
	if db.Gorm != nil {
		sqlDB, err := db.Gorm.DB()
		if err != nil {
			logger.Log.WithError(err).Error("Error getting SQL DB from GORM")
		} else if err := sqlDB.Close(); err != nil {
			logger.Log.WithError(err).Error("Error closing database connection")
		} else {
			logger.Log.Info("Database connection closed")
		}
	}

	if db.Redis != nil {
		if err := db.Redis.Close(); err != nil {
			logger.Log.WithError(err).Error("Error closing Redis connection")
		} else {
			logger.Log.Info("Redis connection closed")
		}
	}
}
