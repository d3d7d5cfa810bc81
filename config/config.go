package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"nutriplan/models"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Seed      SeedConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  int
	WriteTimeout int
	CORSOrigin   string
	Debug        bool
}

type DatabaseConfig struct {
	Driver      string // postgres | sqlite
	Host        string
	User        string
	Password    string
	Name        string
	Port        string
	SSLMode     string
	Path        string
	Debug       bool
	MaxIdleConn int
	MaxOpenConn int
}

type AuthConfig struct {
	JWTSecret     string
	TokenDuration int // hours
	StaticAPIKey  string
}

type RateLimitConfig struct {
	Max    int
	Window time.Duration
}

type SeedConfig struct {
	Source   string // local path or s3://bucket/key
	S3Region string
}

// Load reads .env when present, then the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getEnvInt("READ_TIMEOUT", 15),
			WriteTimeout: getEnvInt("WRITE_TIMEOUT", 15),
			CORSOrigin:   getEnv("CORS_ORIGIN", "*"),
			Debug:        getEnvBool("DEBUG", false),
		},
		Database: DatabaseConfig{
			Driver:      getEnv("DB_DRIVER", "postgres"),
			Host:        getEnv("DB_HOST", "localhost"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    os.Getenv("DB_PASSWORD"),
			Name:        getEnv("DB_NAME", "nutriplan"),
			Port:        getEnv("DB_PORT", "5432"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			Path:        getEnv("DATABASE_PATH", "nutriplan.db"),
			Debug:       getEnvBool("DB_DEBUG", false),
			MaxIdleConn: getEnvInt("DB_MAX_IDLE_CONN", 10),
			MaxOpenConn: getEnvInt("DB_MAX_OPEN_CONN", 100),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", "change-this-in-production"),
			TokenDuration: getEnvInt("TOKEN_DURATION_HOURS", 24),
			StaticAPIKey:  os.Getenv("API_KEY"),
		},
		RateLimit: RateLimitConfig{
			Max:    getEnvInt("RATE_LIMIT_MAX", 100),
			Window: time.Duration(getEnvInt("RATE_LIMIT_WINDOW_MINUTES", 15)) * time.Minute,
		},
		Seed: SeedConfig{
			Source:   os.Getenv("SEED_SOURCE"),
			S3Region: getEnv("S3_REGION", os.Getenv("AWS_REGION")),
		},
	}
}

func (c DatabaseConfig) dialector() (gorm.Dialector, error) {
	switch c.Driver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(c.Path), nil
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", c.Driver)
}

// InitDB opens the database, configures the pool and migrates every model.
func InitDB(cfg DatabaseConfig) (*gorm.DB, error) {
	dialector, err := cfg.dialector()
	if err != nil {
		return nil, err
	}

	logLevel := logger.Warn
	if cfg.Debug {
		logLevel = logger.Info
	}
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger, TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConn)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConn)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	return db, nil
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Macro{},
		&models.Aliment{},
		&models.AlimentMacro{},
		&models.Equipment{},
		&models.Preparation{},
		&models.Meal{},
		&models.MealAliment{},
		&models.MealPreparation{},
		&models.MealEquipment{},
		&models.User{},
		&models.UserProfile{},
		&models.MealDistribution{},
		&models.WeightHistory{},
		&models.MealConsumption{},
		&models.APIKey{},
	)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
