package database

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mverdier/driver-management-api/internal/config"
	"github.com/mverdier/driver-management-api/internal/models"
)

var DB *gorm.DB

func Connect(cfg *config.Config) error {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(cfg.DBName)
	default:
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
		dialector = mysql.Open(dsn)
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// Unique-constraint violations surface as gorm.ErrDuplicatedKey
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	return nil
}

func Migrate() error {
	return MigrateWith(DB)
}

// MigrateWith runs the schema migration against the given connection.
// Uniqueness constraints declared on the models (membership pair,
// association pair, page-config order, rating quadruplet) are created
// here.
func MigrateWith(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.AuthGroup{},
		&models.CustomGroup{},
		&models.GroupMembership{},
		&models.PageGroup{},
		&models.Page{},
		&models.PageConfig{},
		&models.UserPageGroupAssociation{},
		&models.Company{},
		&models.Service{},
		&models.Site{},
		&models.Driver{},
		&models.Rater{},
		&models.RatingCriterion{},
		&models.Rating{},
		&models.RatingHistory{},
		&models.SiteHistory{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (used for testing)
func SetDB(db *gorm.DB) {
	DB = db
}
