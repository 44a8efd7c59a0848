package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pulse-api/models"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Warn),
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB, log *zap.Logger) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Post{},
		&models.PostLike{},
		&models.PostBookmark{},
		&models.Comment{},
		&models.Hashtag{},
		&models.Notification{},
		&models.Report{},
		&models.VideoChatSession{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	addDatabaseConstraints(db, log)

	return nil
}

func addDatabaseConstraints(db *gorm.DB, log *zap.Logger) {
	// Unique pair indexes are declared on the models; the check constraint
	// below backs up the application-level self-follow rejection.
	if err := db.Exec("ALTER TABLE follows ADD CONSTRAINT ck_follows_no_self_follow CHECK (follower_id != following_id)").Error; err != nil {
		// Constraint may already exist from a previous run.
		log.Warn("could not add follows check constraint", zap.Error(err))
	}
}

// SeedData can be used to populate the database with initial data for development/testing
func SeedData(db *gorm.DB, log *zap.Logger) error {
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)

	if userCount > 0 {
		return nil
	}

	testUsers := []models.User{
		{
			ID:            "user-1",
			Name:          "John Doe",
			Username:      "john_doe",
			Email:         "john@example.com",
			Password:      "$2a$10$dummy",
			EmailVerified: true,
			IsVerified:    true,
		},
		{
			ID:            "user-2",
			Name:          "Jane Smith",
			Username:      "jane_smith",
			Email:         "jane@example.com",
			Password:      "$2a$10$dummy",
			EmailVerified: true,
		},
	}

	for _, user := range testUsers {
		if err := db.Create(&user).Error; err != nil {
			log.Warn("could not create seed user", zap.String("username", user.Username), zap.Error(err))
		}
	}

	testHashtags := []models.Hashtag{
		{ID: "tag-1", Name: "golang", PostCount: 42},
		{ID: "tag-2", Name: "webdev", PostCount: 17},
		{ID: "tag-3", Name: "opensource", PostCount: 9},
	}

	for _, tag := range testHashtags {
		if err := db.Create(&tag).Error; err != nil {
			log.Warn("could not create seed hashtag", zap.String("hashtag", tag.Name), zap.Error(err))
		}
	}

	return nil
}
