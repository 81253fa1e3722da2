package db

import (
	"fmt"
	"strings"

	"go_backoffice/internal/auth"
	"go_backoffice/internal/model"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Migrate runs database migrations for all models
func Migrate(gdb *gorm.DB) error {
	models := []interface{}{
		&model.User{},
		&model.Order{},
		&model.Product{},
	}

	if err := gdb.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	logrus.WithField("tables", len(models)).Info("database migration completed")
	return nil
}

// SeedOwner creates the bootstrap owner account when the users table is
// empty. No-op when any user exists or no seed password is configured.
func SeedOwner(gdb *gorm.DB, email, password string) error {
	var count int64
	if err := gdb.Model(&model.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}
	if password == "" {
		logrus.Warn("users table is empty and SEED_OWNER_PASSWORD is unset; no account seeded")
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	owner := model.User{
		Name:         "Owner",
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: hash,
		Role:         model.RoleOwner,
		Status:       model.UserStatusActive,
	}
	if err := gdb.Create(&owner).Error; err != nil {
		return fmt.Errorf("failed to seed owner account: %w", err)
	}

	logrus.WithField("email", owner.Email).Info("seeded owner account")
	return nil
}
