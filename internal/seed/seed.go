// Package seed bootstraps a default admin account so a fresh install is
// usable without manual SQL.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	authdomain "github.com/capstore/capstore/internal/auth/domain"
	"github.com/capstore/capstore/internal/auth/password"
)

const (
	defaultAdminEmail    = "admin@capstore.local"
	defaultAdminPassword = "changeme1"
	defaultAdminDisplay  = "Capstore Admin"
)

// EnsureAdmin creates the default admin user if no account exists yet.
func EnsureAdmin(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&authdomain.User{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		hash, err := password.Hash(defaultAdminPassword)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		admin := &authdomain.User{
			ID:                  node.Generate(),
			Email:               defaultAdminEmail,
			DisplayName:         defaultAdminDisplay,
			PasswordHash:        &hash,
			LastPasswordChanged: &now,
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		return tx.Create(admin).Error
	})
}
