package db

import (
	"log"

	"gorm.io/gorm"

	"github.com/betheaakashhh/aakashbackendportfolio/internal/models"
)

// RunMigrations brings the schema up to date and runs the idempotent data
// fixups that older deployments need. Data migrations live here, at boot,
// never inside a request handler.
func RunMigrations(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&models.User{},
		&models.ProjectRequest{},
		&models.Blog{},
		&models.Resume{},
		&models.Visitor{},
		&models.UpdateInfo{},
	); err != nil {
		return err
	}

	return backfillUserRoles(gdb)
}

// backfillUserRoles assigns the default role to accounts created before the
// role column existed.
func backfillUserRoles(gdb *gorm.DB) error {
	res := gdb.Model(&models.User{}).
		Where("role IS NULL OR role = ''").
		Update("role", models.RoleClient)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		log.Printf("migrations: backfilled role on %d users", res.RowsAffected)
	}
	return nil
}
