// Command create-admin provisions an admin account from the command line,
// for deployments that keep admin signup disabled.
package main

import (
	"flag"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/betheaakashhh/aakashbackendportfolio/internal/config"
	"github.com/betheaakashhh/aakashbackendportfolio/internal/db"
	"github.com/betheaakashhh/aakashbackendportfolio/internal/models"
	"github.com/betheaakashhh/aakashbackendportfolio/internal/utils"
)

func main() {
	name := flag.String("name", "", "admin display name")
	email := flag.String("email", "", "admin email")
	password := flag.String("password", "", "admin password (min 6 chars)")
	flag.Parse()

	if *name == "" || *email == "" || len(*password) < 6 {
		log.Fatal("usage: create-admin -name NAME -email EMAIL -password PASSWORD (min 6 chars)")
	}

	_ = godotenv.Load()
	cfg := config.Load()

	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	if err := db.RunMigrations(gdb); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	addr := strings.ToLower(strings.TrimSpace(*email))

	var existing models.User
	err = gdb.Where("email = ?", addr).First(&existing).Error
	switch {
	case err == nil && existing.Role == models.RoleAdmin:
		log.Printf("admin already exists: %s", addr)
		return
	case err == nil:
		// Promote the existing account instead of failing on the unique email.
		if err := gdb.Model(&existing).Update("role", models.RoleAdmin).Error; err != nil {
			log.Fatalf("promote user: %v", err)
		}
		log.Printf("promoted %s to admin", addr)
		return
	case err != gorm.ErrRecordNotFound:
		log.Fatalf("lookup user: %v", err)
	}

	hash, err := utils.HashPassword(*password)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	admin := models.User{
		Name:     strings.TrimSpace(*name),
		Email:    addr,
		Password: hash,
		Role:     models.RoleAdmin,
	}
	if err := gdb.Create(&admin).Error; err != nil {
		log.Fatalf("create admin: %v", err)
	}

	log.Printf("admin created: %s (%s)", admin.Name, admin.Email)
}
