package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the database, retrying a few times so the service survives
// the database coming up after it in a compose stack.
func Connect(dsn string) (*gorm.DB, error) {
	const maxAttempts = 10

	var (
		gdb *gorm.DB
		err error
	)
	for i := 1; i <= maxAttempts; i++ {
		gdb, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			return gdb, nil
		}
		log.Printf("db connect attempt %d/%d failed: %v", i, maxAttempts, err)
		time.Sleep(2 * time.Second)
	}
	return nil, err
}
