package database

import (
	"log"

	"github.com/tzakkar/UTECBUDGET/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// gen_random_uuid() needs pgcrypto on Postgres < 13
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS pgcrypto").Error; err != nil {
		log.Println("WARNING: Failed to enable pgcrypto extension:", err)
	}

	// Auto-migrate core models
	err = db.AutoMigrate(
		&model.Owner{},
		&model.Department{},
		&model.Location{},
		&model.Vendor{},
		&model.Program{},
		&model.Project{},
		&model.CostCenter{},
		&model.GL{},
		&model.BudgetItem{},
		&model.AuditLog{},
	)
	if err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	return db, nil
}
