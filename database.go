package main

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// allModels is the migration set. Order matters for the FK-carrying
// tables on a fresh database.
var allModels = []interface{}{
	&Group{}, &Chapter{}, &User{}, &RoleRecord{}, &UserRole{},
	&SundayServiceEvent{}, &SundayServiceReport{},
	&CampEvent{}, &CampChapterAttendance{}, &CampGroupSummary{}, &CampAttendee{},
	&FinanceMonthlyGroupReport{}, &FinancePastorTitheRecord{},
	&ZonalRemittance{}, &FinanceIndividualRecord{},
	&PFCCReport{}, &HSLHSReport{},
	&Book{}, &MinistryMaterialBookReport{}, &PcdlSubscription{},
}

// InitDB opens the connection pool and migrates the schema. The handle
// is returned to the caller rather than stored in a package global so
// its lifecycle (open at startup, drain at shutdown) stays explicit.
func InitDB(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := MigrateAndSeed(db); err != nil {
		return nil, err
	}
	return db, nil
}

// MigrateAndSeed runs AutoMigrate and makes sure every role in the
// fixed vocabulary has a row. Seeding is idempotent.
func MigrateAndSeed(db *gorm.DB) error {
	if err := db.AutoMigrate(allModels...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	for _, r := range AllRoles {
		rec := RoleRecord{RoleName: string(r)}
		if err := db.Where("role_name = ?", string(r)).FirstOrCreate(&rec).Error; err != nil {
			return fmt.Errorf("seed role %q: %w", r, err)
		}
	}
	return nil
}

// CloseDB drains the underlying pool. Called on shutdown.
func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
