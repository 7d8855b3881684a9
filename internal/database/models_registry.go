package database

import "typehero/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Challenge{},
		&models.Solution{},
		&models.Comment{},
		&models.Report{},
	}
}
