package services

import (
	"gorm.io/gorm"

	"github.com/tobiasmeier/timeslot_booking/models"
)

const settingsRowID = 1

// LoadSettings returns the singleton settings row.
func LoadSettings(db *gorm.DB) (models.Settings, error) {
	var settings models.Settings
	err := db.First(&settings, "id = ?", settingsRowID).Error
	return settings, err
}

// ReplaceSettings overwrites the singleton row as a whole; concurrent updates
// are last-write-wins.
func ReplaceSettings(db *gorm.DB, settings models.Settings) (models.Settings, error) {
	settings.ID = settingsRowID
	err := db.Save(&settings).Error
	return settings, err
}
