package seeds

import (
	"gorm.io/gorm"

	holidaySeeds "staffhub_backend/internals/seeds/holidays"
	userSeeds "staffhub_backend/internals/seeds/users"
)

// RunAllSeeds loads every seed file. Each seeder skips rows that already
// exist, so running this repeatedly is safe.
func RunAllSeeds(db *gorm.DB) {
	userSeeds.SeedUsersFromJSON(db, "internals/seeds/users/data_users.json")
	holidaySeeds.SeedHolidaysFromJSON(db, "internals/seeds/holidays/data_holidays.json")
}

// RunUserSeeds loads only the account seed file.
func RunUserSeeds(db *gorm.DB) {
	userSeeds.SeedUsersFromJSON(db, "internals/seeds/users/data_users.json")
}

// RunHolidaySeeds loads only the holiday calendar seed file.
func RunHolidaySeeds(db *gorm.DB) {
	holidaySeeds.SeedHolidaysFromJSON(db, "internals/seeds/holidays/data_holidays.json")
}
