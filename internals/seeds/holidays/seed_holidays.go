package holidays

import (
	"encoding/json"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/gorm"

	"staffhub_backend/internals/features/holidays/model"
)

type HolidaySeed struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// SeedHolidaysFromJSON inserts calendar holidays from a JSON file.
// Dates that already exist are skipped.
func SeedHolidaysFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Reading holiday seed file:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Failed to read seed file: %v", err)
	}

	var inputs []HolidaySeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		log.Fatalf("❌ Failed to decode seed JSON: %v", err)
	}

	for _, data := range inputs {
		date, err := time.Parse("2006-01-02", strings.TrimSpace(data.Date))
		if err != nil {
			log.Printf("❌ Invalid holiday date '%s', skipped.", data.Date)
			continue
		}

		var existing model.HolidayModel
		if err := db.Where("date = ?", date).First(&existing).Error; err == nil {
			log.Printf("ℹ️ Holiday on %s already exists, skipped.", data.Date)
			continue
		}

		holiday := model.HolidayModel{
			Date: date,
			Name: strings.TrimSpace(data.Name),
		}
		if err := db.Create(&holiday).Error; err != nil {
			log.Printf("❌ Failed to insert holiday '%s': %v", data.Name, err)
		} else {
			log.Printf("✅ Inserted holiday '%s' (%s)", data.Name, data.Date)
		}
	}
}
