package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/somnia-app/somnia-api/internal/domain"
	"gorm.io/gorm"
)

const seededDays = 30

// Models lists every persisted model, in FK dependency order.
func Models() []interface{} {
	return []interface{}{
		&domain.User{},
		&domain.HeartRateRecord{},
		&domain.HeartRateSample{},
		&domain.StepRecord{},
		&domain.ExerciseRecord{},
		&domain.BloodPressureRecord{},
		&domain.SpO2Record{},
		&domain.SleepSession{},
		&domain.SleepStage{},
		&domain.RiskScore{},
	}
}

// Run seeds the database with sample users and wearable data. Users that
// already have sleep sessions are skipped, so repeated runs are safe.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	users := []domain.User{
		{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Timezone: "Europe/Amsterdam"},
		{ID: uuid.MustParse("22222222-2222-2222-2222-222222222222"), Timezone: "America/New_York"},
		{ID: uuid.MustParse("33333333-3333-3333-3333-333333333333"), Timezone: "Asia/Tokyo"},
	}

	for _, user := range users {
		if err := db.Where("id = ?", user.ID).FirstOrCreate(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", user.ID, err)
		}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for _, user := range users {
		var sessionCount int64
		if err := db.Model(&domain.SleepSession{}).Where("user_id = ?", user.ID).Count(&sessionCount).Error; err != nil {
			return fmt.Errorf("failed to count sessions for user %s: %w", user.ID, err)
		}
		if sessionCount > 0 {
			log.Printf("User %s already has data, skipping", user.ID)
			continue
		}
		if err := seedUserData(db, user, rng); err != nil {
			return err
		}
		log.Printf("Seeded %d days of wearable data for user %s", seededDays, user.ID)
	}

	log.Println("Seed completed")
	return nil
}

func seedUserData(db *gorm.DB, user domain.User, rng *rand.Rand) error {
	now := time.Now().UTC()
	for i := 0; i < seededDays; i++ {
		date := now.AddDate(0, 0, -i)
		day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

		if err := seedSleepSession(db, user, day, rng); err != nil {
			return err
		}
		if err := seedHeartRate(db, user, day, rng); err != nil {
			return err
		}

		steps := domain.StepRecord{
			UserID:    user.ID,
			StartTime: day.Add(8 * time.Hour),
			EndTime:   day.Add(20 * time.Hour),
			Count:     4000 + rng.Intn(8000),
		}
		if err := db.Create(&steps).Error; err != nil {
			return fmt.Errorf("failed to create step record: %w", err)
		}

		// Exercise on roughly half the days.
		if rng.Float32() < 0.5 {
			start := day.Add(time.Duration(17+rng.Intn(3)) * time.Hour)
			minutes := float64(20 + rng.Intn(50))
			exercise := domain.ExerciseRecord{
				UserID:          user.ID,
				StartTime:       start,
				EndTime:         start.Add(time.Duration(minutes) * time.Minute),
				ExerciseType:    []string{"running", "cycling", "walking", "strength"}[rng.Intn(4)],
				DurationMinutes: &minutes,
			}
			if err := db.Create(&exercise).Error; err != nil {
				return fmt.Errorf("failed to create exercise record: %w", err)
			}
		}

		bp := domain.BloodPressureRecord{
			UserID:        user.ID,
			Time:          day.Add(time.Duration(9+rng.Intn(10)) * time.Hour),
			SystolicMmHg:  float64(110 + rng.Intn(25)),
			DiastolicMmHg: float64(70 + rng.Intn(15)),
		}
		if err := db.Create(&bp).Error; err != nil {
			return fmt.Errorf("failed to create blood pressure record: %w", err)
		}

		spo2 := domain.SpO2Record{
			UserID:     user.ID,
			Time:       day.Add(time.Duration(1+rng.Intn(6)) * time.Hour),
			Percentage: float64(94 + rng.Intn(6)),
		}
		if err := db.Create(&spo2).Error; err != nil {
			return fmt.Errorf("failed to create spo2 record: %w", err)
		}
	}
	return nil
}

func seedSleepSession(db *gorm.DB, user domain.User, day time.Time, rng *rand.Rand) error {
	// Bedtime on the previous evening, wakeup in the morning of `day`.
	bedtime := day.Add(-time.Duration(60+rng.Intn(120)) * time.Minute)
	wakeup := bedtime.Add(time.Duration(390+rng.Intn(150)) * time.Minute)

	session := domain.SleepSession{
		UserID:       user.ID,
		StartTime:    bedtime,
		EndTime:      wakeup,
		AwakeSeconds: float64(rng.Intn(1800)),
		Awakenings:   rng.Intn(4),
	}

	// Cycle through light, deep, and REM stages across the night.
	stageKinds := []int{domain.StageLight, domain.StageDeep, domain.StageREM}
	cursor := bedtime
	for k := 0; cursor.Before(wakeup); k++ {
		span := time.Duration(45+rng.Intn(45)) * time.Minute
		end := cursor.Add(span)
		if end.After(wakeup) {
			end = wakeup
		}
		session.Stages = append(session.Stages, domain.SleepStage{
			StartTime: cursor,
			EndTime:   end,
			Stage:     stageKinds[k%len(stageKinds)],
		})
		cursor = end
	}

	if err := db.Create(&session).Error; err != nil {
		return fmt.Errorf("failed to create sleep session: %w", err)
	}

	// Short afternoon nap on some days.
	if rng.Float32() < 0.3 {
		napStart := day.Add(time.Duration(13+rng.Intn(3)) * time.Hour)
		nap := domain.SleepSession{
			UserID:    user.ID,
			StartTime: napStart,
			EndTime:   napStart.Add(time.Duration(20+rng.Intn(40)) * time.Minute),
		}
		if err := db.Create(&nap).Error; err != nil {
			return fmt.Errorf("failed to create nap session: %w", err)
		}
	}
	return nil
}

func seedHeartRate(db *gorm.DB, user domain.User, day time.Time, rng *rand.Rand) error {
	start := day.Add(7 * time.Hour)
	record := domain.HeartRateRecord{
		UserID:    user.ID,
		StartTime: start,
		EndTime:   start.Add(12 * time.Hour),
	}
	for h := 0; h < 12; h++ {
		record.Samples = append(record.Samples, domain.HeartRateSample{
			Time:           start.Add(time.Duration(h) * time.Hour),
			BeatsPerMinute: float64(55 + rng.Intn(45)),
		})
	}
	if err := db.Create(&record).Error; err != nil {
		return fmt.Errorf("failed to create heart rate record: %w", err)
	}
	return nil
}
