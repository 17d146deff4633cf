// Command seed populates a development database with demo marketplace data:
// one teacher with a published profile and one student account.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"github.com/tutorhive/tutorhive-api/internal/models"
	"github.com/tutorhive/tutorhive-api/internal/repository"
	"github.com/tutorhive/tutorhive-api/pkg/config"
	"github.com/tutorhive/tutorhive-api/pkg/database"
)

func main() {
	var password string
	flag.StringVar(&password, "password", "changeme123", "Password assigned to the demo accounts")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	users := repository.NewUserRepository(db)
	profiles := repository.NewProfileRepository(db)

	teacher := &models.User{
		Email:        "teacher@example.com",
		PasswordHash: string(hash),
		FullName:     "Ana Martins",
		Role:         models.RoleTeacher,
		Active:       true,
	}
	if err := ensureUser(ctx, users, teacher); err != nil {
		log.Fatalf("failed to seed teacher: %v", err)
	}

	student := &models.User{
		Email:        "student@example.com",
		PasswordHash: string(hash),
		FullName:     "Rui Costa",
		Role:         models.RoleStudent,
		Active:       true,
	}
	if err := ensureUser(ctx, users, student); err != nil {
		log.Fatalf("failed to seed student: %v", err)
	}

	profile := &models.TeacherProfile{
		UserID:            teacher.ID,
		FullName:          teacher.FullName,
		Subject:           "Mathematics",
		Location:          "Lisbon",
		LessonType:        models.LessonTypeBoth,
		HourlyRate:        45,
		Bio:               "Secondary school maths teacher with ten years of tutoring experience.",
		AvailabilityDays:  pq.StringArray{"monday", "wednesday", "friday"},
		AvailabilitySlots: pq.StringArray{"afternoon", "evening"},
	}
	if err := profiles.Upsert(ctx, profile); err != nil {
		log.Fatalf("failed to seed teacher profile: %v", err)
	}

	log.Printf("seeded teacher %s and student %s", teacher.Email, student.Email)
}

func ensureUser(ctx context.Context, users *repository.UserRepository, user *models.User) error {
	existing, err := users.FindByEmail(ctx, user.Email)
	if err == nil {
		user.ID = existing.ID
		return nil
	}
	return users.Create(ctx, user)
}
