package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"gradely/internal/auth"
	"gradely/internal/classes"
	"gradely/internal/shared/config"
	"gradely/internal/shared/database"
	"gradely/internal/students"
	"gradely/internal/subjects"
	"gradely/internal/teachers"
	"gradely/internal/users"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Gradely Database Seeder...")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"exam_results",
		"exam_subjects",
		"exams",
		"attendance_records",
		"subject_teachers",
		"subject_grades",
		"subjects",
		"students",
		"teachers",
		"sections",
		"classes",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to defer constraints: %w", err)
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	if err := tx.Exec("SET CONSTRAINTS ALL IMMEDIATE").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to restore constraints: %w", err)
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data in dependency order.
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	if err := s.SeedAdmin(); err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	classIDs, sectionIDs, err := s.SeedClasses()
	if err != nil {
		return fmt.Errorf("failed to seed classes: %w", err)
	}

	subjectIDs, err := s.SeedSubjects(classIDs)
	if err != nil {
		return fmt.Errorf("failed to seed subjects: %w", err)
	}

	teacherIDs, err := s.SeedTeachers()
	if err != nil {
		return fmt.Errorf("failed to seed teachers: %w", err)
	}

	if err := s.AssignSubjectTeachers(subjectIDs, teacherIDs); err != nil {
		return fmt.Errorf("failed to assign subjects: %w", err)
	}

	if err := s.SeedStudents(classIDs, sectionIDs); err != nil {
		return fmt.Errorf("failed to seed students: %w", err)
	}

	// Drop any stale cached summaries.
	if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
		log.Printf("Warning: Failed to clear Redis cache: %v", err)
	}

	return nil
}

// SeedAdmin creates the bootstrap admin account.
func (s *Seeder) SeedAdmin() error {
	fmt.Println("  👤 Seeding admin...")

	hash, err := auth.HashPassword("admin12345")
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := users.User{
		ID:           uuid.New(),
		Email:        "admin@gradely.dev",
		PasswordHash: hash,
		Role:         users.RoleAdmin,
		Status:       users.StatusActive,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.db.PostgreSQL.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	fmt.Printf("    ✅ Created user: %s (%s)\n", admin.Email, admin.Role)
	return nil
}

// SeedClasses creates grade levels with two sections each.
func (s *Seeder) SeedClasses() (map[string]uuid.UUID, map[string]uuid.UUID, error) {
	fmt.Println("  🏫 Seeding classes and sections...")

	classIDs := make(map[string]uuid.UUID)
	sectionIDs := make(map[string]uuid.UUID)

	for order, name := range []string{"Grade 5", "Grade 6", "Grade 7"} {
		class := classes.Class{
			ID:    uuid.New(),
			Name:  name,
			Order: order + 1,
		}
		if err := s.db.PostgreSQL.Create(&class).Error; err != nil {
			return nil, nil, fmt.Errorf("failed to create class %s: %w", name, err)
		}
		classIDs[name] = class.ID

		for _, sectionName := range []string{"A", "B"} {
			section := classes.Section{
				ID:      uuid.New(),
				Name:    sectionName,
				ClassID: class.ID,
			}
			if err := s.db.PostgreSQL.Create(&section).Error; err != nil {
				return nil, nil, fmt.Errorf("failed to create section %s-%s: %w", name, sectionName, err)
			}
			sectionIDs[name+"-"+sectionName] = section.ID
		}

		fmt.Printf("    ✅ Created class: %s (sections A, B)\n", name)
	}

	return classIDs, sectionIDs, nil
}

// SeedSubjects creates subjects and attaches each to every class.
func (s *Seeder) SeedSubjects(classIDs map[string]uuid.UUID) (map[string]uuid.UUID, error) {
	fmt.Println("  📚 Seeding subjects...")

	subjectIDs := make(map[string]uuid.UUID)

	subjectData := []struct {
		name string
		code string
	}{
		{"Mathematics", "MATH"},
		{"English", "ENG"},
		{"Science", "SCI"},
		{"History", "HIST"},
	}

	for _, data := range subjectData {
		subject := subjects.Subject{
			ID:   uuid.New(),
			Name: data.name,
			Code: data.code,
		}
		if err := s.db.PostgreSQL.Create(&subject).Error; err != nil {
			return nil, fmt.Errorf("failed to create subject %s: %w", data.name, err)
		}
		subjectIDs[data.code] = subject.ID

		for _, classID := range classIDs {
			grade := subjects.SubjectGrade{
				ID:        uuid.New(),
				SubjectID: subject.ID,
				ClassID:   classID,
			}
			if err := s.db.PostgreSQL.Create(&grade).Error; err != nil {
				return nil, fmt.Errorf("failed to attach subject %s: %w", data.name, err)
			}
		}

		fmt.Printf("    ✅ Created subject: %s (%s)\n", data.name, data.code)
	}

	return subjectIDs, nil
}

// SeedTeachers creates teacher accounts with linked profiles.
func (s *Seeder) SeedTeachers() (map[string]uuid.UUID, error) {
	fmt.Println("  🧑‍🏫 Seeding teachers...")

	hash, err := auth.HashPassword("teacher12345")
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	teacherIDs := make(map[string]uuid.UUID)

	teacherData := []struct {
		firstName  string
		lastName   string
		email      string
		employeeNo string
	}{
		{"Priya", "Sharma", "priya.sharma@gradely.dev", "EMP-001"},
		{"David", "Okafor", "david.okafor@gradely.dev", "EMP-002"},
	}

	for _, data := range teacherData {
		user := users.User{
			ID:           uuid.New(),
			Email:        data.email,
			PasswordHash: hash,
			Role:         users.RoleTeacher,
			Status:       users.StatusActive,
		}
		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create teacher user %s: %w", data.email, err)
		}

		teacher := teachers.Teacher{
			ID:            uuid.New(),
			UserID:        user.ID,
			FirstName:     data.firstName,
			LastName:      data.lastName,
			EmployeeNo:    data.employeeNo,
			Qualification: "B.Ed",
		}
		if err := s.db.PostgreSQL.Create(&teacher).Error; err != nil {
			return nil, fmt.Errorf("failed to create teacher profile %s: %w", data.email, err)
		}

		teacherIDs[data.employeeNo] = teacher.ID
		fmt.Printf("    ✅ Created teacher: %s %s (%s)\n", data.firstName, data.lastName, data.email)
	}

	return teacherIDs, nil
}

// AssignSubjectTeachers spreads subjects across the seeded teachers.
func (s *Seeder) AssignSubjectTeachers(subjectIDs, teacherIDs map[string]uuid.UUID) error {
	fmt.Println("  🔗 Assigning subjects to teachers...")

	assignments := map[string]string{
		"MATH": "EMP-001",
		"SCI":  "EMP-001",
		"ENG":  "EMP-002",
		"HIST": "EMP-002",
	}

	for code, employeeNo := range assignments {
		link := subjects.SubjectTeacher{
			ID:        uuid.New(),
			SubjectID: subjectIDs[code],
			TeacherID: teacherIDs[employeeNo],
		}
		if err := s.db.PostgreSQL.Create(&link).Error; err != nil {
			return fmt.Errorf("failed to assign %s to %s: %w", code, employeeNo, err)
		}
	}

	return nil
}

// SeedStudents creates student accounts enrolled across the seeded sections.
func (s *Seeder) SeedStudents(classIDs, sectionIDs map[string]uuid.UUID) error {
	fmt.Println("  🎓 Seeding students...")

	hash, err := auth.HashPassword("student12345")
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	studentData := []struct {
		firstName   string
		lastName    string
		email       string
		admissionNo string
		class       string
		section     string
	}{
		{"Aarav", "Patel", "aarav.patel@gradely.dev", "ADM-2026-001", "Grade 5", "Grade 5-A"},
		{"Sofia", "Mendes", "sofia.mendes@gradely.dev", "ADM-2026-002", "Grade 5", "Grade 5-A"},
		{"Liam", "Chen", "liam.chen@gradely.dev", "ADM-2026-003", "Grade 5", "Grade 5-B"},
		{"Amara", "Diallo", "amara.diallo@gradely.dev", "ADM-2026-004", "Grade 6", "Grade 6-A"},
		{"Noah", "Kim", "noah.kim@gradely.dev", "ADM-2026-005", "Grade 7", "Grade 7-B"},
	}

	for _, data := range studentData {
		user := users.User{
			ID:           uuid.New(),
			Email:        data.email,
			PasswordHash: hash,
			Role:         users.RoleStudent,
			Status:       users.StatusActive,
		}
		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create student user %s: %w", data.email, err)
		}

		classID := classIDs[data.class]
		sectionID := sectionIDs[data.section]
		student := students.Student{
			ID:          uuid.New(),
			UserID:      user.ID,
			FirstName:   data.firstName,
			LastName:    data.lastName,
			AdmissionNo: data.admissionNo,
			ClassID:     &classID,
			SectionID:   &sectionID,
		}
		if err := s.db.PostgreSQL.Create(&student).Error; err != nil {
			return fmt.Errorf("failed to create student profile %s: %w", data.email, err)
		}

		fmt.Printf("    ✅ Created student: %s %s (%s, %s)\n", data.firstName, data.lastName, data.admissionNo, data.section)
	}

	return nil
}
