package daemon

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoSchoolHub/GoSchoolHub/internal/config"
	"github.com/GoSchoolHub/GoSchoolHub/internal/db/models"
	"github.com/GoSchoolHub/GoSchoolHub/internal/uniuri"
)

// seed provisions the reserved system school with the super-admin identity
// and, on an empty database, a set of demo schools. The super-admin is only
// ever created here: the public register endpoint refuses privileged roles.
func seed(cfg *config.Config, db *gorm.DB) error {
	if err := seedSuperAdmin(db); err != nil {
		return err
	}

	if cfg.DevMode {
		return seedDemoSchools(db)
	}

	return nil
}

func seedSuperAdmin(db *gorm.DB) error {
	var system models.School

	err := db.Where("domain = ?", models.SystemSchoolDomain).First(&system).Error
	if err == nil {
		return nil // already provisioned
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	system = models.School{
		Name:   "System",
		Domain: models.SystemSchoolDomain,
	}
	if err := db.Create(&system).Error; err != nil {
		return err
	}

	password := uniuri.NewLen(24)

	admin := models.User{
		Email:    "admin@" + models.SystemSchoolDomain,
		Password: models.HashPassword(password),
		Role:     models.RoleSuperAdmin,
		SchoolID: system.ID,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	// the generated password is shown exactly once
	log.Warn().
		Str("email", admin.Email).
		Str("password", password).
		Msg("created initial super-admin, change the password after first login")

	return nil
}

func seedDemoSchools(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.School{}).
		Where("domain <> ?", models.SystemSchoolDomain).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	demo := []struct {
		name   string
		domain string
	}{
		{"School A", "schoola"},
		{"School B", "schoolb"},
		{"School C", "schoolc"},
		{"School D", "schoold"},
		{"School E", "schoole"},
	}

	for _, d := range demo {
		school := models.School{Name: d.name, Domain: d.domain}
		if err := db.Create(&school).Error; err != nil {
			return err
		}

		teacherUser := models.User{
			Email:    "teacher@" + d.domain + ".com",
			Password: models.HashPassword("changeme"),
			Role:     models.RoleTeacher,
			SchoolID: school.ID,
		}
		if err := db.Create(&teacherUser).Error; err != nil {
			return err
		}

		profile := teacherUser.Role.NewProfile(teacherUser.ID, school.ID, "Demo Teacher")
		if err := db.Create(profile).Error; err != nil {
			return err
		}

		teacher, ok := profile.(*models.Teacher)
		if !ok {
			continue
		}

		class := models.Class{
			Name:      "Demo Class",
			SchoolID:  school.ID,
			TeacherID: teacher.ID,
		}
		if err := db.Create(&class).Error; err != nil {
			return err
		}

		assignment := models.Assignment{
			Title:   "Welcome Assignment",
			ClassID: class.ID,
			DueDate: time.Now().AddDate(0, 0, 14),
		}
		if err := db.Create(&assignment).Error; err != nil {
			return err
		}

		log.Info().Str("school", school.Name).Str("id", school.ID).Msg("created demo school")
	}

	return nil
}
