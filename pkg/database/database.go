package database

import (
	"fmt"
	"log"
	"poker_school_backend/internal/config"
	"poker_school_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the connection pool; migrate runs AutoMigrate and the section
// seed, controlled by the auto_migrate setting and the --migrate flags.
func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if migrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		log.Println("Database migration completed")
		seedHomeSections(db)
	}

	return db, nil
}

// Migrate is shared with the test harness, which opens sqlite instead of mysql.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Course{},
		&model.Chapter{},
		&model.ChapterComponent{},
		&model.Video{},
		&model.Quiz{},
		&model.FreeVideo{},
		&model.FreeQuiz{},
		&model.Question{},
		&model.UploadFile{},
		&model.ProgressRecord{},
		&model.CourseProgress{},
		&model.Mapper{},
		&model.Streak{},
		&model.StreakItem{},
		&model.Reward{},
		&model.BadgeAndReward{},
		&model.Bookmark{},
		&model.LastSeen{},
		&model.Feedback{},
		&model.Banner{},
		&model.Feed{},
		&model.LiveStream{},
		&model.Popup{},
		&model.HomeSection{},
	)
}

func seedHomeSections(db *gorm.DB) {
	var count int64
	db.Model(&model.HomeSection{}).Count(&count)
	if count != 0 {
		return
	}
	defaults := []model.HomeSection{
		{Key: "free_quizzes", Title: "Quiz", Order: 1, Enabled: true},
		{Key: "live_streams", Title: "Live", Order: 2, Enabled: true},
		{Key: "courses", Title: "Courses", Order: 3, Enabled: true},
		{Key: "free_videos", Title: "Free Lessons", Order: 4, Enabled: true},
		{Key: "banners", Title: "Banners", Order: 5, Enabled: true},
	}
	for _, s := range defaults {
		db.Create(&s)
	}
}
