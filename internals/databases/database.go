package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"clubfit_backend/internals/configs"
	notificationModel "clubfit_backend/internals/features/notifications/model"
	scheduleModel "clubfit_backend/internals/features/schedules/model"
	userModel "clubfit_backend/internals/features/users/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Conectando ao PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=clubfit&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // 👍 compatível com PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("❌ Falha ao conectar no banco: %v", err)
	}
	DB = db
	log.Println("✅ DB conectado.")
}

// MigrateAll roda o AutoMigrate de todos os models quando
// DB_AUTO_MIGRATE=true (ambientes de dev/homolog; produção usa migração
// versionada).
func MigrateAll() {
	if getenv("DB_AUTO_MIGRATE", "false") != "true" {
		return
	}
	log.Println("🛠️ Rodando AutoMigrate...")
	err := DB.AutoMigrate(
		&userModel.UserModel{},
		&scheduleModel.ClassScheduleModel{},
		&scheduleModel.ClassSlotModel{},
		&scheduleModel.ScheduleStatusLogModel{},
		&notificationModel.ScheduleNotificationModel{},
		&notificationModel.ScheduleClassChangeModel{},
	)
	if err != nil {
		log.Fatalf("❌ AutoMigrate falhou: %v", err)
	}
	log.Println("✅ AutoMigrate concluído.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries() {
	// ping leve para encher o pool depois que o servidor sobe
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
