package configs

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	DBSource  string
	JWTSecret string
	JWTTTL    time.Duration

	// Board identity; one board per server process.
	BoardID string

	// Record backend (kintone) credentials, one app per entity kind.
	KintoneSubdomain string
	DriverAppID      string
	DriverToken      string
	TruckAppID       string
	TruckToken       string
	ChassisAppID     string
	ChassisToken     string
	ContainerAppID   string
	ContainerToken   string

	// Notification mail (SMTP).
	MailHost string
	MailPort string
	MailUser string
	MailPass string
	MailFrom string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, reading environment directly")
	}

	return &Config{
		Port:      getEnv("PORT", "8000"),
		DBSource:  getEnv("DB_SOURCE", "board.db"),
		JWTSecret: getEnv("JWT_SECRET", "changeme"),
		JWTTTL:    time.Duration(24) * time.Hour,
		BoardID:   getEnv("BOARD_ID", "main"),

		KintoneSubdomain: os.Getenv("KINTONE_SUBDOMAIN"),
		DriverAppID:      os.Getenv("KINTONE_DRIVER_APP_ID"),
		DriverToken:      os.Getenv("KINTONE_DRIVER_API_TOKEN"),
		TruckAppID:       os.Getenv("KINTONE_TRUCK_APP_ID"),
		TruckToken:       os.Getenv("KINTONE_TRUCK_API_TOKEN"),
		ChassisAppID:     os.Getenv("KINTONE_CHASSIS_APP_ID"),
		ChassisToken:     os.Getenv("KINTONE_CHASSIS_API_TOKEN"),
		ContainerAppID:   os.Getenv("KINTONE_CONTAINER_APP_ID"),
		ContainerToken:   os.Getenv("KINTONE_CONTAINER_API_TOKEN"),

		MailHost: os.Getenv("MAIL_HOST"),
		MailPort: getEnv("MAIL_PORT", "587"),
		MailUser: os.Getenv("MAIL_USER"),
		MailPass: os.Getenv("MAIL_PASS"),
		MailFrom: os.Getenv("MAIL_FROM"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
