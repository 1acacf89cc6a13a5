package configs

import (
	"log"

	"dispatchboard/entity"

	"golang.org/x/crypto/bcrypt"
)

// SeedOperator creates the initial dispatcher account from env on first boot.
func SeedOperator() error {
	db := DB()
	email := getEnv("OPERATOR_EMAIL", "")
	pass := getEnv("OPERATOR_PASSWORD", "")
	if email == "" || pass == "" {
		log.Println("skip seeding operator: missing OPERATOR_EMAIL/OPERATOR_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.Operator{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		log.Println("operator already exists:", email)
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	op := entity.Operator{
		Email:    email,
		Password: string(hash),
		Name:     getEnv("OPERATOR_NAME", "dispatcher"),
	}
	return db.Create(&op).Error
}
