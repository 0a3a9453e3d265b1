package utils

import (
	"log"
	"os"
	"strconv"
)

const TokenIssuer = "certifick"

var (
	JWTSecretKey            string
	JWTExpirationTime       int64 // seconds, admin access credential TTL
	StudentTokenExpiration  int64 // seconds
	ResetTokenExpirationSec int64 // seconds, password reset tokens
)

func InitJWT() {

	// For tests, use default values if environment variables aren't set
	if os.Getenv("GO_ENV") == "test" {
		if os.Getenv("JWT_SECRET_KEY") == "" {
			os.Setenv("JWT_SECRET_KEY", "test_secret_key")
		}
		if os.Getenv("JWT_EXPIRATION_TIME") == "" {
			os.Setenv("JWT_EXPIRATION_TIME", "7200")
		}
	}

	JWTSecretKey = os.Getenv("JWT_SECRET_KEY")
	if JWTSecretKey == "" {
		log.Fatal("JWT Secret Key not set")
	}

	jwtExpiration := os.Getenv("JWT_EXPIRATION_TIME")
	if jwtExpiration == "" {
		log.Fatal("JWT Expiration Time not set")
	}

	var err error
	JWTExpirationTime, err = strconv.ParseInt(jwtExpiration, 10, 64)
	if err != nil {
		log.Fatal("Error parsing JWT expiration time")
	}

	StudentTokenExpiration = int64(GetEnvAsInt("STUDENT_TOKEN_EXPIRATION_TIME", 86400))
	ResetTokenExpirationSec = int64(GetEnvAsInt("RESET_TOKEN_EXPIRATION_TIME", 3600))
}
