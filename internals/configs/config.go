package configs

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	JWTSecret        string
	JWTRefreshSecret string
	Gateway          GatewayConfig
	SMTP             SMTPConfig
)

// GatewayConfig holds the card-processor credential set. Test-mode keys
// (pub_test_/prv_test_ prefixes) skip the integrity signature.
type GatewayConfig struct {
	BaseURL         string
	PublicKey       string
	PrivateKey      string
	IntegritySecret string
	Currency        string
}

func (g GatewayConfig) IsTestMode() bool {
	return strings.HasPrefix(g.PublicKey, "pub_test_") ||
		strings.HasPrefix(g.PrivateKey, "prv_test_")
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("[WARN] no .env file found, using system ENV")
		}
	}

	JWTSecret = GetEnv("JWT_SECRET")
	JWTRefreshSecret = GetEnv("JWT_REFRESH_SECRET")

	Gateway = GatewayConfig{
		BaseURL:         GetEnv("GATEWAY_BASE_URL", "https://sandbox.wompi.co/v1"),
		PublicKey:       GetEnv("GATEWAY_PUBLIC_KEY"),
		PrivateKey:      GetEnv("GATEWAY_PRIVATE_KEY"),
		IntegritySecret: GetEnv("GATEWAY_INTEGRITY_SECRET"),
		Currency:        GetEnv("GATEWAY_CURRENCY", "COP"),
	}

	smtpPort := 587
	if v := GetEnv("SMTP_PORT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			smtpPort = parsed
		}
	}
	SMTP = SMTPConfig{
		Host:     GetEnv("SMTP_HOST"),
		Port:     smtpPort,
		Username: GetEnv("SMTP_USERNAME"),
		Password: GetEnv("SMTP_PASSWORD"),
		From:     GetEnv("SMTP_FROM", "no-reply@academix.local"),
	}

	if JWTSecret == "" {
		log.Println("[WARN] JWT_SECRET is not set")
	}
	if Gateway.PublicKey == "" {
		log.Println("[WARN] GATEWAY_PUBLIC_KEY is not set, recurring charges will fail")
	} else if Gateway.IsTestMode() {
		log.Println("[INFO] gateway running with test credentials, integrity signature disabled")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}
