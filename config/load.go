package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func Load() App {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file, using process env")
	}

	cfg := App{
		Port:                   getenv("APP_PORT", "8080"),
		DatabaseURL:            must("DATABASE_URL"),
		JWTSecret:              getenv("JWT_SECRET", "local_dev_secret"),
		Env:                    getenv("APP_ENV", "dev"),
		AdminUsername:          getenv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash:      must("ADMIN_PASSWORD_HASH"),
		MediaDir:               getenv("MEDIA_DIR", "./media"),
		MembershipLookbackDays: getenvInt("MEMBERSHIP_LOOKBACK_DAYS", 365),
	}
	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Error("invalid int env, using default", "key", k, "value", v)
		return def
	}
	return n
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		slog.Error("required env missing", "key", k)
		panic("missing env " + k)
	}
	return v
}
