package config

import (
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	v     *viper.Viper
	vOnce sync.Once
)

// env returns the process-wide viper instance bound to the environment.
func env() *viper.Viper {
	vOnce.Do(func() {
		v = viper.New()
		v.AutomaticEnv()

		v.SetDefault("APP_NAME", "bgv-backend")
		v.SetDefault("APP_PORT", ":8080")

		v.SetDefault("DB_HOST", "localhost")
		v.SetDefault("DB_PORT", "5432")
		v.SetDefault("DB_SSLMODE", "disable")

		v.SetDefault("VERIFICATION_API_BASE_URL", "https://api.verification.com")
		v.SetDefault("VERIFICATION_API_TIMEOUT", 30*time.Second)
		v.SetDefault("VERIFICATION_API_RETRIES", 2)
		v.SetDefault("VERIFICATION_API_RETRY_WAIT", time.Second)
		v.SetDefault("VERIFICATION_API_BREAKER_MAX", 5)

		v.SetDefault("COURT_POLL_INTERVAL", 5*time.Second)
		v.SetDefault("COURT_POLL_ATTEMPTS", 12)
		v.SetDefault("PIPELINE_CONCURRENT_CHECKS", 5)
		v.SetDefault("AADHAAR_OTP_TTL", 10*time.Minute)
	})
	return v
}
