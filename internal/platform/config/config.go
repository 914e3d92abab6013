package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"dayflow/internal/domain/attendance"
)

type Config struct {
	Addr               string
	DatabaseURL        string
	JWTSecret          string
	JWTTTL             time.Duration
	FrontendDir        string
	CORSOrigins        []string
	Environment        string
	LogLevel           string
	LogFormat          string
	SeedAdminEmail     string
	SeedAdminPassword  string
	AllowSelfSignup    bool
	RunMigrations      bool
	RunSeed            bool
	MaxBodyBytes       int64
	RateLimitPerMinute int
	RequestTimeout     time.Duration
	MetricsEnabled     bool
	PayslipCurrency    string

	// LeaveRevalidateOnApproval makes approval re-check the balance atomically
	// with the reservation. When false approval reserves unconditionally.
	LeaveRevalidateOnApproval bool
	// LeaveRestoreOnDelete releases the reserved days when an approved
	// request is deleted.
	LeaveRestoreOnDelete bool
	// AttendanceOvernightPolicy decides what a check-out earlier than the
	// check-in means: reject, next_day or negative.
	AttendanceOvernightPolicy attendance.OvernightPolicy
}

// Load reads configuration from the environment, after merging a .env file
// when one is present.
func Load() Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("APP_ADDR", ":8080")
	v.SetDefault("JWT_TTL", "12h")
	v.SetDefault("FRONTEND_DIR", "frontend/dist")
	v.SetDefault("FRONTEND_URL", "http://localhost:5173")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("ALLOW_SELF_SIGNUP", true)
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("RUN_SEED", true)
	v.SetDefault("MAX_BODY_BYTES", 1048576)
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 120)
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("PAYSLIP_CURRENCY", "USD")
	v.SetDefault("LEAVE_REVALIDATE_ON_APPROVAL", true)
	v.SetDefault("LEAVE_RESTORE_ON_DELETE", true)
	v.SetDefault("ATTENDANCE_OVERNIGHT_POLICY", string(attendance.OvernightReject))

	return Config{
		Addr:                      v.GetString("APP_ADDR"),
		DatabaseURL:               v.GetString("DATABASE_URL"),
		JWTSecret:                 v.GetString("JWT_SECRET"),
		JWTTTL:                    getDuration(v, "JWT_TTL", 12*time.Hour),
		FrontendDir:               v.GetString("FRONTEND_DIR"),
		CORSOrigins:               splitList(v.GetString("FRONTEND_URL")),
		Environment:               v.GetString("APP_ENV"),
		LogLevel:                  strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat:                 strings.ToLower(v.GetString("LOG_FORMAT")),
		SeedAdminEmail:            v.GetString("SEED_ADMIN_EMAIL"),
		SeedAdminPassword:         v.GetString("SEED_ADMIN_PASSWORD"),
		AllowSelfSignup:           v.GetBool("ALLOW_SELF_SIGNUP"),
		RunMigrations:             v.GetBool("RUN_MIGRATIONS"),
		RunSeed:                   v.GetBool("RUN_SEED"),
		MaxBodyBytes:              v.GetInt64("MAX_BODY_BYTES"),
		RateLimitPerMinute:        v.GetInt("RATE_LIMIT_PER_MINUTE"),
		RequestTimeout:            getDuration(v, "REQUEST_TIMEOUT", 30*time.Second),
		MetricsEnabled:            v.GetBool("METRICS_ENABLED"),
		PayslipCurrency:           v.GetString("PAYSLIP_CURRENCY"),
		LeaveRevalidateOnApproval: v.GetBool("LEAVE_REVALIDATE_ON_APPROVAL"),
		LeaveRestoreOnDelete:      v.GetBool("LEAVE_RESTORE_ON_DELETE"),
		AttendanceOvernightPolicy: attendance.OvernightPolicy(strings.ToLower(strings.TrimSpace(v.GetString("ATTENDANCE_OVERNIGHT_POLICY")))),
	}
}

func getDuration(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.IsProduction() {
		if len(c.JWTSecret) < 32 {
			return fmt.Errorf("JWT_SECRET must be at least 32 characters in production")
		}
		if c.RunSeed && strings.TrimSpace(c.SeedAdminPassword) == "" {
			return fmt.Errorf("SEED_ADMIN_PASSWORD must be changed or RUN_SEED disabled in production")
		}
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if _, ok := attendance.ParseOvernightPolicy(string(c.AttendanceOvernightPolicy)); !ok {
		return fmt.Errorf("ATTENDANCE_OVERNIGHT_POLICY must be one of reject, next_day, negative")
	}
	return nil
}
