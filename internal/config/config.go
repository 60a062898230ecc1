package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// OTP store backends selectable through OTP_STORE.
const (
	OTPStoreMemory = "memory"
	OTPStoreRedis  = "redis"
	OTPStoreDynamo = "dynamo"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort    string
	AppEnv     string
	AppBaseURL string // used for dashboard links in emails

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	S3BucketName   string
	ResumeURLTTL   time.Duration

	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	JWTIssuer         string
	JWTExpiry         time.Duration

	OTPStore  string
	OTPTTL    time.Duration
	OTPLength int
	RedisURL  string

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	SNSRegion   string
	SNSTopicARN string // notification fan-out; disabled when empty

	GoogleClientID string

	AuthEnforced     bool
	NotifyMaxWorkers int
	AllowedOrigins   []string // CORS allowed origins
	TrustedProxies   []string // CIDRs or addresses whose X-Forwarded-For is honoured
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Accounts       string
	Opportunities  string
	Collaborations string
	OTPCodes       string
}

// IsProduction reports whether the service runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort:    getEnv("APP_PORT", "8080"),
		AppEnv:     getEnv("APP_ENV", "development"),
		AppBaseURL: strings.TrimRight(getEnv("APP_BASE_URL", "https://wcontent-app-in.vercel.app"), "/"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Accounts:       getEnv("DYNAMO_TABLE_ACCOUNTS", "accounts"),
			Opportunities:  getEnv("DYNAMO_TABLE_OPPORTUNITIES", "opportunities"),
			Collaborations: getEnv("DYNAMO_TABLE_COLLABORATIONS", "collaborations"),
			OTPCodes:       getEnv("DYNAMO_TABLE_OTP_CODES", "otp_codes"),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", "wcontent-resumes"),
		ResumeURLTTL: getEnvDuration("RESUME_URL_TTL", 7*24*time.Hour),

		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		JWTIssuer:         getEnv("JWT_ISSUER", "wcontent-api"),
		JWTExpiry:         getEnvDuration("JWT_EXPIRY", 24*time.Hour),

		OTPStore:  strings.ToLower(getEnv("OTP_STORE", OTPStoreMemory)),
		OTPTTL:    getEnvDuration("OTP_TTL", 10*time.Minute),
		OTPLength: getEnvInt("OTP_LENGTH", 6),
		RedisURL:  getEnv("REDIS_URL", "redis://localhost:6379/0"),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@wcontent.app"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		SNSRegion:   getEnv("SNS_REGION", "us-east-1"),
		SNSTopicARN: getEnv("SNS_TOPIC_ARN", ""),

		GoogleClientID: getEnv("GOOGLE_CLIENT_ID", ""),

		AuthEnforced:     getEnvBool("AUTH_ENFORCED", false),
		NotifyMaxWorkers: getEnvInt("NOTIFY_MAX_WORKERS", 32),
		AllowedOrigins:   splitList(getEnv("ALLOWED_ORIGINS", "https://wcontent-app-in.vercel.app,http://localhost:9002")),
		TrustedProxies:   splitList(getEnv("TRUSTED_PROXIES", "")),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

// getEnvDuration accepts Go duration strings ("10m", "24h").
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
