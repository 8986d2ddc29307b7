package utils

import (
	"log"
	"os"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Server configuration
	AppPort            string `yaml:"APP_PORT"`
	AppEnv             string `yaml:"APP_ENV"`
	AppURL             string `yaml:"APP_URL"`
	TimeZone           string `yaml:"TIMEZONE"`
	LogFile            string `yaml:"LOG_FILE"`
	RateLimitPerSecond string `yaml:"RATE_LIMIT_PER_SECOND"`
	CORSAllowOrigins   string `yaml:"CORS_ALLOW_ORIGINS"`

	// Document store configuration
	MongoURI            string `yaml:"MONGODB_URI"`
	MongoDatabase       string `yaml:"MONGODB_DATABASE"`
	MongoConnectTimeout string `yaml:"MONGODB_CONNECT_TIMEOUT"`

	// Session configuration
	JWTSecret         string `yaml:"JWT_SECRET"`
	SessionTTLMinutes string `yaml:"SESSION_TTL_MINUTES"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`
}

var (
	configMu sync.RWMutex
	config   Config
)

var defaults = map[string]string{
	"APP_PORT":                "8080",
	"APP_ENV":                 "development",
	"APP_URL":                 "http://localhost:8080",
	"TIMEZONE":                "Asia/Kolkata",
	"LOG_FILE":                "./logs/app.log",
	"RATE_LIMIT_PER_SECOND":   "20",
	"MONGODB_DATABASE":        "sustainbite",
	"MONGODB_CONNECT_TIMEOUT": "10",
	"SESSION_TTL_MINUTES":     "120",
}

// LoadConfig reads config.yaml (or the file named by CONFIG_FILE) and then
// lets environment variables of the same name override the file values.
// A missing file is not an error; the environment alone may configure the app.
func LoadConfig() {
	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "config.yaml"
	}
	LoadConfigFile(path)
}

func LoadConfigFile(path string) {
	var loaded Config

	file, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Error reading YAML file: %s\n", err)
		}
	} else if err := yaml.Unmarshal(file, &loaded); err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
	}

	for key, field := range loaded.fields() {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			*field = value
		}
		if *field == "" {
			*field = defaults[key]
		}
	}

	configMu.Lock()
	config = loaded
	configMu.Unlock()
}

// SetConfig overrides a single key in the loaded configuration. Tests and the
// CLI flags use it; unknown keys are ignored.
func SetConfig(key, value string) {
	configMu.Lock()
	defer configMu.Unlock()
	if field, ok := config.fields()[key]; ok {
		*field = value
	}
}

func (c *Config) fields() map[string]*string {
	return map[string]*string{
		"APP_PORT":                &c.AppPort,
		"APP_ENV":                 &c.AppEnv,
		"APP_URL":                 &c.AppURL,
		"TIMEZONE":                &c.TimeZone,
		"LOG_FILE":                &c.LogFile,
		"RATE_LIMIT_PER_SECOND":   &c.RateLimitPerSecond,
		"CORS_ALLOW_ORIGINS":      &c.CORSAllowOrigins,
		"MONGODB_URI":             &c.MongoURI,
		"MONGODB_DATABASE":        &c.MongoDatabase,
		"MONGODB_CONNECT_TIMEOUT": &c.MongoConnectTimeout,
		"JWT_SECRET":              &c.JWTSecret,
		"SESSION_TTL_MINUTES":     &c.SessionTTLMinutes,
		"SMTP_HOST":               &c.SMTPHost,
		"SMTP_PORT":               &c.SMTPPort,
		"SMTP_SENDER_NAME":        &c.SMTPSenderName,
		"SMTP_AUTH_EMAIL":         &c.SMTPAuthEmail,
		"SMTP_AUTH_PASSWORD":      &c.SMTPAuthPassword,
		"AWS_S3_BUCKET":           &c.AWSS3Bucket,
		"AWS_S3_REGION":           &c.AWSS3Region,
		"AWS_ACCESS_KEY":          &c.AWSAccessKey,
		"AWS_SECRET_KEY":          &c.AWSSecretKey,
	}
}

func GetConfig(key string) string {
	configMu.RLock()
	defer configMu.RUnlock()
	if field, ok := config.fields()[key]; ok {
		return *field
	}
	return ""
}

func GetConfigInt(key string) int {
	value, err := strconv.Atoi(strings.TrimSpace(GetConfig(key)))
	if err != nil {
		if def, derr := strconv.Atoi(defaults[key]); derr == nil {
			return def
		}
		return 0
	}
	return value
}

func IsProduction() bool {
	return strings.EqualFold(GetConfig("APP_ENV"), "production")
}
