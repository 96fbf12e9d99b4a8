package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config regroupe toute la configuration du serveur. Les valeurs sont lues
// une seule fois au démarrage puis injectées dans les services — pas de
// os.Getenv dispersé dans le code métier.
type Config struct {
	Port string

	// ScyllaDB
	ScyllaHosts      []string
	ScyllaSSLEnabled bool
	ScyllaCACertPath string
	UsersKeyspace    string
	UsersRole        string
	UsersPassword    string
	ProductsKeyspace string
	ProductsRole     string
	ProductsPassword string
	CartsKeyspace    string
	CartsRole        string
	CartsPassword    string

	// Redis
	RedisAddr     string
	RedisPassword string

	// Elasticsearch
	ElasticURL      string
	ElasticUser     string
	ElasticPassword string

	// MinIO
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	// SMTP
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string

	// Stripe
	StripeSecretKey string

	// JWT
	JWTSecret               string
	AccessExpirationMinutes int

	// Valeurs métier par défaut
	DefaultWalletMoney   float64
	DefaultAddress       string
	DefaultPaymentOption string
	AllowedEmailTLDs     []string
}

// AccessTokenLifetime retourne la durée de vie d'un access token.
func (c *Config) AccessTokenLifetime() time.Duration {
	return time.Duration(c.AccessExpirationMinutes) * time.Minute
}

// Load charge le fichier .env puis construit la configuration.
func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé — on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}

	return &Config{
		Port: getEnv("PORT", "8080"),

		ScyllaHosts:      strings.Split(getEnv("SCYLLA_HOSTS", "127.0.0.1"), ","),
		ScyllaSSLEnabled: getEnv("SCYLLA_SSL_ENABLED", "false") == "true",
		ScyllaCACertPath: os.Getenv("SCYLLA_SSL_CA_PATH"),
		UsersKeyspace:    getEnv("SCYLLA_KS_USERS_KEYSPACE", "orvia_users"),
		UsersRole:        os.Getenv("SCYLLA_KS_USERS_ROLE"),
		UsersPassword:    os.Getenv("SCYLLA_KS_USERS_PASSWORD"),
		ProductsKeyspace: getEnv("SCYLLA_KS_PRODUCTS_KEYSPACE", "orvia_products"),
		ProductsRole:     os.Getenv("SCYLLA_KS_PRODUCTS_ROLE"),
		ProductsPassword: os.Getenv("SCYLLA_KS_PRODUCTS_PASSWORD"),
		CartsKeyspace:    getEnv("SCYLLA_KS_CARTS_KEYSPACE", "orvia_carts"),
		CartsRole:        os.Getenv("SCYLLA_KS_CARTS_ROLE"),
		CartsPassword:    os.Getenv("SCYLLA_KS_CARTS_PASSWORD"),

		RedisAddr:     getEnv("REDIS_HOST", "127.0.0.1:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		ElasticURL:      getEnv("ELASTIC_URL", "http://127.0.0.1:9200"),
		ElasticUser:     os.Getenv("ELASTIC_USER"),
		ElasticPassword: os.Getenv("ELASTIC_PASSWORD"),

		MinioEndpoint:  getEnv("MINIO_ENDPOINT", "127.0.0.1:9000"),
		MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:    getEnv("MINIO_BUCKET", "orvia-products"),
		MinioUseSSL:    getEnv("MINIO_USE_SSL", "false") == "true",

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		MailFrom:     getEnv("MAIL_FROM", "noreply@orvia.shop"),

		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),

		JWTSecret:               getEnv("JWT_SECRET", "super_secret"),
		AccessExpirationMinutes: getEnvInt("JWT_ACCESS_EXPIRATION_MINUTES", 30),

		DefaultWalletMoney:   getEnvFloat("DEFAULT_WALLET_MONEY", 500),
		DefaultAddress:       getEnv("DEFAULT_ADDRESS", "ADDRESS_NOT_SET"),
		DefaultPaymentOption: getEnv("DEFAULT_PAYMENT_OPTION", "PAYMENT_OPTION_DEFAULT"),
		AllowedEmailTLDs:     strings.Split(getEnv("ALLOWED_EMAIL_TLDS", "com,net"), ","),
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

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
