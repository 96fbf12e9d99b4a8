package database

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"orvia_back_end/internal/config"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gocql/gocql"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
)

// --- Configuration ScyllaDB ---
type ScyllaKeyspaceConfig struct {
	Hosts       []string
	Keyspace    string
	Username    string
	Password    string
	SSLEnabled  bool
	CACertPath  string
	Timeout     time.Duration
	NumConns    int
	Consistency gocql.Consistency
}

type ScyllaManager struct {
	sessions map[string]*gocql.Session // keyspace → session
	configs  map[string]ScyllaKeyspaceConfig
	mu       sync.Mutex
}

// --- Variables Globales ---
var (
	Scylla  *ScyllaManager
	Redis   *redis.Client
	Elastic *elasticsearch.Client
	MinIO   *minio.Client

	cfg *config.Config
)

// Connect initialise toutes les connexions (Scylla, Redis, Elastic, MinIO).
func Connect(c *config.Config) {
	cfg = c

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := initScyllaDB(c); err != nil {
		log.Fatalf("❌ Échec initialisation ScyllaDB: %v", err)
	}

	connectRedis(ctx, c)
	connectElastic(c)
	connectMinIO(ctx, c)

	log.Println("✅ Toutes les bases de données sont connectées")
}

// =============================================
// SCYLLA DB (Multi-Keyspaces avec SSL & Rôles)
// =============================================

// initScyllaDB initialise le gestionnaire de sessions ScyllaDB.
// Les tables sont créées via scripts/scylladb_init.cql, pas au démarrage.
func initScyllaDB(c *config.Config) error {
	Scylla = &ScyllaManager{
		sessions: make(map[string]*gocql.Session),
		configs:  loadScyllaConfigs(c),
	}

	for keyspace := range Scylla.configs {
		if _, err := Scylla.GetSession(keyspace); err != nil {
			return fmt.Errorf("échec initialisation keyspace %s: %v", keyspace, err)
		}
	}

	return nil
}

func loadScyllaConfigs(c *config.Config) map[string]ScyllaKeyspaceConfig {
	configs := make(map[string]ScyllaKeyspaceConfig)

	common := ScyllaKeyspaceConfig{
		Hosts:       c.ScyllaHosts,
		SSLEnabled:  c.ScyllaSSLEnabled,
		CACertPath:  c.ScyllaCACertPath,
		Timeout:     5 * time.Second,
		NumConns:    20,
		Consistency: gocql.Quorum,
	}

	// --- Keyspace Utilisateurs ---
	users := common
	users.Keyspace = c.UsersKeyspace
	users.Username = c.UsersRole
	users.Password = c.UsersPassword
	configs[c.UsersKeyspace] = users

	// --- Keyspace Produits ---
	products := common
	products.Keyspace = c.ProductsKeyspace
	products.Username = c.ProductsRole
	products.Password = c.ProductsPassword
	configs[c.ProductsKeyspace] = products

	// --- Keyspace Paniers ---
	carts := common
	carts.Keyspace = c.CartsKeyspace
	carts.Username = c.CartsRole
	carts.Password = c.CartsPassword
	configs[c.CartsKeyspace] = carts

	return configs
}

func createScyllaCluster(config ScyllaKeyspaceConfig) (*gocql.ClusterConfig, error) {
	cluster := gocql.NewCluster(config.Hosts...)
	cluster.Keyspace = config.Keyspace
	cluster.Consistency = config.Consistency
	cluster.Timeout = config.Timeout
	cluster.NumConns = config.NumConns

	cluster.MaxWaitSchemaAgreement = 30 * time.Second
	cluster.ReconnectInterval = 1 * time.Second
	cluster.Authenticator = gocql.PasswordAuthenticator{
		Username: config.Username,
		Password: config.Password,
	}

	if config.SSLEnabled && config.CACertPath != "" {
		caCert, err := os.ReadFile(config.CACertPath)
		if err != nil {
			return nil, fmt.Errorf("impossible de lire le certificat CA: %v", err)
		}

		caCertPool := x509.NewCertPool()
		if !caCertPool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("impossible de parser le certificat CA")
		}

		cluster.SslOpts = &gocql.SslOptions{
			Config: &tls.Config{RootCAs: caCertPool},
		}
	}

	cluster.PoolConfig.HostSelectionPolicy = gocql.TokenAwareHostPolicy(gocql.RoundRobinHostPolicy())

	return cluster, nil
}

// GetSession retourne une session pour un keyspace donné.
func (sm *ScyllaManager) GetSession(keyspace string) (*gocql.Session, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	config, exists := sm.configs[keyspace]
	if !exists {
		return nil, fmt.Errorf("keyspace '%s' non configuré", keyspace)
	}

	if session, exists := sm.sessions[keyspace]; exists {
		if err := session.Query("SELECT now() FROM system.local").Exec(); err == nil {
			return session, nil
		}
		// Session invalide, la recréer
		session.Close()
	}

	cluster, err := createScyllaCluster(config)
	if err != nil {
		return nil, fmt.Errorf("erreur configuration cluster pour %s: %v", keyspace, err)
	}

	session, err := cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("erreur création session pour %s: %v", keyspace, err)
	}

	sm.sessions[keyspace] = session
	log.Printf("✅ Nouvelle session ScyllaDB pour keyspace '%s' (utilisateur: %s)",
		keyspace, config.Username)

	return session, nil
}

// CloseScylla ferme toutes les sessions ScyllaDB.
func CloseScylla() {
	Scylla.mu.Lock()
	defer Scylla.mu.Unlock()

	for keyspace, session := range Scylla.sessions {
		session.Close()
		log.Printf("🔌 Session ScyllaDB fermée pour keyspace '%s'", keyspace)
	}
}

// GetUsersSession retourne la session pour le keyspace users.
func GetUsersSession() (*gocql.Session, error) {
	return Scylla.GetSession(cfg.UsersKeyspace)
}

// GetProductsSession retourne la session pour le keyspace products.
func GetProductsSession() (*gocql.Session, error) {
	return Scylla.GetSession(cfg.ProductsKeyspace)
}

// GetCartsSession retourne la session pour le keyspace carts.
func GetCartsSession() (*gocql.Session, error) {
	return Scylla.GetSession(cfg.CartsKeyspace)
}

// =============================================
// REDIS
// =============================================
func connectRedis(ctx context.Context, c *config.Config) {
	Redis = redis.NewClient(&redis.Options{
		Addr:     c.RedisAddr,
		Password: c.RedisPassword,
		DB:       0,
	})

	if err := Redis.Ping(ctx).Err(); err != nil {
		log.Fatal("❌ Erreur connexion Redis:", err)
	}
	log.Println("✅ Connecté à Redis")
}

// =============================================
// ELASTICSEARCH
// =============================================
func connectElastic(c *config.Config) {
	esCfg := elasticsearch.Config{
		Addresses: []string{c.ElasticURL},
		Username:  c.ElasticUser,
		Password:  c.ElasticPassword,
	}

	client, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		log.Fatal("❌ Erreur création client Elasticsearch:", err)
	}

	res, err := client.Info()
	if err != nil {
		log.Fatal("❌ Erreur connexion Elasticsearch:", err)
	}
	defer res.Body.Close()

	Elastic = client
	log.Println("✅ Connecté à Elasticsearch")
}

// =============================================
// MINIO
// =============================================
func connectMinIO(ctx context.Context, c *config.Config) {
	client, err := minio.New(c.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(c.MinioAccessKey, c.MinioSecretKey, ""),
		Secure: c.MinioUseSSL,
	})
	if err != nil {
		log.Fatal("❌ Erreur connexion MinIO:", err)
	}

	exists, err := client.BucketExists(ctx, c.MinioBucket)
	if err != nil {
		log.Fatal("❌ Erreur vérification bucket MinIO:", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, c.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			log.Fatal("❌ Erreur création bucket MinIO:", err)
		}
		log.Println("🪣 Bucket créé :", c.MinioBucket)
	} else {
		log.Println("🪣 Bucket MinIO déjà présent :", c.MinioBucket)
	}

	MinIO = client
	log.Println("✅ Connecté à MinIO :", c.MinioEndpoint)
}
