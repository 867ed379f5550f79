package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	pkgtls "github.com/cloud-wave-best-zizon/storefront-service/pkg/tls"
)

type Config struct {
	Port             string        `envconfig:"PORT" default:"8080"`
	AWSRegion        string        `envconfig:"AWS_REGION" default:"ap-northeast-2"`
	DynamoEndpoint   string        `envconfig:"DYNAMO_ENDPOINT" default:""` // set for dynamodb-local
	ProductTableName string        `envconfig:"PRODUCT_TABLE_NAME" default:"products-table"`
	OrderTableName   string        `envconfig:"ORDER_TABLE_NAME" default:"orders-table"`
	RedisAddr        string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword    string        `envconfig:"REDIS_PASSWORD" default:""`
	SessionTTL       time.Duration `envconfig:"SESSION_TTL" default:"24h"`
	KafkaEnabled     bool          `envconfig:"KAFKA_ENABLED" default:"false"`
	KafkaBrokers     string        `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	KafkaTopic       string        `envconfig:"KAFKA_TOPIC" default:"order-events"`
	LogLevel         string        `envconfig:"LOG_LEVEL" default:"info"`
	LocalMode        bool          `envconfig:"LOCAL_MODE" default:"true"` // in-memory stores, no AWS/Redis
	TLS              pkgtls.TLSConfig
}

func Load() (*Config, error) {
	// .env is optional; real deployments inject environment directly.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
