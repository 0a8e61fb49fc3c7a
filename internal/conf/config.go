// Package conf loads server-level settings. Database connection settings
// stay plain env vars handled in the database package; everything else can
// come from a config file or SALES_-prefixed env vars.
package conf

import (
	"strings"

	"github.com/spf13/viper"
)

// KafkaSettings configures the optional event pipeline
type KafkaSettings struct {
	Enabled     bool     `mapstructure:"enabled"`
	Brokers     []string `mapstructure:"brokers"`
	ImportTopic string   `mapstructure:"import_topic"`
	OrderTopic  string   `mapstructure:"order_topic"`
}

// Settings holds the server configuration
type Settings struct {
	Port          string        `mapstructure:"port"`
	CORSOrigins   string        `mapstructure:"cors_origins"`
	JWTSecret     string        `mapstructure:"jwt_secret"`
	AdminEmail    string        `mapstructure:"admin_email"`
	AdminPassword string        `mapstructure:"admin_password"`
	OrgConfigPath string        `mapstructure:"org_config_path"`
	Kafka         KafkaSettings `mapstructure:"kafka"`
}

func setDefaults() {
	viper.SetDefault("port", "8080")
	viper.SetDefault("cors_origins", "http://localhost:3000,http://127.0.0.1:3000")
	viper.SetDefault("jwt_secret", "change-this-in-production")
	viper.SetDefault("admin_email", "admin@example.com")
	viper.SetDefault("admin_password", "")
	viper.SetDefault("org_config_path", "")
	viper.SetDefault("kafka.enabled", false)
	viper.SetDefault("kafka.brokers", []string{"localhost:9092"})
	viper.SetDefault("kafka.import_topic", "sales.performance.import")
	viper.SetDefault("kafka.order_topic", "sales.order.created")
}

// Load reads settings from an optional config file (sales.yaml in the
// working directory or /etc/sales) with SALES_ env var overrides.
func Load() (*Settings, error) {
	setDefaults()

	viper.SetConfigName("sales")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/sales")

	viper.SetEnvPrefix("sales")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional; anything else is a real error.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var settings Settings
	if err := viper.Unmarshal(&settings); err != nil {
		return nil, err
	}
	return &settings, nil
}
