package conf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	settings, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", settings.Port)
	assert.NotEmpty(t, settings.JWTSecret)
	assert.False(t, settings.Kafka.Enabled)
	assert.Equal(t, "sales.performance.import", settings.Kafka.ImportTopic)
	assert.Equal(t, "sales.order.created", settings.Kafka.OrderTopic)
	assert.Equal(t, []string{"localhost:9092"}, settings.Kafka.Brokers)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SALES_PORT", "9090")

	settings, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", settings.Port)
}
