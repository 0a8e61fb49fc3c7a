package graphql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSchema(t *testing.T) {
	schema, err := CreateSchema()
	require.NoError(t, err)

	queryType := schema.QueryType()
	require.NotNil(t, queryType)

	fields := queryType.Fields()
	assert.Contains(t, fields, "salesKpi")
	assert.Contains(t, fields, "monthlyTrend")
	assert.Contains(t, fields, "clientRanking")
	assert.Contains(t, fields, "targetProgress")
	assert.Contains(t, fields, "dataQualityAlerts")
}
