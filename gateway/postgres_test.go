package gateway

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func dryRunGateway(t *testing.T) *PostgresGateway {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=localhost user=sodfaa dbname=sodfaa sslmode=disable"}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	g := NewPostgresGateway(db, nil)
	t.Cleanup(func() { g.Close() })
	return g
}

func TestPostgresListPushesFiltersDown(t *testing.T) {
	g := dryRunGateway(t)

	var recs []Record
	stmt := g.listScope(context.Background(), "offers", Query{
		Where: map[string]interface{}{"isActive": true},
	}).Find(&recs).Statement

	sql := stmt.SQL.String()
	assert.Contains(t, sql, "collection = $1")
	assert.Contains(t, sql, `json_extract_path_text("data"::json,$2) = $3`)
	assert.Equal(t, []interface{}{"offers", "isActive", "true"}, stmt.Vars)
}

func TestPostgresListWithoutFilters(t *testing.T) {
	g := dryRunGateway(t)

	var recs []Record
	stmt := g.listScope(context.Background(), "products", Query{}).Find(&recs).Statement

	assert.NotContains(t, stmt.SQL.String(), "json_extract_path_text")
	assert.Equal(t, []interface{}{"products"}, stmt.Vars)
}
