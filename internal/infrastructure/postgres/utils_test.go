package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUniqueViolation(t *testing.T) {
	wrapped := fmt.Errorf("insert invoice: %w", &pgconn.PgError{Code: "23505", ConstraintName: "ux_invoices_factory_invoice_no"})
	assert.True(t, isUniqueViolation(wrapped))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("connection refused")))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, isForeignKeyViolation(fmt.Errorf("x: %w", &pgconn.PgError{Code: "23503"})))
	assert.False(t, isForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
}

func TestItemsInsertIsOneStatement(t *testing.T) {
	sql, args, err := itemsInsert(sampleItems()).ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"INSERT INTO invoice_items (id,invoice_id,position,name,quantity,rate,amount) VALUES ($1,$2,$3,$4,$5,$6,$7),($8,$9,$10,$11,$12,$13,$14)",
		sql)
	assert.Len(t, args, 14)
}

func TestListQueryAppliesFilter(t *testing.T) {
	from, to := sampleRange()
	sql, args, err := listQuery(sampleFilter(&from, &to)).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "WHERE factory_id = $1 AND owner_id = $2 AND date >= $3 AND date <= $4")
	assert.Contains(t, sql, "ORDER BY created_seq DESC LIMIT 20 OFFSET 40")
	assert.Len(t, args, 4)
}

func TestLatestQueryUsesInsertionOrder(t *testing.T) {
	sql, args, err := latestQuery("f1").ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "WHERE factory_id = $1 ORDER BY created_seq DESC LIMIT 1")
	assert.NotContains(t, sql, "created_at DESC")
	assert.Equal(t, []any{"f1"}, args)
}

func TestMigrationsAreEmbedded(t *testing.T) {
	files, err := migrationFiles()
	require.NoError(t, err)
	require.NotEmpty(t, files)
	assert.Equal(t, "001_init.sql", files[0])
}

func TestMonthlySalesQueryExcludesCancelled(t *testing.T) {
	from, to := sampleRange()
	sql, args, err := monthlySalesQuery("f1", "u1", from, to).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "status <> $3")
	assert.Contains(t, sql, "GROUP BY 1 ORDER BY 1")
	assert.Equal(t, "CANCELLED", args[2])
}
