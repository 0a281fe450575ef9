package storage

import (
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/require"

	"taxipark/pkg/models"
)

func TestSearchCondition(t *testing.T) {
	sql, args, err := SearchCondition("m.name", "").ToSql()
	require.NoError(t, err)
	require.Equal(t, "1 = 1", sql)
	require.Empty(t, args)

	sql, args, err = SearchCondition("m.name", "VolksW").ToSql()
	require.NoError(t, err)
	require.Equal(t, `LOWER(m.name) LIKE ? ESCAPE '\'`, sql)
	require.Equal(t, []interface{}{"%volksw%"}, args)
}

func TestSearchCondition_EscapesWildcards(t *testing.T) {
	_, args, err := SearchCondition("c.model", `50%_off\`).ToSql()
	require.NoError(t, err)
	require.Equal(t, []interface{}{`%50\%\_off\\%`}, args)
}

func TestManufacturerListQuery_Postgres(t *testing.T) {
	q := ManufacturerListQuery(models.ListFilter{Search: "a", Limit: 5, Offset: 10}).
		PlaceholderFormat(sq.Dollar)

	sql, args, err := q.ToSql()
	require.NoError(t, err)
	require.Equal(t,
		`SELECT m.id, m.name, m.country FROM manufacturers m WHERE LOWER(m.name) LIKE $1 ESCAPE '\' ORDER BY m.name, m.id LIMIT 5 OFFSET 10`,
		sql)
	require.Equal(t, []interface{}{"%a%"}, args)
}

func TestCarListQuery_NoPaging(t *testing.T) {
	sql, _, err := CarListQuery(models.ListFilter{}).ToSql()
	require.NoError(t, err)
	require.Equal(t,
		`SELECT c.id, c.model, c.manufacturer_id, m.id, m.name, m.country FROM cars c JOIN manufacturers m ON m.id = c.manufacturer_id WHERE 1 = 1 ORDER BY c.model, c.id`,
		sql)
}

func TestInsertCarDriversQuery(t *testing.T) {
	sql, args, err := InsertCarDriversQuery(3, []int64{1, 2}).PlaceholderFormat(sq.Dollar).ToSql()
	require.NoError(t, err)
	require.Equal(t, "INSERT INTO car_drivers (car_id,driver_id) VALUES ($1,$2),($3,$4)", sql)
	require.Equal(t, []interface{}{int64(3), int64(1), int64(3), int64(2)}, args)
}

func TestUniqueIDs(t *testing.T) {
	require.Equal(t, []int64{3, 1, 2}, UniqueIDs([]int64{3, 1, 3, 2, 1}))
	require.Empty(t, UniqueIDs(nil))
}
