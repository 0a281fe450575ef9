package storage

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"taxipark/pkg/models"
)

// Searchable columns, one per entity.
const (
	ManufacturerSearchColumn = "m.name"
	CarSearchColumn          = "c.model"
	DriverSearchColumn       = "d.username"
)

const (
	ManufacturerColumns = "m.id, m.name, m.country"
	DriverColumns       = "d.id, d.username, d.first_name, d.last_name, d.license_number, d.password_hash"
	CarColumns          = "c.id, c.model, c.manufacturer_id, m.id, m.name, m.country"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchCondition matches rows whose column contains token, ignoring case.
// LIKE wildcards inside token are escaped so it is always a literal substring.
// An empty token matches everything.
func SearchCondition(column, token string) sq.Sqlizer {
	if token == "" {
		return sq.Expr("1 = 1")
	}
	pattern := "%" + likeEscaper.Replace(strings.ToLower(token)) + "%"
	return sq.Expr("LOWER("+column+`) LIKE ? ESCAPE '\'`, pattern)
}

func ManufacturerListQuery(f models.ListFilter) sq.SelectBuilder {
	return paged(sq.Select(ManufacturerColumns).
		From("manufacturers m").
		Where(SearchCondition(ManufacturerSearchColumn, f.Search)).
		OrderBy("m.name", "m.id"), f)
}

func ManufacturerCountQuery(search string) sq.SelectBuilder {
	return sq.Select("COUNT(*)").
		From("manufacturers m").
		Where(SearchCondition(ManufacturerSearchColumn, search))
}

func CarListQuery(f models.ListFilter) sq.SelectBuilder {
	return paged(sq.Select(CarColumns).
		From("cars c").
		Join("manufacturers m ON m.id = c.manufacturer_id").
		Where(SearchCondition(CarSearchColumn, f.Search)).
		OrderBy("c.model", "c.id"), f)
}

func CarCountQuery(search string) sq.SelectBuilder {
	return sq.Select("COUNT(*)").
		From("cars c").
		Where(SearchCondition(CarSearchColumn, search))
}

func DriverListQuery(f models.ListFilter) sq.SelectBuilder {
	return paged(sq.Select(DriverColumns).
		From("drivers d").
		Where(SearchCondition(DriverSearchColumn, f.Search)).
		OrderBy("d.username", "d.id"), f)
}

func DriverCountQuery(search string) sq.SelectBuilder {
	return sq.Select("COUNT(*)").
		From("drivers d").
		Where(SearchCondition(DriverSearchColumn, search))
}

// CarsByDriverQuery lists the cars a driver is assigned to.
func CarsByDriverQuery(driverID int64) sq.SelectBuilder {
	return sq.Select(CarColumns).
		From("cars c").
		Join("manufacturers m ON m.id = c.manufacturer_id").
		Join("car_drivers cd ON cd.car_id = c.id").
		Where(sq.Eq{"cd.driver_id": driverID}).
		OrderBy("c.model", "c.id")
}

// DriversByCarQuery lists the drivers assigned to a car.
func DriversByCarQuery(carID int64) sq.SelectBuilder {
	return sq.Select(DriverColumns).
		From("drivers d").
		Join("car_drivers cd ON cd.driver_id = d.id").
		Where(sq.Eq{"cd.car_id": carID}).
		OrderBy("d.username", "d.id")
}

func DriversByIDsQuery(ids []int64) sq.SelectBuilder {
	return sq.Select(DriverColumns).
		From("drivers d").
		Where(sq.Eq{"d.id": ids}).
		OrderBy("d.username", "d.id")
}

// InsertCarDriversQuery writes one membership row per driver id.
func InsertCarDriversQuery(carID int64, driverIDs []int64) sq.InsertBuilder {
	q := sq.Insert("car_drivers").Columns("car_id", "driver_id")
	for _, id := range driverIDs {
		q = q.Values(carID, id)
	}
	return q
}

func paged(q sq.SelectBuilder, f models.ListFilter) sq.SelectBuilder {
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}
	return q
}

// UniqueIDs drops duplicates while keeping first-seen order.
func UniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
