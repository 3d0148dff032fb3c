package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// resolveIDs loads every row named by ids, failing with missing unless all of
// them exist.
func resolveIDs[T any](tx *gorm.DB, ids []uint, missing error) ([]T, error) {
	ids = uniqueIDs(ids)
	rows := make([]T, 0, len(ids))
	if len(ids) == 0 {
		return rows, nil
	}

	if err := tx.Where("id IN ?", ids).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) != len(ids) {
		return nil, missing
	}
	return rows, nil
}

// replaceAssociation swaps the whole association set for rows.
func replaceAssociation[T any](tx *gorm.DB, owner any, name string, rows []T) error {
	assoc := tx.Model(owner).Association(name)
	if len(rows) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(rows)
}

// lockExisting fails with gorm.ErrRecordNotFound unless the T row with id is
// present, and holds it locked until the transaction ends.
func lockExisting[T any](tx *gorm.DB, id uint) error {
	var row T
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&row, "id = ?", id).Error
}
