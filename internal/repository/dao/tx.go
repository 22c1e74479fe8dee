package dao

import (
	"context"
	"errors"
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type txKey struct{}

// conn returns the transaction bound to ctx by LockItems, or db otherwise.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}

	return db.WithContext(ctx)
}

// LockItems runs fn inside a single transaction after taking row locks on
// the given items in ascending id order. DAO calls made with the ctx handed
// to fn join that transaction. Any error returned by fn rolls it back.
func LockItems(ctx context.Context, db *gorm.DB, itemIDs []uint, fn func(ctx context.Context) error) error {
	ids := uniqueSorted(itemIDs)

	return conn(ctx, db).Transaction(func(tx *gorm.DB) error {
		for _, id := range ids {
			var item Item
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Select("id").
				First(&item, id).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrItemNotFound
				}

				return err
			}
		}

		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func uniqueSorted(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}
