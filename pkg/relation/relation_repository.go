package relation

import (
	"context"
	"errors"
	"fmt"

	"foodgram/entities"
	"foodgram/internal/utils"

	"gorm.io/gorm"
)

var ErrPairExists = errors.New("relation pair already exists")

type (
	RelationRepository interface {
		Add(ctx context.Context, kind Kind, actorID, targetID uint) error
		Remove(ctx context.Context, kind Kind, actorID, targetID uint) (bool, error)
		Exists(ctx context.Context, kind Kind, actorID, targetID uint) (bool, error)
		Related(ctx context.Context, kind Kind, actorID uint, targetIDs []uint) (map[uint]bool, error)
	}

	relationRepository struct {
		db *gorm.DB
	}

	// table describes where a relation kind lives; every kind is a pair of
	// foreign keys with a unique index over both.
	table struct {
		model        func() any
		newRow       func(actorID, targetID uint) any
		actorColumn  string
		targetColumn string
	}
)

var tables = map[Kind]table{
	KindFavorite: {
		model:        func() any { return &entities.Favorite{} },
		newRow:       func(a, t uint) any { return &entities.Favorite{UserID: a, RecipeID: t} },
		actorColumn:  "user_id",
		targetColumn: "recipe_id",
	},
	KindShoppingCart: {
		model:        func() any { return &entities.ShoppingCart{} },
		newRow:       func(a, t uint) any { return &entities.ShoppingCart{UserID: a, RecipeID: t} },
		actorColumn:  "user_id",
		targetColumn: "recipe_id",
	},
	KindFollow: {
		model:        func() any { return &entities.Follow{} },
		newRow:       func(a, t uint) any { return &entities.Follow{UserID: a, AuthorID: t} },
		actorColumn:  "user_id",
		targetColumn: "author_id",
	},
}

func tableFor(kind Kind) (table, error) {
	t, ok := tables[kind]
	if !ok {
		return table{}, fmt.Errorf("unknown relation kind %q", kind)
	}
	return t, nil
}

func (t table) pair() string {
	return t.actorColumn + " = ? AND " + t.targetColumn + " = ?"
}

func NewRelationRepository(db *gorm.DB) RelationRepository {
	return &relationRepository{db: db}
}

// Add inserts the pair. A pair that already exists, including one inserted
// concurrently between the check and the insert, yields ErrPairExists.
func (r *relationRepository) Add(ctx context.Context, kind Kind, actorID, targetID uint) error {
	t, err := tableFor(kind)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(t.model()).Where(t.pair(), actorID, targetID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrPairExists
		}

		if err := tx.Create(t.newRow(actorID, targetID)).Error; err != nil {
			if utils.IsUniqueViolation(err) {
				return ErrPairExists
			}
			return err
		}
		return nil
	})
}

func (r *relationRepository) Remove(ctx context.Context, kind Kind, actorID, targetID uint) (bool, error) {
	t, err := tableFor(kind)
	if err != nil {
		return false, err
	}

	res := r.db.WithContext(ctx).Where(t.pair(), actorID, targetID).Delete(t.model())
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *relationRepository) Exists(ctx context.Context, kind Kind, actorID, targetID uint) (bool, error) {
	t, err := tableFor(kind)
	if err != nil {
		return false, err
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(t.model()).Where(t.pair(), actorID, targetID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Related returns the subset of targetIDs that actorID is related to.
func (r *relationRepository) Related(ctx context.Context, kind Kind, actorID uint, targetIDs []uint) (map[uint]bool, error) {
	related := make(map[uint]bool, len(targetIDs))
	if actorID == 0 || len(targetIDs) == 0 {
		return related, nil
	}

	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(t.model()).
		Where(t.actorColumn+" = ? AND "+t.targetColumn+" IN ?", actorID, targetIDs).
		Pluck(t.targetColumn, &ids).Error; err != nil {
		return nil, err
	}

	for _, id := range ids {
		related[id] = true
	}
	return related, nil
}
