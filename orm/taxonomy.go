package orm

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

func (db *DB) GetCategoryByID(ctx context.Context, id uint64) (*Category, error) {
	category, err := gorm.G[Category](db.dbGorm).Where("id = ?", id).First(ctx)
	if err != nil {
		return nil, wrapErrorWithDetails(
			err,
			"get category",
			fmt.Sprintf("id=%d", id),
		)
	}

	return &category, nil
}

func (db *DB) ListCategories(ctx context.Context) ([]Category, error) {
	categories, err := gorm.G[Category](db.dbGorm).Order("name ASC").Find(ctx)
	if err != nil {
		return nil, wrapErrorWithDetails(err, "list categories", "")
	}

	return categories, nil
}

func (db *DB) CategoryExistsByName(ctx context.Context, name string) (bool, error) {
	count, err := gorm.G[Category](db.dbGorm).Where("name = ?", name).Count(ctx, "*")
	if err != nil {
		return false, wrapErrorWithDetails(
			err,
			"check category name exists",
			fmt.Sprintf("name=%q", name),
		)
	}

	return count > 0, nil
}

func (db *DB) CategoryExistsBySlug(ctx context.Context, slug string) (bool, error) {
	count, err := gorm.G[Category](db.dbGorm).Where("slug = ?", slug).Count(ctx, "*")
	if err != nil {
		return false, wrapErrorWithDetails(
			err,
			"check category slug exists",
			fmt.Sprintf("slug=%q", slug),
		)
	}

	return count > 0, nil
}

func (db *DB) CreateCategory(ctx context.Context, category *Category) error {
	if category == nil {
		return &ValidationError{Reason: "nil category"}
	}

	return wrapErrorWithDetails(
		gorm.G[Category](db.dbGorm).Create(ctx, category),
		"create category",
		fmt.Sprintf("name=%q, slug=%q", category.Name, category.Slug),
	)
}

func (db *DB) SaveCategory(ctx context.Context, category *Category) error {
	if category == nil {
		return &ValidationError{Reason: "nil category"}
	}

	return wrapErrorWithDetails(
		db.dbGorm.WithContext(ctx).Save(category).Error,
		"save category",
		fmt.Sprintf("id=%d", category.ID),
	)
}

func (db *DB) DeleteCategory(ctx context.Context, id uint64) error {
	result := db.dbGorm.WithContext(ctx).Delete(&Category{ID: id})
	if result.Error != nil {
		return wrapErrorWithDetails(
			result.Error,
			"delete category",
			fmt.Sprintf("id=%d", id),
		)
	}

	if result.RowsAffected == 0 {
		return &NotFoundError{Search: fmt.Sprintf("delete category (id=%d)", id)}
	}

	return nil
}

func (db *DB) GetTagByID(ctx context.Context, id uint64) (*Tag, error) {
	tag, err := gorm.G[Tag](db.dbGorm).Where("id = ?", id).First(ctx)
	if err != nil {
		return nil, wrapErrorWithDetails(err, "get tag", fmt.Sprintf("id=%d", id))
	}

	return &tag, nil
}

func (db *DB) GetTagsByIDs(ctx context.Context, ids []uint64) ([]Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	tags, err := gorm.G[Tag](db.dbGorm).Where("id IN ?", ids).Find(ctx)
	if err != nil {
		return nil, wrapErrorWithDetails(
			err,
			"get tags by ids",
			fmt.Sprintf("ids=%v", ids),
		)
	}

	return tags, nil
}

func (db *DB) ListTags(ctx context.Context) ([]Tag, error) {
	tags, err := gorm.G[Tag](db.dbGorm).Order("name ASC").Find(ctx)
	if err != nil {
		return nil, wrapErrorWithDetails(err, "list tags", "")
	}

	return tags, nil
}

func (db *DB) TagExistsByName(ctx context.Context, name string) (bool, error) {
	count, err := gorm.G[Tag](db.dbGorm).Where("name = ?", name).Count(ctx, "*")
	if err != nil {
		return false, wrapErrorWithDetails(
			err,
			"check tag name exists",
			fmt.Sprintf("name=%q", name),
		)
	}

	return count > 0, nil
}

func (db *DB) TagExistsBySlug(ctx context.Context, slug string) (bool, error) {
	count, err := gorm.G[Tag](db.dbGorm).Where("slug = ?", slug).Count(ctx, "*")
	if err != nil {
		return false, wrapErrorWithDetails(
			err,
			"check tag slug exists",
			fmt.Sprintf("slug=%q", slug),
		)
	}

	return count > 0, nil
}

func (db *DB) CreateTag(ctx context.Context, tag *Tag) error {
	if tag == nil {
		return &ValidationError{Reason: "nil tag"}
	}

	return wrapErrorWithDetails(
		gorm.G[Tag](db.dbGorm).Create(ctx, tag),
		"create tag",
		fmt.Sprintf("name=%q, slug=%q", tag.Name, tag.Slug),
	)
}

func (db *DB) SaveTag(ctx context.Context, tag *Tag) error {
	if tag == nil {
		return &ValidationError{Reason: "nil tag"}
	}

	return wrapErrorWithDetails(
		db.dbGorm.WithContext(ctx).Save(tag).Error,
		"save tag",
		fmt.Sprintf("id=%d", tag.ID),
	)
}

func (db *DB) DeleteTag(ctx context.Context, id uint64) error {
	result := db.dbGorm.WithContext(ctx).Delete(&Tag{ID: id})
	if result.Error != nil {
		return wrapErrorWithDetails(
			result.Error,
			"delete tag",
			fmt.Sprintf("id=%d", id),
		)
	}

	if result.RowsAffected == 0 {
		return &NotFoundError{Search: fmt.Sprintf("delete tag (id=%d)", id)}
	}

	return nil
}
