// Package taxonomy manages the category and tag reference entities a
// report is classified by.
package taxonomy

import (
	"context"

	"report-backend/orm"
	"report-backend/report"

	"github.com/rs/zerolog/log"
)

type Store interface {
	GetCategoryByID(ctx context.Context, id uint64) (*orm.Category, error)
	ListCategories(ctx context.Context) ([]orm.Category, error)
	CategoryExistsByName(ctx context.Context, name string) (bool, error)
	CategoryExistsBySlug(ctx context.Context, slug string) (bool, error)
	CreateCategory(ctx context.Context, category *orm.Category) error
	SaveCategory(ctx context.Context, category *orm.Category) error
	DeleteCategory(ctx context.Context, id uint64) error

	GetTagByID(ctx context.Context, id uint64) (*orm.Tag, error)
	ListTags(ctx context.Context) ([]orm.Tag, error)
	TagExistsByName(ctx context.Context, name string) (bool, error)
	TagExistsBySlug(ctx context.Context, slug string) (bool, error)
	CreateTag(ctx context.Context, tag *orm.Tag) error
	SaveTag(ctx context.Context, tag *orm.Tag) error
	DeleteTag(ctx context.Context, id uint64) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) ListCategories(ctx context.Context) ([]orm.Category, error) {
	return s.store.ListCategories(ctx)
}

func (s *Service) GetCategory(ctx context.Context, id uint64) (*orm.Category, error) {
	return s.store.GetCategoryByID(ctx, id)
}

func (s *Service) CreateCategory(
	ctx context.Context,
	name, description, color string,
) (*orm.Category, error) {
	if name == "" {
		return nil, &orm.ValidationError{Reason: "name is required"}
	}

	taken, err := s.store.CategoryExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, &orm.ConflictError{Conflict: "category name " + name}
	}

	slug, err := report.GenerateSlug(name, func(candidate string) (bool, error) {
		return s.store.CategoryExistsBySlug(ctx, candidate)
	})
	if err != nil {
		return nil, err
	}

	category := &orm.Category{
		Name:        name,
		Slug:        slug,
		Description: description,
		Color:       color,
	}
	if err := s.store.CreateCategory(ctx, category); err != nil {
		return nil, err
	}

	log.Info().Uint64("id", category.ID).Str("slug", slug).Msg("category created")

	return category, nil
}

// CategoryPatch is a partial update; nil fields are left untouched and a
// supplied empty string overwrites.
type CategoryPatch struct {
	Name        *string
	Description *string
	Color       *string
}

// UpdateCategory applies a patch. A new name regenerates the slug.
func (s *Service) UpdateCategory(
	ctx context.Context,
	id uint64,
	patch CategoryPatch,
) (*orm.Category, error) {
	category, err := s.store.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		category.Name = *patch.Name
		slug, err := report.GenerateSlug(*patch.Name, func(candidate string) (bool, error) {
			return s.store.CategoryExistsBySlug(ctx, candidate)
		})
		if err != nil {
			return nil, err
		}
		category.Slug = slug
	}
	if patch.Description != nil {
		category.Description = *patch.Description
	}
	if patch.Color != nil {
		category.Color = *patch.Color
	}

	if err := s.store.SaveCategory(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

func (s *Service) DeleteCategory(ctx context.Context, id uint64) error {
	return s.store.DeleteCategory(ctx, id)
}

func (s *Service) ListTags(ctx context.Context) ([]orm.Tag, error) {
	return s.store.ListTags(ctx)
}

func (s *Service) GetTag(ctx context.Context, id uint64) (*orm.Tag, error) {
	return s.store.GetTagByID(ctx, id)
}

func (s *Service) CreateTag(ctx context.Context, name string) (*orm.Tag, error) {
	if name == "" {
		return nil, &orm.ValidationError{Reason: "name is required"}
	}

	taken, err := s.store.TagExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, &orm.ConflictError{Conflict: "tag name " + name}
	}

	slug, err := report.GenerateSlug(name, func(candidate string) (bool, error) {
		return s.store.TagExistsBySlug(ctx, candidate)
	})
	if err != nil {
		return nil, err
	}

	tag := &orm.Tag{Name: name, Slug: slug}
	if err := s.store.CreateTag(ctx, tag); err != nil {
		return nil, err
	}

	log.Info().Uint64("id", tag.ID).Str("slug", slug).Msg("tag created")

	return tag, nil
}

// UpdateTag renames a tag and regenerates its slug.
func (s *Service) UpdateTag(ctx context.Context, id uint64, name *string) (*orm.Tag, error) {
	tag, err := s.store.GetTagByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		tag.Name = *name
		slug, err := report.GenerateSlug(*name, func(candidate string) (bool, error) {
			return s.store.TagExistsBySlug(ctx, candidate)
		})
		if err != nil {
			return nil, err
		}
		tag.Slug = slug
	}

	if err := s.store.SaveTag(ctx, tag); err != nil {
		return nil, err
	}

	return tag, nil
}

func (s *Service) DeleteTag(ctx context.Context, id uint64) error {
	return s.store.DeleteTag(ctx, id)
}
