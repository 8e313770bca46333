package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lumexa/product-sdk/internal/domain"
)

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	return categories, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id int64) (domain.Category, error) {
	c, err := s.store.GetCategory(ctx, id)
	if err != nil {
		return domain.Category{}, fmt.Errorf("getting category: %w", err)
	}

	return c, nil
}

// CreateCategory stores a category. The slug defaults to the slugified name
// and the parent, when given, must exist.
func (s *CatalogService) CreateCategory(ctx context.Context, in domain.CategoryChanges) (domain.Category, error) {
	fields := map[string][]string{}
	requireText(fields, "name", in.Name)

	if in.Name != nil && *in.Name != "" && slugFor(in.Slug, *in.Name) == "" {
		fields["slug"] = append(fields["slug"], "The slug could not be derived from the name.")
	}

	if err := s.checkParent(ctx, fields, 0, in.ParentID); err != nil {
		return domain.Category{}, err
	}

	if err := fieldsError(fields); err != nil {
		return domain.Category{}, err
	}

	now := s.now()
	c := domain.Category{
		Name:      *in.Name,
		Slug:      slugFor(in.Slug, *in.Name),
		ParentID:  in.ParentID,
		IsActive:  valueOr(in.IsActive, true),
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyCategoryText(&c, in)

	created, err := s.store.CreateCategory(ctx, c)
	if err != nil {
		return domain.Category{}, fmt.Errorf("creating category: %w", err)
	}

	s.log(ctx, "CreateCategory").InfoContext(ctx, "category created", slog.Int64("category_id", created.ID))

	return created, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id int64, in domain.CategoryChanges) (domain.Category, error) {
	c, err := s.store.GetCategory(ctx, id)
	if err != nil {
		return domain.Category{}, fmt.Errorf("getting category: %w", err)
	}

	fields := map[string][]string{}
	if in.Name != nil {
		requireText(fields, "name", in.Name)
	}

	if in.Slug != nil {
		requireText(fields, "slug", in.Slug)
	}

	if err := s.checkParent(ctx, fields, id, in.ParentID); err != nil {
		return domain.Category{}, err
	}

	if err := fieldsError(fields); err != nil {
		return domain.Category{}, err
	}

	c.Name = valueOr(in.Name, c.Name)
	c.Slug = valueOr(in.Slug, c.Slug)
	c.IsActive = valueOr(in.IsActive, c.IsActive)

	if in.ParentID != nil {
		c.ParentID = in.ParentID
	}

	applyCategoryText(&c, in)
	c.UpdatedAt = s.now()

	updated, err := s.store.UpdateCategory(ctx, c)
	if err != nil {
		return domain.Category{}, fmt.Errorf("updating category: %w", err)
	}

	return updated, nil
}

// DeleteCategory removes a category. Its children become roots.
func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.store.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}

	s.log(ctx, "DeleteCategory").InfoContext(ctx, "category deleted", slog.Int64("category_id", id))

	return nil
}

// checkParent rejects a missing parent and any parent that would close a
// cycle through self. self is zero for a new category. Only store failures
// other than not found are returned as errors.
func (s *CatalogService) checkParent(ctx context.Context, fields map[string][]string, self int64, parentID *int64) error {
	if parentID == nil {
		return nil
	}

	const field = "parent_id"

	seen := map[int64]bool{}

	for next := parentID; next != nil; {
		if self != 0 && *next == self {
			fields[field] = append(fields[field], "A category cannot be its own ancestor.")
			return nil
		}

		if seen[*next] {
			return nil
		}

		seen[*next] = true

		ancestor, err := s.store.GetCategory(ctx, *next)
		if err != nil {
			if domain.IsNotFound(err) {
				fields[field] = append(fields[field], "The selected parent id is invalid.")
				return nil
			}

			return fmt.Errorf("checking parent category: %w", err)
		}

		next = ancestor.ParentID
	}

	return nil
}

func applyCategoryText(c *domain.Category, in domain.CategoryChanges) {
	if in.Description != nil {
		c.Description = in.Description
	}

	if in.Image != nil {
		c.Image = in.Image
	}

	if in.MetaTitle != nil {
		c.MetaTitle = in.MetaTitle
	}

	if in.MetaDescription != nil {
		c.MetaDescription = in.MetaDescription
	}

	if in.Position != nil {
		c.Position = in.Position
	}
}
