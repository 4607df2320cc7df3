package picking

import (
	"fmt"
	"log/slog"

	"github.com/lehigh-university-libraries/geopicker/internal/catalog"
	"github.com/lehigh-university-libraries/geopicker/internal/models"
	"github.com/lehigh-university-libraries/geopicker/internal/storage"
)

// DefaultPageSize is the number of categories shown per page
const DefaultPageSize = 10

// PageRequest carries the page asked for in the URL and the page the session
// viewed last. Either may be absent.
type PageRequest struct {
	Page     *int
	LastPage *int
}

type Service struct {
	catalog    *catalog.Catalog
	selections *storage.SelectionStore
	pageSize   int
}

func NewService(c *catalog.Catalog, selections *storage.SelectionStore, pageSize int) *Service {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Service{
		catalog:    c,
		selections: selections,
		pageSize:   pageSize,
	}
}

// ListCategories returns one page of categories with the current selections.
// The returned page number is clamped and is what the session should remember.
func (s *Service) ListCategories(req PageRequest) (*models.CategoryPage, error) {
	categories, err := s.catalog.ListCategories()
	if err != nil {
		return nil, err
	}

	selections, err := s.selections.Load()
	if err != nil {
		return nil, err
	}

	page := 1
	switch {
	case req.Page != nil:
		page = *req.Page
	case req.LastPage != nil:
		page = *req.LastPage
	}

	pagination := Paginate(len(categories), s.pageSize, page)
	start, end := pagination.Window()

	return &models.CategoryPage{
		Categories: categories[start:end],
		Selections: selections,
		Pagination: pagination,
	}, nil
}

// Paginate clamps page into [1, totalPages]. An empty list still has one page.
func Paginate(total, perPage, page int) models.Pagination {
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	page = max(1, min(page, totalPages))

	return models.Pagination{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}

// CategoryDetail lists the items of a category ordered by folder number, with
// the selected item, if any, moved to the front.
func (s *Service) CategoryDetail(category string) (*models.CategoryDetail, error) {
	items, err := s.catalog.ListCategoryImages(category)
	if err != nil {
		return nil, err
	}

	selections, err := s.selections.Load()
	if err != nil {
		return nil, err
	}
	selected := selections.Path(category)

	ordered, err := orderItems(items, selected)
	if err != nil {
		return nil, fmt.Errorf("failed to order items of %s: %w", category, err)
	}

	return &models.CategoryDetail{
		Category: category,
		Items:    ordered,
		Selected: selected,
	}, nil
}

func orderItems(items []models.Item, selected string) ([]models.Item, error) {
	idx := -1
	if selected != "" {
		for i, item := range items {
			if item.ImagePath == selected {
				idx = i
				break
			}
		}
	}

	if idx < 0 {
		if err := catalog.SortItems(items); err != nil {
			return nil, err
		}
		return items, nil
	}

	selectedItem := items[idx]
	rest := make([]models.Item, 0, len(items)-1)
	rest = append(rest, items[:idx]...)
	rest = append(rest, items[idx+1:]...)
	if err := catalog.SortItems(rest); err != nil {
		return nil, err
	}

	return append([]models.Item{selectedItem}, rest...), nil
}

// Select records imagePath for category, replacing any earlier choice.
// The path is not checked against the catalog.
func (s *Service) Select(category, imagePath string) error {
	selections, err := s.selections.Load()
	if err != nil {
		return err
	}

	selections.Set(category, imagePath)
	if err := s.selections.Save(selections); err != nil {
		return err
	}

	slog.Info("Image selected", "category", category, "image_path", imagePath)
	return nil
}

// Unselect clears the selection for category; clearing an absent one is a no-op
func (s *Service) Unselect(category string) error {
	selections, err := s.selections.Load()
	if err != nil {
		return err
	}

	removed := selections.Delete(category)
	if err := s.selections.Save(selections); err != nil {
		return err
	}

	slog.Info("Image unselected", "category", category, "removed", removed)
	return nil
}

// Selections exposes the current mapping for read-only callers such as the CLI
func (s *Service) Selections() (*models.Selections, error) {
	return s.selections.Load()
}
