package catalog

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/lehigh-university-libraries/geopicker/internal/models"
)

// Catalog lists categories and their candidate images from an image root
// laid out as {root}/{category}/{item}/profile_geo.png
type Catalog struct {
	Root string
}

// New creates a catalog rooted at the image directory
func New(root string) *Catalog {
	return &Catalog{
		Root: root,
	}
}

// ListCategories returns the directories directly under the root, sorted.
// A missing root yields no categories.
func (c *Catalog) ListCategories() ([]string, error) {
	entries, err := os.ReadDir(c.Root)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("Image root does not exist", "root", c.Root)
		return []string{}, nil
	}
	if err != nil {
		return nil, models.FilesystemError("list categories", c.Root, err)
	}

	categories := []string{}
	for _, entry := range entries {
		if isDir(c.Root, entry) {
			categories = append(categories, entry.Name())
		}
	}
	sort.Strings(categories)

	return categories, nil
}

// ListCategoryImages returns the item folders of a category that contain the
// designated image. Folders without it are left out.
func (c *Catalog) ListCategoryImages(category string) ([]models.Item, error) {
	items := []models.Item{}
	if !validName(category) {
		slog.Debug("Ignoring invalid category name", "category", category)
		return items, nil
	}

	categoryPath := filepath.Join(c.Root, category)
	entries, err := os.ReadDir(categoryPath)
	if errors.Is(err, fs.ErrNotExist) {
		return items, nil
	}
	if err != nil {
		return nil, models.FilesystemError("list category", categoryPath, err)
	}

	for _, entry := range entries {
		if !isDir(categoryPath, entry) {
			continue
		}

		imageFile := filepath.Join(categoryPath, entry.Name(), models.DesignatedImage)
		info, err := os.Stat(imageFile)
		if err != nil || info.IsDir() {
			continue
		}

		items = append(items, models.Item{
			Folder:    entry.Name(),
			ImagePath: path.Join(category, entry.Name(), models.DesignatedImage),
			HasImage:  true,
		})
	}

	return items, nil
}

// FolderOrder is the integer prefix of an item folder name, "12.harbour" -> 12
func FolderOrder(folder string) (int, error) {
	prefix, _, _ := strings.Cut(folder, ".")
	n, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, models.ParseErrorf(folder, "folder name has no numeric prefix")
	}
	return n, nil
}

// SortItems orders items by the numeric prefix of their folder names
func SortItems(items []models.Item) error {
	orders := make(map[string]int, len(items))
	for _, item := range items {
		n, err := FolderOrder(item.Folder)
		if err != nil {
			return err
		}
		orders[item.Folder] = n
	}

	sort.SliceStable(items, func(i, j int) bool {
		return orders[items[i].Folder] < orders[items[j].Folder]
	})
	return nil
}

// isDir follows symlinks so linked category folders are listed too
func isDir(parent string, entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(parent, entry.Name()))
	return err == nil && info.IsDir()
}

// validName rejects names that would leave the image root
func validName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}
