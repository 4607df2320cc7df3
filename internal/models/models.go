package models

// DesignatedImage is the file that marks an item folder as selectable
const DesignatedImage = "profile_geo.png"

// SidecarExt is the extension of the text file stored next to the designated image
const SidecarExt = ".txt"

// Item represents one candidate image folder inside a category
type Item struct {
	Folder    string `json:"folder"`
	ImagePath string `json:"image_path"` // relative to the image root, forward slashes
	HasImage  bool   `json:"has_image"`
}

// Pagination carries the metadata rendered under the category list
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

func (p Pagination) HasPrev() bool { return p.Page > 1 }
func (p Pagination) HasNext() bool { return p.Page < p.TotalPages }

// Window returns the [start, end) slice bounds of the current page
func (p Pagination) Window() (int, int) {
	start := min((p.Page-1)*p.PerPage, p.Total)
	end := min(start+p.PerPage, p.Total)
	return start, end
}

// CategoryPage is one window of the sorted category list
type CategoryPage struct {
	Categories []string
	Selections *Selections
	Pagination
}

// CategoryDetail is the ordered item list for a single category
type CategoryDetail struct {
	Category string
	Items    []Item
	Selected string
}

// ExportRow is one spreadsheet row, derived from a selection at export time
type ExportRow struct {
	Name         string `parquet:"name"`
	SearchResult string `parquet:"search_result"`
	ProfileGeo   string `parquet:"profile_geo"`
}
