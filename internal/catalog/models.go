// file: internal/catalog/models.go
// version: 1.0.0
// guid: c32f65ee-a733-4810-acce-ef9c12985b22

package catalog

// Friend is an author in the catalog
type Friend struct {
	Name             string     `json:"name" yaml:"name"`
	AlphabeticalName string     `json:"alphabeticalName" yaml:"alphabeticalName"`
	Description      string     `json:"description" yaml:"description"`
	Documents        []Document `json:"documents" yaml:"documents"`
}

// Document is a written work belonging to a friend
type Document struct {
	Title         string    `json:"title" yaml:"title"`
	Lang          string    `json:"lang" yaml:"lang"`
	IsCompilation bool      `json:"isCompilation" yaml:"isCompilation"`
	Description   string    `json:"description,omitempty" yaml:"description,omitempty"`
	CustomCSS     string    `json:"customCss,omitempty" yaml:"customCss,omitempty"`
	CustomHTML    string    `json:"customHtml,omitempty" yaml:"customHtml,omitempty"`
	Editions      []Edition `json:"editions" yaml:"editions"`
}

// Edition is a printed or digital variant of a document
type Edition struct {
	Type  string `json:"type" yaml:"type"` // "paperback", "hardcover", "updated", "original", "modernized"
	Path  string `json:"path" yaml:"path"`
	ISBN  string `json:"isbn" yaml:"isbn"`
	Size  string `json:"size" yaml:"size"` // "s", "m" or "xl"
	Pages int    `json:"pages" yaml:"pages"`
}

// Trim sizes an edition may declare
const (
	SizeSmall  = "s"
	SizeMedium = "m"
	SizeXL     = "xl"
)

// ValidSize reports whether size is a known trim size.
func ValidSize(size string) bool {
	switch size {
	case SizeSmall, SizeMedium, SizeXL:
		return true
	}
	return false
}
