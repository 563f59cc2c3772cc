package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Document is a gated investor artifact. It is owned by the content store;
// the portal only reads and filters it.
type Document struct {
	ID          uuid.UUID `db:"id"           yaml:"id"`
	Title       string    `db:"title"        yaml:"title"`
	Description string    `db:"description"  yaml:"description"`
	Category    string    `db:"category"     yaml:"category"`
	FileType    FileType  `db:"file_type"    yaml:"file_type"`
	FileSize    int64     `db:"file_size"    yaml:"file_size"`
	URL         string    `db:"url"          yaml:"url"`
	PreviewURL  *string   `db:"preview_url"  yaml:"preview_url"`
	PublishDate time.Time `db:"publish_date" yaml:"publish_date"`
	Tags        []string  `db:"tags"         yaml:"tags"`
}

// HasTag reports whether the document carries tag exactly.
func (d *Document) HasTag(tag string) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// SizeLabel formats FileSize for display, e.g. "2.4 MB".
func (d *Document) SizeLabel() string {
	const unit = 1024
	size := d.FileSize
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
