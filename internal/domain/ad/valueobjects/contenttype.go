package valueobjects

// ContentType says how the ad creative is authored and rendered.
type ContentType string

const (
	ContentTypeText     ContentType = "TEXT"
	ContentTypeHTML     ContentType = "HTML"
	ContentTypeMarkdown ContentType = "MARKDOWN"
	ContentTypeMedia    ContentType = "MEDIA"
)

func (c ContentType) IsValid() bool {
	switch c {
	case ContentTypeText, ContentTypeHTML, ContentTypeMarkdown, ContentTypeMedia:
		return true
	default:
		return false
	}
}

// RequiresMedia reports whether the creative must carry a media URL.
func (c ContentType) RequiresMedia() bool {
	return c == ContentTypeMedia
}

// RequiresRendering reports whether the creative text needs conversion to
// Telegram HTML before delivery.
func (c ContentType) RequiresRendering() bool {
	return c == ContentTypeHTML || c == ContentTypeMarkdown
}

func (c ContentType) String() string {
	return string(c)
}
