// Package naming provides the filename and labeling conventions used when
// exporting documents from the editor.
package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// YAMLMIMEType is the MIME type attached to exported documents.
const YAMLMIMEType = "text/yaml"

// defaultExportName is used when the API title produces an empty slug.
const defaultExportName = "api-spec"

var lowerCaser = cases.Lower(language.Und)

// ExportFileName derives a download filename from an API title: runs of
// non-alphanumeric characters collapse to a single '-', the result is
// lowercased, and a '.yaml' extension is appended.
// Example: "Pet Store API" -> "pet-store-api.yaml"
func ExportFileName(title string) string {
	return ExportSlug(title) + ".yaml"
}

// ExportSlug returns the filename slug for a title without the extension.
func ExportSlug(title string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		} else {
			pendingDash = true
		}
	}

	slug := lowerCaser.String(b.String())
	if slug == "" {
		return defaultExportName
	}
	return slug
}
