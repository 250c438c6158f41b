package rules

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// defaultCategories lists the stock extension groups in priority order.
// Folder names are derived from the category keys via title casing.
var defaultCategories = []struct {
	category   string
	extensions []string
}{
	{"images", []string{"jpg", "jpeg", "png", "gif", "bmp", "webp", "svg", "ico", "tiff", "raw", "heic"}},
	{"documents", []string{"pdf", "doc", "docx", "xls", "xlsx", "ppt", "pptx", "txt", "csv", "rtf", "odt", "md"}},
	{"code", []string{"go", "js", "ts", "py", "rb", "rs", "java", "c", "cpp", "h", "php", "swift", "kt", "sh", "html", "css", "json", "xml", "yaml", "yml", "sql"}},
	{"videos", []string{"mp4", "avi", "mkv", "mov", "wmv", "flv", "webm", "m4v", "mpg", "mpeg", "3gp", "ogv"}},
	{"audio", []string{"mp3", "wav", "flac", "aac", "ogg", "m4a", "wma", "opus"}},
	{"archives", []string{"zip", "tar", "gz", "bz2", "xz", "7z", "rar", "iso"}},
	{"installers", []string{"exe", "msi", "app", "deb", "rpm", "dmg", "pkg", "appimage"}},
}

// Default returns the stock rule set used when a config defines no rules.
func Default() []Rule {
	caser := cases.Title(language.English)
	rules := make([]Rule, 0, len(defaultCategories))
	for _, entry := range defaultCategories {
		rules = append(rules, Rule{
			Name:       entry.category,
			Folder:     caser.String(entry.category),
			Extensions: entry.extensions,
		})
	}
	return rules
}
