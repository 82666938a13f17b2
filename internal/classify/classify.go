// Package classify decides which destination category a download belongs to.
//
// Checks run in a fixed priority order and the first match wins: audio,
// video, image, application, then the document path which routes
// schoolwork-looking archives, folders and documents to Schoolwork and
// everything else to Misc_Documents.
package classify

import (
	"regexp"
	"strings"
)

// Category is a destination kind.
type Category string

// Categories in the order they are listed to users.
const (
	Music        Category = "Music"
	Applications Category = "Applications"
	Schoolwork   Category = "Schoolwork"
	MiscDocs     Category = "Misc_Documents"
	Images       Category = "Images"
	Videos       Category = "Videos"
)

// AllCategories lists every category.
var AllCategories = []Category{Music, Applications, Schoolwork, MiscDocs, Images, Videos}

// DefaultSchoolworkPattern matches course codes such as CSC101.
const DefaultSchoolworkPattern = `[A-Z]{3}\d{3}`

// Entry is a directory entry observed during a scan.
type Entry struct {
	Name  string
	Path  string
	IsDir bool
}

// Decision is the classification result for one entry.
type Decision struct {
	Category Category
	Reason   string
}

// Groups holds the extension lists, each entry a suffix such as ".mp3".
type Groups struct {
	Audio       []string
	Video       []string
	Image       []string
	Document    []string
	Application []string
	Archive     []string
}

// Rules is the immutable input of a Classifier.
type Rules struct {
	Groups     Groups
	Schoolwork *regexp.Regexp
}

type suffixGroup struct {
	category Category
	reason   string
	suffixes []string
}

// Classifier maps entries to categories.
type Classifier struct {
	fileGroups []suffixGroup
	document   []string
	archive    []string
	pattern    *regexp.Regexp
}

// New builds a Classifier. A nil pattern uses DefaultSchoolworkPattern.
func New(rules Rules) *Classifier {
	pattern := rules.Schoolwork
	if pattern == nil {
		pattern = regexp.MustCompile(DefaultSchoolworkPattern)
	}

	return &Classifier{
		fileGroups: []suffixGroup{
			{category: Music, reason: "audio file", suffixes: normalize(rules.Groups.Audio)},
			{category: Videos, reason: "video file", suffixes: normalize(rules.Groups.Video)},
			{category: Images, reason: "image file", suffixes: normalize(rules.Groups.Image)},
			{category: Applications, reason: "application file", suffixes: normalize(rules.Groups.Application)},
		},
		document: normalize(rules.Groups.Document),
		archive:  normalize(rules.Groups.Archive),
		pattern:  pattern,
	}
}

// Classify returns the category for entry. Every entry gets a category;
// unmatched entries fall through to Misc_Documents.
func (c *Classifier) Classify(entry Entry) Decision {
	name := strings.ToLower(entry.Name)

	if !entry.IsDir {
		for _, group := range c.fileGroups {
			if hasAnySuffix(name, group.suffixes) {
				return Decision{Category: group.category, Reason: group.reason}
			}
		}
	}

	return c.classifyDocument(entry, name)
}

func (c *Classifier) classifyDocument(entry Entry, lowerName string) Decision {
	looksLikeSchoolwork := c.pattern.MatchString(entry.Name)

	switch {
	case !entry.IsDir && looksLikeSchoolwork && hasAnySuffix(lowerName, c.archive):
		return Decision{Category: Schoolwork, Reason: "schoolwork archive"}
	case entry.IsDir && looksLikeSchoolwork:
		return Decision{Category: Schoolwork, Reason: "schoolwork folder"}
	case !entry.IsDir && looksLikeSchoolwork && hasAnySuffix(lowerName, c.document):
		return Decision{Category: Schoolwork, Reason: "schoolwork document file"}
	}

	return Decision{Category: MiscDocs, Reason: "misc document file/folder"}
}

// HasSuffix reports whether name ends with suffix, ignoring case.
func HasSuffix(name, suffix string) bool {
	return strings.HasSuffix(strings.ToLower(name), strings.ToLower(suffix))
}

func hasAnySuffix(lowerName string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(lowerName, suffix) {
			return true
		}
	}
	return false
}

// normalize lower-cases suffixes and adds a missing leading dot.
func normalize(suffixes []string) []string {
	out := make([]string, 0, len(suffixes))
	for _, suffix := range suffixes {
		suffix = strings.ToLower(strings.TrimSpace(suffix))
		if suffix == "" {
			continue
		}
		if !strings.HasPrefix(suffix, ".") {
			suffix = "." + suffix
		}
		out = append(out, suffix)
	}
	return out
}
