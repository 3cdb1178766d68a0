// Package resolve produces a metadata record for a documentation file,
// either from the curated table or by heuristic inference over the file's
// path and content.
package resolve

import (
	"path"
	"sort"
	"strings"
	"unicode"

	"github.com/halvard/docstamp/internal/markdown"
	"github.com/halvard/docstamp/internal/models"
)

const maxDescriptionLen = 200

// categoryRule maps path substrings to a category. Rules are checked in
// order; first match wins.
type categoryRule struct {
	needles  []string
	category string
}

var categoryRules = []categoryRule{
	{[]string{"tutorial", "getting-started"}, models.CategoryTutorial},
	{[]string{"howto", "guide"}, models.CategoryHowto},
	{[]string{"reference", "api", "adr"}, models.CategoryReference},
	{[]string{"explanation", "architecture", "ddd"}, models.CategoryExplanation},
}

// tagRule adds a tag when any needle occurs in the path (and, for some
// rules, the title). Rules are independent; every match contributes.
type tagRule struct {
	pathNeedles  []string
	titleNeedles []string
	tag          string
}

var tagRules = []tagRule{
	// Audience
	{pathNeedles: []string{"user"}, tag: "user"},
	{pathNeedles: []string{"developer", "dev"}, tag: "developer"},
	{pathNeedles: []string{"admin"}, tag: "admin"},
	// Topic
	{pathNeedles: []string{"nostr"}, titleNeedles: []string{"nostr"}, tag: "nostr"},
	{pathNeedles: []string{"auth"}, titleNeedles: []string{"auth"}, tag: "authentication"},
	{pathNeedles: []string{"message", "dm"}, tag: "messaging"},
	{pathNeedles: []string{"channel", "chat"}, tag: "channels"},
	{pathNeedles: []string{"security"}, titleNeedles: []string{"security"}, tag: "security"},
	{pathNeedles: []string{"deploy"}, tag: "deployment"},
	// Type
	{pathNeedles: []string{"adr"}, tag: "adr"},
	{pathNeedles: []string{"architecture"}, titleNeedles: []string{"architecture"}, tag: "architecture"},
	{pathNeedles: []string{"ddd"}, tag: "ddd"},
	{pathNeedles: []string{"guide"}, titleNeedles: []string{"guide"}, tag: "guide"},
	{pathNeedles: []string{"reference", "api"}, tag: "reference"},
	// Feature
	{pathNeedles: []string{"calendar", "event"}, tag: "calendar"},
	{pathNeedles: []string{"search"}, tag: "search"},
	{pathNeedles: []string{"zone"}, tag: "zones"},
	{pathNeedles: []string{"pwa"}, tag: "pwa"},
}

// Resolve returns the metadata record for a file. The repository-relative
// path is matched against the curated table first; otherwise all fields
// are inferred from the path and content. Pure function, no side effects.
func Resolve(relPath string, content []byte) models.Record {
	if rec, ok := Curated[relPath]; ok {
		return rec
	}

	text := string(content)

	title := markdown.ExtractTitle(text)
	if title == "" {
		title = titleFromFilename(relPath)
	}

	description := markdown.FirstParagraph(text)
	if description != "" {
		// Cut counts characters, not bytes, so multibyte text is never
		// split mid-rune.
		if runes := []rune(description); len(runes) > maxDescriptionLen {
			description = string(runes[:maxDescriptionLen])
		}
	} else {
		description = title + " documentation"
	}

	return models.Record{
		Title:       title,
		Description: description,
		Category:    inferCategory(relPath),
		Tags:        inferTags(relPath, title),
		Difficulty:  inferDifficulty(relPath),
	}
}

// titleFromFilename derives a title from the base name: separators become
// spaces and each word is capitalized.
func titleFromFilename(relPath string) string {
	base := path.Base(relPath)
	base = strings.TrimSuffix(base, path.Ext(base))
	base = strings.ReplaceAll(base, "-", " ")
	base = strings.ReplaceAll(base, "_", " ")

	words := strings.Fields(base)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

func inferCategory(relPath string) string {
	p := strings.ToLower(relPath)

	for _, rule := range categoryRules {
		for _, needle := range rule.needles {
			if strings.Contains(p, needle) {
				return rule.category
			}
		}
	}

	// Audience-based fallback.
	if strings.Contains(p, "user") {
		return models.CategoryTutorial
	}
	if strings.Contains(p, "developer") {
		return models.CategoryReference
	}

	return models.CategoryReference
}

// inferTags unions all matching tag rules and guarantees at least two
// tags. The augmentation order matters: the empty check runs before the
// size-one check, so a single rule hit is always paired with "guide".
func inferTags(relPath, title string) []string {
	p := strings.ToLower(relPath)
	t := strings.ToLower(title)

	set := make(map[string]struct{})
	for _, rule := range tagRules {
		matched := false
		for _, needle := range rule.pathNeedles {
			if strings.Contains(p, needle) {
				matched = true
				break
			}
		}
		if !matched {
			for _, needle := range rule.titleNeedles {
				if strings.Contains(t, needle) {
					matched = true
					break
				}
			}
		}
		if matched {
			set[rule.tag] = struct{}{}
		}
	}

	if len(set) == 0 {
		set["documentation"] = struct{}{}
	}
	if len(set) == 1 {
		set["guide"] = struct{}{}
	}

	tags := make([]string, 0, len(set))
	for tag := range set {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

func inferDifficulty(relPath string) string {
	p := strings.ToLower(relPath)

	if strings.Contains(p, "user") || strings.Contains(p, "getting-started") {
		return models.DifficultyBeginner
	}
	if strings.Contains(p, "adr") || strings.Contains(p, "architecture") || strings.Contains(p, "ddd") {
		return models.DifficultyAdvanced
	}
	if strings.Contains(p, "developer") {
		return models.DifficultyIntermediate
	}

	return ""
}
