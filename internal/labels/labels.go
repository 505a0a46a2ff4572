package labels

import (
	"strconv"
	"strings"
	"unicode"
)

// dictionary carries idiomatic overrides for field names whose mechanical
// title-casing reads poorly.
var dictionary = map[string]string{
	"url":         "Website URL",
	"email":       "Email Address",
	"cta":         "Call to Action",
	"seo":         "SEO",
	"id":          "ID",
	"imageUrl":    "Image URL",
	"phoneNumber": "Phone Number",
}

// Resolve maps an internal field path to a human-readable label. Grouping
// prefixes ("list." segments and bare integer indices) are stripped, the
// terminal segment is split on CamelCase boundaries, and each word is
// title-cased. A curated dictionary supplies idiomatic overrides. Pure
// function: no side effects, no I/O.
func Resolve(path string) string {
	terminal := terminalSegment(path)
	if terminal == "" {
		return ""
	}
	if label, ok := dictionary[terminal]; ok {
		return label
	}
	words := splitCamelCase(terminal)
	for i, word := range words {
		words[i] = titleCase(word)
	}
	return strings.Join(words, " ")
}

func terminalSegment(path string) string {
	segments := strings.Split(path, ".")
	for i := len(segments) - 1; i >= 0; i-- {
		segment := strings.TrimSpace(segments[i])
		if segment == "" || segment == "list" {
			continue
		}
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		return segment
	}
	return ""
}

func splitCamelCase(name string) []string {
	var words []string
	var current strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 && !unicode.IsUpper(runes[i-1]) {
			words = append(words, current.String())
			current.Reset()
		}
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}
	return words
}

func titleCase(word string) string {
	if word == "" {
		return word
	}
	runes := []rune(word)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
