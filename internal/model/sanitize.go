package model

import (
	"regexp"
	"strings"
)

var (
	// tagRe matches an XML-like markup tag: "<", optional "/", an identifier
	// start, then anything up to the closing ">".
	tagRe        = regexp.MustCompile(`</?[A-Za-z_][^>]*>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	newlineRe    = regexp.MustCompile(`\r\n|\r|\n`)
)

// Strip removes markup tags, collapses whitespace runs to one space and trims.
func Strip(text string) string {
	if text == "" {
		return ""
	}
	// Removing one tag can join the halves of another ("<<b>b>"), so repeat
	// until nothing matches.
	for tagRe.MatchString(text) {
		text = tagRe.ReplaceAllString(text, "")
	}
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Clean applies Strip, then folds line breaks and double spaces.
func Clean(text string) string {
	text = Strip(text)
	text = newlineRe.ReplaceAllString(text, " ")
	for strings.Contains(text, "  ") {
		text = strings.ReplaceAll(text, "  ", " ")
	}
	return strings.TrimSpace(text)
}
