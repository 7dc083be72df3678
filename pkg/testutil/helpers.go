// Package testutil provides common utility functions for testing.
package testutil

import "strings"

// ParagraphSeparator splits the paragraphs of a generated clause.
const ParagraphSeparator = "\n\n"

// FindParagraph finds the paragraph that starts with the given label (e.g. "b)").
// Returns the paragraph if found, "" otherwise.
func FindParagraph(text, label string) string {
	for _, p := range strings.Split(text, ParagraphSeparator) {
		if strings.HasPrefix(p, label+" ") {
			return p
		}
	}
	return ""
}

// Labels returns the leading label of every labelled paragraph in order.
func Labels(text string) []string {
	var labels []string
	for _, p := range strings.Split(text, ParagraphSeparator) {
		head, _, found := strings.Cut(p, " ")
		if found && strings.HasSuffix(head, ")") {
			labels = append(labels, head)
		}
	}
	return labels
}
