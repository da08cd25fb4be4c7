package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// asciiFold decomposes accented characters and drops their combining marks,
// so "Sección" becomes "Seccion".
var asciiFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// parameterize lowercases s, folds it to ASCII and collapses every run of
// non-alphanumeric characters into a single hyphen.
func parameterize(s string) string {
	folded, _, err := transform.String(asciiFold, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// FriendlyURL derives the public slug for a document from its display name
// (name or issue identifier) and publication number. Each part is
// parameterized with its internal hyphens stripped, then the two parts are
// joined by a single hyphen.
func FriendlyURL(displayName, publicationNumber string) string {
	left := strings.ReplaceAll(parameterize(displayName), "-", "")
	right := strings.ReplaceAll(parameterize(publicationNumber), "-", "")
	return left + "-" + right
}

// GenerateFriendlyURL computes the slug for d. Name and issue identifier are
// mutually exclusive on sections; parents carry both and use their name.
func (d *Document) GenerateFriendlyURL() string {
	display := d.Name
	if display == "" {
		display = d.IssueID
	}
	return FriendlyURL(display, d.PublicationNumber)
}
