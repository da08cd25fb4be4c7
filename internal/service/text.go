package service

import (
	"regexp"
	"strings"
)

// CleanText strips any leading run of non-alphabetic characters from raw OCR
// text. Blank input comes back unchanged; input with no letters at all is
// consumed down to whatever blank tail remains.
func CleanText(text string) string {
	for text != "" && strings.TrimSpace(text) != "" && !isASCIILetter(text[0]) {
		text = text[1:]
	}
	return text
}

func isASCIILetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// IsWordInText reports whether word appears in text as a whole word,
// case-insensitively. "ENA" must not match inside "ENAG".
func IsWordInText(word, text string) bool {
	if strings.TrimSpace(word) == "" {
		return false
	}
	pattern := `\b` + regexp.QuoteMeta(strings.ToLower(word)) + `\b`
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(strings.ToLower(text))
}
