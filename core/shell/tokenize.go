package shell

import "strings"

// Delimiters holds the characters that separate tokens on a line.
const Delimiters = " \t\r\n\a"

func isDelimiter(r rune) bool {
	return strings.ContainsRune(Delimiters, r)
}

// Tokenize splits line on runs of Delimiters. The returned tokens are
// substrings of line and never empty; a blank line yields no tokens.
func Tokenize(line string) []string {
	return strings.FieldsFunc(line, isDelimiter)
}
