package report

import (
	"fmt"
	"strings"
	"unicode"
)

const abbreviateThreshold = 3

// FormatCaseList renders case names for humans. Names that start with the
// sum type's own display name plus "." lose that prefix. More than three
// names are abbreviated to the first three and ", and N more".
func FormatCaseList(sumName string, caseNames []string) string {
	prefix := sumName + "."
	short := make([]string, 0, min(len(caseNames), abbreviateThreshold))
	for i, name := range caseNames {
		if i == abbreviateThreshold {
			break
		}
		short = append(short, strings.TrimPrefix(name, prefix))
	}
	out := strings.Join(short, ", ")
	if extra := len(caseNames) - abbreviateThreshold; extra > 0 {
		out += fmt.Sprintf(", and %d more", extra)
	}
	return out
}

// ToCamelCase lowercases the leading run of capitals: "Circle" -> "circle",
// "HTTPRequest" -> "httpRequest", "ABC" -> "abc".
func ToCamelCase(s string) string {
	runes := []rune(s)
	if len(runes) == 0 || !unicode.IsUpper(runes[0]) {
		return s
	}
	for i := range runes {
		if i == 1 && !unicode.IsUpper(runes[i]) {
			break
		}
		hasNext := i+1 < len(runes)
		if i > 0 && hasNext && !unicode.IsUpper(runes[i+1]) {
			if runes[i+1] == ' ' {
				runes[i] = unicode.ToLower(runes[i])
			}
			break
		}
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}
