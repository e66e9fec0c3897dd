package utils

import (
	"strings"
	"unicode"
)

// ToSnakeCase converts CamelCase or camelCase to snake_case. Runs of capitals
// are treated as one word, so "authorID" becomes "author_id".
func ToSnakeCase(s string) string {
	if s == "" {
		return s
	}

	runes := []rune(s)
	var result strings.Builder
	result.Grow(len(s) + 5)

	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					result.WriteRune('_')
				}
			}
			result.WriteRune(unicode.ToLower(r))
			continue
		}
		result.WriteRune(r)
	}

	return result.String()
}

// ToPascalCase converts snake_case or camelCase to PascalCase
func ToPascalCase(s string) string {
	if s == "" {
		return s
	}

	var result strings.Builder
	for _, part := range strings.Split(s, "_") {
		if part == "" {
			continue
		}
		runes := []rune(part)
		result.WriteRune(unicode.ToUpper(runes[0]))
		result.WriteString(string(runes[1:]))
	}
	return result.String()
}

// Pluralize adds a plural suffix using simple English rules
func Pluralize(word string) string {
	if word == "" {
		return word
	}

	word = strings.ToLower(word)

	switch {
	case strings.HasSuffix(word, "s"), strings.HasSuffix(word, "x"),
		strings.HasSuffix(word, "z"), strings.HasSuffix(word, "ch"),
		strings.HasSuffix(word, "sh"):
		return word + "es"
	case strings.HasSuffix(word, "y") && len(word) > 1 && !isVowel(rune(word[len(word)-2])):
		return word[:len(word)-1] + "ies"
	case strings.HasSuffix(word, "fe"):
		return word[:len(word)-2] + "ves"
	case strings.HasSuffix(word, "f"):
		return word[:len(word)-1] + "ves"
	}

	return word + "s"
}

// Singularize reverses the rules applied by Pluralize
func Singularize(word string) string {
	word = strings.ToLower(word)

	switch {
	case strings.HasSuffix(word, "ies") && len(word) > 3:
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(word, "ves") && len(word) > 3:
		return word[:len(word)-3] + "f"
	case strings.HasSuffix(word, "ches"), strings.HasSuffix(word, "shes"),
		strings.HasSuffix(word, "xes"), strings.HasSuffix(word, "zes"),
		strings.HasSuffix(word, "sses"):
		return word[:len(word)-2]
	case strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss"):
		return word[:len(word)-1]
	}

	return word
}

// TableName derives the default table name of a model: snake_case, plural.
func TableName(modelName string) string {
	return Pluralize(ToSnakeCase(modelName))
}

// ForeignKey derives the default foreign key column referencing a model.
func ForeignKey(modelName string) string {
	return ToSnakeCase(modelName) + "_id"
}

func isVowel(r rune) bool {
	switch unicode.ToLower(r) {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	default:
		return false
	}
}
