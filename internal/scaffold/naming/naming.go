// Package naming derives the identifier forms a project name takes inside the generated project.
package naming

import (
	"strings"
	"unicode"
)

const (
	// PackageFallbackPrefixConstant prefixes package identifiers that would otherwise be empty.
	PackageFallbackPrefixConstant = "app"
	kebabSeparatorConstant        = "-"
)

// IdentifierForms bundles the identifier renderings of a project name.
type IdentifierForms struct {
	Pascal  string
	Package string
	Kebab   string
}

// Derive computes every identifier form of the name.
func Derive(name string) IdentifierForms {
	return IdentifierForms{
		Pascal:  PascalCase(name),
		Package: PackageIdentifier(name),
		Kebab:   KebabCase(name),
	}
}

// PascalCase splits the name on non-alphanumeric runs, capitalizes the first letter of each word and joins them.
func PascalCase(name string) string {
	words := alphanumericWords(name)
	var builder strings.Builder
	for _, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		builder.WriteString(string(runes))
	}
	return builder.String()
}

// PackageIdentifier lowercases the name, keeps only [a-z0-9], drops leading digits and falls back to a fixed prefix when nothing remains.
func PackageIdentifier(name string) string {
	var builder strings.Builder
	for _, character := range strings.ToLower(name) {
		if isLowerASCIILetter(character) || isASCIIDigit(character) {
			builder.WriteRune(character)
		}
	}

	identifier := strings.TrimLeftFunc(builder.String(), isASCIIDigit)
	if len(identifier) == 0 || !isLowerASCIILetter(rune(identifier[0])) {
		return PackageFallbackPrefixConstant + identifier
	}
	return identifier
}

// KebabCase joins the lowercased alphanumeric words of the name with single hyphens.
func KebabCase(name string) string {
	return strings.ToLower(strings.Join(alphanumericWords(name), kebabSeparatorConstant))
}

func alphanumericWords(name string) []string {
	return strings.FieldsFunc(name, func(character rune) bool {
		return !isASCIILetter(character) && !isASCIIDigit(character)
	})
}

func isASCIILetter(character rune) bool {
	return isLowerASCIILetter(character) || (character >= 'A' && character <= 'Z')
}

func isLowerASCIILetter(character rune) bool {
	return character >= 'a' && character <= 'z'
}

func isASCIIDigit(character rune) bool {
	return character >= '0' && character <= '9'
}
