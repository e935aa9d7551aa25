package substitute

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tyemirov/create-lynx-app/internal/scaffold/manifest"
	"github.com/tyemirov/create-lynx-app/internal/scaffold/naming"
	"github.com/tyemirov/create-lynx-app/internal/scaffold/shared"
)

const (
	manifestNameFieldPatternTemplate = `("name"\s*:\s*)"(?:%s|%s)"`
	exampleNamespacePrefixConstant   = "com.example."
	themeNamespacePrefixConstant     = "Theme."
	namespaceSeparatorConstant       = "."
	pendingOpenConstant              = "\uE000"
	pendingCloseConstant             = "\uE001"
	pendingPascalConstant            = pendingOpenConstant + "pascal" + pendingCloseConstant
	pendingPackageConstant           = pendingOpenConstant + "package" + pendingCloseConstant
	pendingKebabConstant             = pendingOpenConstant + "kebab" + pendingCloseConstant
)

// DefaultRules builds the ordered rule set for a template. Specific namespaced rules precede the bare
// placeholder rules so that each of them can still match. Placeholder rules emit pending markers that
// the trailing rules resolve, so a derived form that contains a placeholder is never rewritten twice.
func DefaultRules(forms naming.IdentifierForms, templateManifest manifest.Manifest) []shared.SubstitutionRule {
	placeholder := regexp.QuoteMeta(templateManifest.Placeholder)
	packagePlaceholder := regexp.QuoteMeta(templateManifest.PackagePlaceholder)
	packageNamespace := templateManifest.PackageParent + namespaceSeparatorConstant + pendingPackageConstant

	rules := make([]shared.SubstitutionRule, 0, 9+len(templateManifest.LegacyNamespaces))
	rules = append(rules, shared.MustSubstitutionRule(
		fmt.Sprintf(manifestNameFieldPatternTemplate, placeholder, packagePlaceholder),
		`${1}"`+pendingKebabConstant+`"`,
	))
	for _, legacyNamespace := range templateManifest.LegacyNamespaces {
		if len(strings.TrimSpace(legacyNamespace)) == 0 {
			continue
		}
		rules = append(rules, shared.MustSubstitutionRule(regexp.QuoteMeta(legacyNamespace), escapeReplacement(packageNamespace)))
	}
	rules = append(rules,
		shared.MustSubstitutionRule(regexp.QuoteMeta(exampleNamespacePrefixConstant)+placeholder, escapeReplacement(exampleNamespacePrefixConstant)+pendingPascalConstant),
		shared.MustSubstitutionRule(regexp.QuoteMeta(themeNamespacePrefixConstant)+placeholder, escapeReplacement(themeNamespacePrefixConstant)+pendingPascalConstant),
		shared.MustSubstitutionRule(regexp.QuoteMeta(templateManifest.PackageParent+namespaceSeparatorConstant)+packagePlaceholder, escapeReplacement(packageNamespace)),
		shared.MustSubstitutionRule(placeholder, pendingPascalConstant),
		shared.MustSubstitutionRule(packagePlaceholder, pendingPackageConstant),
		shared.MustSubstitutionRule(regexp.QuoteMeta(pendingKebabConstant), escapeReplacement(forms.Kebab)),
		shared.MustSubstitutionRule(regexp.QuoteMeta(pendingPascalConstant), escapeReplacement(forms.Pascal)),
		shared.MustSubstitutionRule(regexp.QuoteMeta(pendingPackageConstant), escapeReplacement(forms.Package)),
	)
	return rules
}

// ApplyRules runs every rule in order over content and reports whether any rule matched.
func ApplyRules(content string, rules []shared.SubstitutionRule) (string, bool) {
	dirty := false
	for _, rule := range rules {
		if rule.Pattern == nil || !rule.Pattern.MatchString(content) {
			continue
		}
		content = rule.Pattern.ReplaceAllString(content, rule.Replacement)
		dirty = true
	}
	return content, dirty
}

func escapeReplacement(value string) string {
	return strings.ReplaceAll(value, "$", "$$")
}
