package registry

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/jmylchreest/themeregistry/internal/theme"
)

// ValidationResult holds manifest problems split by severity.
type ValidationResult struct {
	Items    int
	Themes   int
	UI       int
	Errors   []string
	Warnings []string
}

// OK reports whether validation found no errors.
func (r *ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

// ValidateManifest checks item fields, duplicate names, types and source
// resolution. Theme sources are also linted.
func ValidateManifest(m *Manifest, resolver Resolver) *ValidationResult {
	result := &ValidationResult{Items: len(m.Items)}

	if len(m.Items) == 0 {
		result.Warnings = append(result.Warnings, "no items in manifest")
	}

	seen := make(map[string]int, len(m.Items))
	for i, item := range m.Items {
		label := item.Name
		if label == "" {
			label = fmt.Sprintf("items[%d]", i)
		}

		if err := item.Validate(); err != nil {
			result.Errors = append(result.Errors, describeValidation(label, err)...)
		}

		if prev, dup := seen[item.Name]; dup && item.Name != "" {
			result.Errors = append(result.Errors, fmt.Sprintf("item '%s': duplicate name (also items[%d])", label, prev))
		} else {
			seen[item.Name] = i
		}

		switch item.Type {
		case TypeTheme:
			result.Themes++
		case TypeUI:
			result.UI++
		}

		if item.Title == "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("item '%s': title is empty", label))
		}
		if item.Description == "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("item '%s': description is empty", label))
		}

		src, err := resolver.Resolve(item)
		if err != nil {
			if errors.Is(err, ErrUnsupportedType) {
				result.Warnings = append(result.Warnings, fmt.Sprintf("item '%s': unsupported type '%s' (will be skipped)", label, item.Type))
			} else {
				result.Errors = append(result.Errors, fmt.Sprintf("item '%s': %v", label, err))
			}
			continue
		}

		if _, err := os.Stat(src); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("item '%s': source %s not found", label, src))
			continue
		}

		if item.Type == TypeTheme {
			def, err := theme.Load(src)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("item '%s': %v", label, err))
				continue
			}
			for _, f := range theme.Lint(def) {
				msg := fmt.Sprintf("item '%s': %s", label, f)
				if f.Severity == theme.SeverityError {
					result.Errors = append(result.Errors, msg)
				} else {
					result.Warnings = append(result.Warnings, msg)
				}
			}
		}
	}

	return result
}

func describeValidation(label string, err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{fmt.Sprintf("item '%s': %v", label, err)}
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("item '%s': %s is required", label, fe.Field()))
		case "item_name":
			msgs = append(msgs, fmt.Sprintf("item '%s': name must be letters, digits, '.', '_' or '-'", label))
		default:
			msgs = append(msgs, fmt.Sprintf("item '%s': %s failed '%s'", label, fe.Field(), fe.Tag()))
		}
	}
	return msgs
}
