package cschema

import (
	"embed"

	"github.com/kaptinlin/go-i18n"
)

//go:embed locales/*.json
var localesFS embed.FS

// I18n returns an initialized internationalization bundle with embedded
// locales for match-error messages. Grounded on the teacher's GetI18n
// (i18n.go), the same bundle-plus-embedded-FS pattern, carrying the ambient
// localization stack forward even though spec.md never asks for it — see
// SPEC_FULL.md §A.
func I18n() (*i18n.I18n, error) {
	bundle := i18n.NewBundle(
		i18n.WithDefaultLocale("en"),
		i18n.WithLocales("en", "zh-Hans"),
	)
	if err := bundle.LoadFS(localesFS, "locales/*.json"); err != nil {
		return nil, err
	}
	return bundle, nil
}

// Localize renders e's message through localizer using e.Code and e.Params,
// falling back to the English Message built at construction time when
// localizer is nil or e.Code is empty (a composite node such as "allOf:
// schema[i] fails" carries no Code of its own — its Nested child does).
// Grounded on the teacher's EvaluationError.Localize (result.go).
func (e *MatchError) Localize(localizer *i18n.Localizer) string {
	if localizer == nil || e.Code == "" {
		return e.Message
	}
	return localizer.Get(e.Code, i18n.Vars(e.Params))
}
