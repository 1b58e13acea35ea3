package fields

import (
	"bytes"
	"fmt"
	"strconv"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/goliatone/go-admin/internal/jsonutil"
	"github.com/goliatone/go-admin/pkg/adminerrors"
)

var (
	markdownOnce   sync.Once
	markdownEngine goldmark.Markdown
	markdownPolicy *bluemonday.Policy
)

func markdownRenderer() (goldmark.Markdown, *bluemonday.Policy) {
	markdownOnce.Do(func() {
		markdownEngine = goldmark.New(goldmark.WithExtensions(extension.GFM))
		markdownPolicy = bluemonday.UGCPolicy()
	})
	return markdownEngine, markdownPolicy
}

// RenderMarkdown converts source to HTML and strips anything outside the
// user generated content policy.
func RenderMarkdown(source string) (string, error) {
	engine, policy := markdownRenderer()
	var buf bytes.Buffer
	if err := engine.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("fields: render markdown: %w", err)
	}
	return string(policy.SanitizeBytes(buf.Bytes())), nil
}

func defaultRenderer(kind Kind, optional bool, choices []Choice) RenderFunc {
	return func(value any) (string, error) {
		if value == nil {
			if optional {
				return "", nil
			}
			return "", renderError(kind, value)
		}

		switch kind {
		case KindBoolean:
			b, ok := value.(bool)
			if !ok {
				return "", renderError(kind, value)
			}
			return strconv.FormatBool(b), nil
		case KindNumber:
			return renderNumber(value)
		case KindMarkdown:
			text, ok := value.(string)
			if !ok {
				return "", renderError(kind, value)
			}
			html, err := RenderMarkdown(text)
			if err != nil {
				return "", adminerrors.Internal(err, "markdown render failed").
					WithTextCode(adminerrors.TextCodeFieldRenderFailed)
			}
			return html, nil
		case KindSelect:
			text, ok := value.(string)
			if !ok {
				return "", renderError(kind, value)
			}
			for _, choice := range choices {
				if choice.Value == text {
					return choice.Label, nil
				}
			}
			return text, nil
		default:
			text, ok := value.(string)
			if !ok {
				return "", renderError(kind, value)
			}
			return text, nil
		}
	}
}

func renderNumber(value any) (string, error) {
	number, ok := jsonutil.Number(value)
	if !ok {
		return "", renderError(KindNumber, value)
	}
	canonical, err := ParseNumber(number.String())
	if err != nil {
		return "", renderError(KindNumber, value)
	}
	return canonical.String(), nil
}

func renderError(kind Kind, value any) error {
	return adminerrors.Internalf(adminerrors.TextCodeFieldRenderFailed,
		"cannot render %T as %s", value, kind)
}
