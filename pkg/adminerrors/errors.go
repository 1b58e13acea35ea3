// Package adminerrors defines the two error kinds surfaced by the admin
// registry: NotFound and Internal. Both are go-errors values so callers can
// inspect text codes and metadata, and so HTTP layers can map them to status
// codes without knowing about concrete resources.
package adminerrors

import (
	"fmt"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to admin errors.
const (
	TextCodeResourceNotFound   = "RESOURCE_NOT_FOUND"
	TextCodeItemNotFound       = "ITEM_NOT_FOUND"
	TextCodeIDParseFailed      = "ID_PARSE_FAILED"
	TextCodeItemEncodeFailed   = "ITEM_ENCODE_FAILED"
	TextCodeItemNotObject      = "ITEM_NOT_OBJECT"
	TextCodeFormDecodeFailed   = "FORM_DECODE_FAILED"
	TextCodeFieldRequired      = "FIELD_REQUIRED"
	TextCodeFieldDecodeFailed  = "FIELD_DECODE_FAILED"
	TextCodeFieldInvalid       = "FIELD_INVALID"
	TextCodeFieldMissing       = "FIELD_MISSING"
	TextCodeFieldRenderFailed  = "FIELD_RENDER_FAILED"
	TextCodeInputDecodeFailed  = "INPUT_DECODE_FAILED"
	TextCodeInputSchemaInvalid = "INPUT_SCHEMA_INVALID"
	TextCodeCollaboratorFailed = "COLLABORATOR_FAILED"
	TextCodeStoreFailed        = "STORE_FAILED"
)

// ErrorKind classifies any error into one of the two admin kinds.
type ErrorKind string

const (
	KindNotFound ErrorKind = "not_found"
	KindInternal ErrorKind = "internal"
)

// NotFound reports that key could not be located within resource. An empty
// key means the resource itself is missing.
func NotFound(resource, key string) *goerrors.Error {
	resource = strings.TrimSpace(resource)
	key = strings.TrimSpace(key)

	textCode := TextCodeItemNotFound
	message := fmt.Sprintf("%s %q not found", resourceLabel(resource), key)
	if key == "" {
		textCode = TextCodeResourceNotFound
		message = fmt.Sprintf("resource %q not found", resource)
	}

	return goerrors.New(message, goerrors.CategoryNotFound).
		WithCode(goerrors.CodeNotFound).
		WithTextCode(textCode).
		WithMetadata(map[string]any{
			"resource": resource,
			"key":      key,
		})
}

// Internal wraps source as an internal failure. A nil source is allowed and
// yields a standalone error. Unlike goerrors.Wrap the category is always
// internal, even when source already carries another category.
func Internal(source error, message string) *goerrors.Error {
	err := goerrors.New(message, goerrors.CategoryInternal).
		WithCode(goerrors.CodeInternal)
	err.Source = source
	return err
}

// Internalf builds an internal error with a formatted message and a text code.
func Internalf(textCode, format string, args ...any) *goerrors.Error {
	return Internal(nil, fmt.Sprintf(format, args...)).WithTextCode(textCode)
}

// FromCollaborator classifies an error returned by an application callback.
// Not-found errors pass through untouched, everything else becomes Internal
// with the original error kept as source.
func FromCollaborator(err error, resource, operation string) error {
	if err == nil {
		return nil
	}
	if IsNotFound(err) {
		return err
	}
	if IsInternal(err) {
		return err
	}
	return Internal(err, fmt.Sprintf("%s: %s failed", resourceLabel(resource), operation)).
		WithTextCode(TextCodeCollaboratorFailed).
		WithMetadata(map[string]any{
			"resource":  resource,
			"operation": operation,
		})
}

// IsNotFound reports whether err is an admin NotFound error.
func IsNotFound(err error) bool {
	return goerrors.IsCategory(err, goerrors.CategoryNotFound)
}

// IsInternal reports whether err carries the internal category.
func IsInternal(err error) bool {
	return goerrors.IsCategory(err, goerrors.CategoryInternal)
}

// Kind classifies err. Any error that is not a NotFound is Internal.
func Kind(err error) ErrorKind {
	if IsNotFound(err) {
		return KindNotFound
	}
	return KindInternal
}

// StatusCode maps err to the HTTP status a transport should answer with.
func StatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if IsNotFound(err) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// TextCode returns the text code of the outermost go-errors value in err.
func TextCode(err error) string {
	var e *goerrors.Error
	if goerrors.As(err, &e) {
		return e.TextCode
	}
	return ""
}

// Metadata returns a copy of the metadata attached to err.
func Metadata(err error) map[string]any {
	var e *goerrors.Error
	if !goerrors.As(err, &e) || len(e.Metadata) == 0 {
		return nil
	}
	out := make(map[string]any, len(e.Metadata))
	for k, v := range e.Metadata {
		out[k] = v
	}
	return out
}

func resourceLabel(resource string) string {
	if resource == "" {
		return "item"
	}
	return resource
}
