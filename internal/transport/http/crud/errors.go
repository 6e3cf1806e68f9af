package crud

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/light-bringer/product-catalog/internal/pkg/decimalx"
)

// Error codes used in the error envelope.
const (
	CodeBadRequest   = "bad_request"
	CodeUnauthorized = "unauthorized"
	CodeForbidden    = "forbidden"
	CodeNotFound     = "not_found"
	CodeValidation   = "validation_failed"
	CodeConflict     = "conflict"
	CodeBadGateway   = "bad_gateway"
	CodeInternal     = "internal"
)

// ErrUnauthenticated is returned by a policy when the caller must log in.
var ErrUnauthenticated = errors.New("authentication required")

// Detail names one invalid field.
type Detail struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Error is an HTTP error rendered as {"error", "message", "details"}.
type Error struct {
	Status  int      `json:"-"`
	Code    string   `json:"error"`
	Message string   `json:"message"`
	Details []Detail `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
}

// NewError creates an Error.
func NewError(status int, code, message string, details ...Detail) *Error {
	return &Error{Status: status, Code: code, Message: message, Details: details}
}

func Unauthorized() *Error {
	return NewError(http.StatusUnauthorized, CodeUnauthorized, "authentication required")
}

func NotFound(message string) *Error {
	return NewError(http.StatusNotFound, CodeNotFound, message)
}

func Validation(message string, details ...Detail) *Error {
	return NewError(http.StatusUnprocessableEntity, CodeValidation, message, details...)
}

func Internal() *Error {
	return NewError(http.StatusInternalServerError, CodeInternal, "internal server error")
}

// WriteError aborts the request with e.
func WriteError(c *gin.Context, e *Error) {
	c.AbortWithStatusJSON(e.Status, e)
}

// BindError translates a request decoding failure. Malformed JSON is a 400;
// a body that decodes but breaks a field rule is a 422 naming the fields.
func BindError(err error) *Error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]Detail, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, Detail{Field: fieldPath(fe), Reason: reason(fe)})
		}
		return Validation("request validation failed", details...)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return Validation("request validation failed", Detail{
			Field:  field,
			Reason: "must be of type " + typeErr.Type.String(),
		})
	}

	if errors.Is(err, decimalx.ErrNotDecimal) {
		return Validation("request validation failed", Detail{Field: "body", Reason: err.Error()})
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return NewError(http.StatusBadRequest, CodeBadRequest, "malformed JSON body")
	}
	return NewError(http.StatusBadRequest, CodeBadRequest, err.Error())
}

var registerNames sync.Once

// useJSONFieldNames makes validation errors report JSON field names.
func useJSONFieldNames() {
	registerNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
}

// fieldPath drops the struct name from the namespace: "bundles[0].order".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "url", "http_url":
		return "must be an absolute URL"
	case "uuid", "uuid4":
		return "must be a UUID"
	case "len":
		return "must have length " + fe.Param()
	case "gte", "min":
		return "must be at least " + fe.Param()
	case "lte", "max":
		return "must be at most " + fe.Param()
	default:
		return "failed rule " + fe.Tag()
	}
}
