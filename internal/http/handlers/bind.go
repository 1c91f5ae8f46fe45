package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/geocoder89/mocktail/internal/actions"
	"github.com/geocoder89/mocktail/internal/domain/role"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message,omitempty"`
}

func BindJSON(ctx *gin.Context, out interface{}) bool {
	err := ctx.ShouldBindJSON(out)

	if err != nil {
		RespondBadRequest(ctx, "Invalid request body", parseBindError(err, out))

		return false
	}

	return true
}

// bindForAction decodes a mutation body. A caller who could not perform the
// action anyway gets the uniform 401 instead of details about a bad body.
func bindForAction(ctx *gin.Context, out interface{}, allowed func(role.Role) bool) bool {
	err := ctx.ShouldBindJSON(out)
	if err == nil {
		return true
	}

	if !actions.Authorized(ctx.Request.Context(), allowed) {
		RespondResult(ctx, 0, actions.Unauthorized[struct{}]())
		return false
	}

	RespondBadRequest(ctx, "Invalid request body", parseBindError(err, out))

	return false
}

// parseBindError turns a decode or binding failure into response details.
// Request bodies here are flat structs, so field names map one level deep.
func parseBindError(err error, out interface{}) interface{} {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		rootType := baseStructType(out)
		fields := make([]FieldError, 0, len(validationErrs))

		for _, fe := range validationErrs {
			fields = append(fields, FieldError{
				Field:   jsonFieldName(rootType, fe),
				Rule:    fe.Tag(),
				Param:   fe.Param(),
				Message: actions.RuleMessage(fe.Tag(), fe.Param()),
			})
		}
		return gin.H{"fields": fields}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return gin.H{"json": "invalid_json_syntax"}
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := strings.TrimSpace(typeErr.Field)

		return gin.H{
			"json":  "invalid_json_type",
			"field": field,
			"fields": []FieldError{{
				Field:   field,
				Rule:    "type",
				Message: fmt.Sprintf("must be of type %s", typeErr.Type.String()),
			}},
		}
	}

	return gin.H{"reason": err.Error()}
}

func baseStructType(v interface{}) reflect.Type {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t != nil && t.Kind() == reflect.Struct {
		return t
	}
	return nil
}

// jsonFieldName reports the json key of the failing field.
func jsonFieldName(rootType reflect.Type, fe validator.FieldError) string {
	if rootType == nil {
		return fe.Field()
	}

	sf, ok := rootType.FieldByName(fe.StructField())
	if !ok {
		return fe.Field()
	}

	name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return sf.Name
	}
	return name
}
