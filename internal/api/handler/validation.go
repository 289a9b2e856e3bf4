package handler

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/leandrovr13/onfly/internal/api/middleware"
	"github.com/leandrovr13/onfly/pkg/response"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(fieldName)
	}
}

// fieldName reports validation errors under the wire name of the field
func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return fld.Name
}

// respondBindError answers a failed ShouldBind*: 413 for oversized bodies,
// 422 naming the first invalid field, 400 for malformed payloads
func respondBindError(c *gin.Context, err error) {
	if middleware.IsBodyTooLarge(err) {
		response.Error(c, http.StatusRequestEntityTooLarge, codeBodyTooLarge, "request body too large")
		return
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		response.Unprocessable(c, codeParamInvalid, validationMessage(fe), fe.Field())
		return
	}

	response.BadRequest(c, codeParamInvalid, "malformed request")
}

func validationMessage(fe validator.FieldError) string {
	field := strings.ReplaceAll(fe.Field(), "_", " ")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("the %s field is required", field)
	case "email":
		return fmt.Sprintf("the %s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("the %s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("the %s must not be greater than %s", field, fe.Param())
	case "eqfield":
		return fmt.Sprintf("the %s does not match", field)
	case "uuid":
		return fmt.Sprintf("the %s must be a valid UUID", field)
	default:
		return fmt.Sprintf("the %s is invalid", field)
	}
}
