package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/dmitrijs2005/worklog/internal/common"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("datekey", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(common.DateKeyLayout, fl.Field().String())
		return err == nil
	})
	// report json names instead of Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Validator is implemented by every request message.
type Validator interface {
	Validate() error
}

// Validate checks req against its struct tags. Failures are returned as
// common.ValidationError.
func Validate(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, describe(fe))
	}
	return common.NewValidationError(strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "uuid":
		return fmt.Sprintf("%s must be a UUID", fe.Field())
	case "datekey":
		return fmt.Sprintf("%s must be a DD-MM-YYYY date", fe.Field())
	case "min", "max", "gte", "lte":
		return fmt.Sprintf("%s violates %s=%s", fe.Field(), fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

func (r *PingRequest) Validate() error           { return nil }
func (r *RegisterRequest) Validate() error       { return Validate(r) }
func (r *LoginRequest) Validate() error          { return Validate(r) }
func (r *RefreshTokenRequest) Validate() error   { return Validate(r) }
func (r *LogoutRequest) Validate() error         { return Validate(r) }
func (r *ProfileRequest) Validate() error        { return nil }
func (r *CreateTaskRequest) Validate() error     { return Validate(r) }
func (r *ListTasksRequest) Validate() error      { return nil }
func (r *ToggleTaskRequest) Validate() error     { return Validate(r) }
func (r *CountTasksRequest) Validate() error     { return nil }
func (r *AppendLogRequest) Validate() error      { return Validate(r) }
func (r *ListLogsRequest) Validate() error       { return nil }
func (r *ExportLogsRequest) Validate() error     { return nil }
func (r *ListActivitiesRequest) Validate() error { return Validate(r) }
