package messaging

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ReplyPrefix is prepended verbatim to the subject of a reply. Replying to a
// reply stacks prefixes ("Re: Re: ...").
const ReplyPrefix = "Re: "

// ComposeInput holds the fields of the compose form.
type ComposeInput struct {
	RecipientID string `validate:"notblank"`
	Subject     string `validate:"notblank"`
	Content     string `validate:"notblank"`
}

// ValidationError lists the compose fields that were missing or blank.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := registerNotBlank(v); err != nil {
		panic(fmt.Sprintf("messaging: register validators: %v", err))
	}
	return v
}

func registerNotBlank(v *validator.Validate) error {
	return v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// Validate checks that recipient, subject and content are all present.
func (in ComposeInput) Validate() error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := &ValidationError{}
	for _, fe := range fieldErrs {
		out.Fields = append(out.Fields, fieldName(fe.Field()))
	}
	return out
}

func fieldName(structField string) string {
	switch structField {
	case "RecipientID":
		return "recipient_id"
	default:
		return strings.ToLower(structField)
	}
}

// ReplyInput builds the compose input for answering original.
func ReplyInput(originalSenderID, originalSubject, content string) ComposeInput {
	return ComposeInput{
		RecipientID: originalSenderID,
		Subject:     ReplyPrefix + originalSubject,
		Content:     content,
	}
}
