package request

import (
	"errors"
	"strings"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
)

// A person's name needs at least one letter in any script.
const personNameRegexPattern = `^(?=.*\p{L}).+$`

var (
	personNameExp = regexp2.MustCompile(personNameRegexPattern, regexp2.None)

	errNameWithoutLetter = errors.New("must contain at least one letter")
)

func personName(value interface{}) error {
	name, _ := value.(string)
	if name == "" {
		return nil
	}

	ok, err := personNameExp.MatchString(name)
	if err != nil {
		return err
	}
	if !ok {
		return errNameWithoutLetter
	}

	return nil
}

type WorkerRequest struct {
	Name string `json:"name" example:"Anil Kumar"`
}

func (req *WorkerRequest) Validate() error {
	req.Name = strings.TrimSpace(req.Name)

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.RuneLength(2, 100), validation.By(personName)),
	)
}

type ItemRequest struct {
	Name string `json:"name" example:"Detergent 1kg"`
}

func (req *ItemRequest) Validate() error {
	req.Name = strings.TrimSpace(req.Name)

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.RuneLength(1, 100)),
	)
}

type BuyerRequest struct {
	Name    string `json:"name" example:"Ravi Traders"`
	Contact string `json:"contact,omitempty" example:"+91 98450 00000"`
}

func (req *BuyerRequest) Validate() error {
	req.Name = strings.TrimSpace(req.Name)
	req.Contact = strings.TrimSpace(req.Contact)

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.RuneLength(2, 100), validation.By(personName)),
		validation.Field(&req.Contact, validation.RuneLength(0, 100)),
	)
}
