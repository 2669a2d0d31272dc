package req

import (
	"fmt"
	"net/url"
	"reflect"

	"github.com/gorilla/schema"
	"github.com/xy-planning-network/enumerate"
	"github.com/xy-planning-network/enumerate/validate"
	"golang.org/x/text/language"
)

// A Parser decodes and validates request payloads.
type Parser struct {
	queryParamDecoder *schema.Decoder
	validator         *validate.Validator
}

// NewParser constructs a *Parser validating "enum" tags against reg.
// If reg is nil, enumerate.Default is used.
func NewParser(reg *enumerate.Registry) *Parser {
	return &Parser{
		queryParamDecoder: newQueryParamDecoder(),
		validator:         validate.New(reg),
	}
}

// ParseQueryParams decodes into a pointer to a struct the query param data in *http.Request.URL.Query.
// If successful, ParseQueryParams runs validation against the contents,
// returning validate.ValidationErrors, which wrap ErrNotValid, if the data fails validation rules.
//
// Fields of type language.Tag are parsed as BCP 47 language tags.
func (p *Parser) ParseQueryParams(params url.Values, structPtr any) error {
	if err := p.queryParamDecoder.Decode(structPtr, params); err != nil {
		return fmt.Errorf("failed decoding request query params: %w", translateDecoderError(err))
	}

	if err := p.validator.Struct(structPtr); err != nil {
		return fmt.Errorf("%T failed validation: %w", structPtr, err)
	}

	return nil
}

func newQueryParamDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	dec.RegisterConverter(language.Tag{}, func(s string) reflect.Value {
		tag, err := language.Parse(s)
		if err != nil {
			return reflect.Value{}
		}

		return reflect.ValueOf(tag)
	})

	return dec
}
