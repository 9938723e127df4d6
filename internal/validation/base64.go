package validation

import (
	"encoding/base64"
	"strings"

	validation "github.com/jellydator/validation"
)

// DecodeCiphertext decodes a KMS-wrapped value. Surrounding whitespace is ignored so values
// pasted into .env files with a trailing newline still decode.
func DecodeCiphertext(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(strings.TrimSpace(s))
}

// Ciphertext accepts strings that DecodeCiphertext can decode. Empty values are left to Required.
var Ciphertext = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_ciphertext_type", "must be a string")
	}
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := DecodeCiphertext(s); err != nil {
		return validation.NewError("validation_ciphertext", "must be base64-encoded ciphertext")
	}
	return nil
})
