package entity

import (
	"encoding/json"

	"login-agent/internal/domain/scrapeerr"
)

// Secret is a string that redacts itself when printed or marshalled, so a
// password can travel through config and log plumbing without leaking.
type Secret string

// String implements fmt.Stringer to redact the secret.
func (s Secret) String() string {
	if s == "" {
		return ""
	}
	return "***"
}

// MarshalJSON prevents secrets from reaching JSON logs.
func (s Secret) MarshalJSON() ([]byte, error) {
	if s == "" {
		return json.Marshal("")
	}
	return json.Marshal("***")
}

// Credentials is the immutable email/secret pair for one host account.
// Construct with NewCredentials; a zero value is not valid.
type Credentials struct {
	Email  string
	Secret Secret
}

// NewCredentials validates both fields and rejects blank input with a
// ValidationError naming the offending field.
func NewCredentials(email, secret string) (Credentials, error) {
	if err := scrapeerr.FailIfBlank("email", email); err != nil {
		return Credentials{}, err
	}
	if err := scrapeerr.FailIfBlank("secret", secret); err != nil {
		return Credentials{}, err
	}
	return Credentials{Email: email, Secret: Secret(secret)}, nil
}
