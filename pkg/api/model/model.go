// Package model holds the wire types exchanged with the mail server's
// management API, shared by the REST client and the UI controllers.
package model

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// Page is one page of a listing response: the requested slice of items plus
// the total count across all pages.
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
}

// Principal is a directory account as returned by the management API.
type Principal struct {
	ID          int64    `json:"id"`
	Type        string   `json:"type,omitempty"`
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Quota       uint64   `json:"quota,omitempty"`
	UsedQuota   uint64   `json:"usedQuota,omitempty"`
	Emails      []string `json:"emails,omitempty"`
	MemberOf    []string `json:"memberOf,omitempty"`
}

// Principal type discriminants used by the directory.
const (
	PrincipalIndividual = "individual"
	PrincipalSuperuser  = "superuser"
)

// Algorithm selects the symmetric cipher used for encryption at rest.
type Algorithm int

// Supported algorithms.
const (
	Aes256 Algorithm = iota
	Aes128
)

// wireName is the identifier the management API uses for the algorithm.
func (a Algorithm) wireName() string {
	if a == Aes128 {
		return "Aes128"
	}
	return "Aes256"
}

// FormValue is the identifier used in form field values.
func (a Algorithm) FormValue() string {
	if a == Aes128 {
		return "aes128"
	}
	return "aes256"
}

// AlgorithmFromForm decodes a form field value; ok is false for anything it
// does not recognize.
func AlgorithmFromForm(s string) (Algorithm, bool) {
	switch s {
	case "aes128":
		return Aes128, true
	case "aes256":
		return Aes256, true
	}
	return 0, false
}

// EncryptionMethod distinguishes the two supported encryption schemes.
type EncryptionMethod int

// Supported methods.
const (
	MethodPGP EncryptionMethod = iota
	MethodSMIME
)

// FormValue is the identifier used in form field values.
func (m EncryptionMethod) FormValue() string {
	if m == MethodSMIME {
		return "smime"
	}
	return "pgp"
}

// MethodFromForm decodes a form field value; ok is false for anything it
// does not recognize, including the blank "disabled" choice.
func MethodFromForm(s string) (EncryptionMethod, bool) {
	switch s {
	case "pgp":
		return MethodPGP, true
	case "smime":
		return MethodSMIME, true
	}
	return 0, false
}

// EncryptionParams is the encryption-at-rest configuration of one account: a
// tagged variant that is either disabled, or one of the two methods with its
// cipher and certificate payload.  The zero value is the disabled variant.
type EncryptionParams struct {
	// Enabled selects between the Disabled variant and a method variant.
	Enabled bool
	Method  EncryptionMethod
	Algo    Algorithm
	Certs   string
}

// PGP constructs an enabled OpenPGP configuration.
func PGP(algo Algorithm, certs string) EncryptionParams {
	return EncryptionParams{Enabled: true, Method: MethodPGP, Algo: algo, Certs: certs}
}

// SMIME constructs an enabled S/MIME configuration.
func SMIME(algo Algorithm, certs string) EncryptionParams {
	return EncryptionParams{Enabled: true, Method: MethodSMIME, Algo: algo, Certs: certs}
}

// Disabled constructs the disabled configuration.
func Disabled() EncryptionParams {
	return EncryptionParams{}
}

// encryptionJSON is the externally tagged wire form, ex:
// {"type":"PGP","algo":"Aes256","certs":"..."} or {"type":"Disabled"}.
type encryptionJSON struct {
	Type  string `json:"type"`
	Algo  string `json:"algo,omitempty"`
	Certs string `json:"certs,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (p EncryptionParams) MarshalJSON() ([]byte, error) {
	if !p.Enabled {
		return json.Marshal(encryptionJSON{Type: "Disabled"})
	}
	typ := "PGP"
	if p.Method == MethodSMIME {
		typ = "SMIME"
	}
	return json.Marshal(encryptionJSON{Type: typ, Algo: p.Algo.wireName(), Certs: p.Certs})
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *EncryptionParams) UnmarshalJSON(data []byte) error {
	var wire encryptionJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	switch wire.Type {
	case "Disabled", "":
		*p = Disabled()
		return nil
	case "PGP":
		p.Method = MethodPGP
	case "SMIME":
		p.Method = MethodSMIME
	default:
		return fmt.Errorf("unknown encryption type %q", wire.Type)
	}
	p.Enabled = true
	p.Certs = wire.Certs
	switch wire.Algo {
	case "Aes128":
		p.Algo = Aes128
	case "Aes256", "":
		p.Algo = Aes256
	default:
		return fmt.Errorf("unknown encryption algorithm %q", wire.Algo)
	}
	return nil
}
