// Package settings defines the console's form schemas and the mappers that
// convert between API wire types and form data.
package settings

import (
	"sync"

	"github.com/mailcove/admin/pkg/api/model"
	"github.com/mailcove/admin/pkg/forms"
)

// CryptoAtRest names the encryption-at-rest settings schema.
const CryptoAtRest = "crypto-at-rest"

// Field names within the crypto-at-rest schema.
const (
	FieldType     = "type"
	FieldAlgo     = "algo"
	FieldCerts    = "certs"
	FieldPassword = "password"
)

var (
	schemasOnce sync.Once
	schemas     *forms.Schemas
)

// Schemas returns the console's schema registry, built on first use and
// read-only thereafter.
func Schemas() *forms.Schemas {
	schemasOnce.Do(func() {
		schemas = register(forms.Build()).Schemas()
	})
	return schemas
}

func register(b *forms.Builder) *forms.Builder {
	methodValues := []string{
		model.MethodPGP.FormValue(),
		model.MethodSMIME.FormValue(),
	}
	return b.
		NewSchema(CryptoAtRest).
		NewField(FieldType).
		Label("Encryption type").
		Help("Whether to use OpenPGP or S/MIME for encryption.").
		Options(
			forms.Option{Value: model.MethodPGP.FormValue(), Label: "OpenPGP"},
			forms.Option{Value: model.MethodSMIME.FormValue(), Label: "S/MIME"},
			forms.Option{Value: "", Label: "Disabled"},
		).
		Default("").
		Build().
		NewField(FieldAlgo).
		Label("Algorithm").
		Help("The encryption algorithm to use.").
		Options(
			forms.Option{Value: model.Aes128.FormValue(), Label: "AES-128"},
			forms.Option{Value: model.Aes256.FormValue(), Label: "AES-256"},
		).
		Default(model.Aes256.FormValue()).
		DisplayIf(FieldType, methodValues...).
		Build().
		NewField(FieldCerts).
		Type(forms.TypeTextarea).
		Label("Certificates").
		Help("The armored OpenPGP certificate or S/MIME certificate in PEM format.").
		Check(forms.Required{}).
		DisplayIf(FieldType, methodValues...).
		Build().
		NewField(FieldPassword).
		Type(forms.TypeSecret).
		Label("Current Password").
		// Required on every path, including disable: turning encryption off
		// needs re-authentication just like turning it on.
		Check(forms.Required{}).
		Build().
		Build()
}

// FlattenCrypto writes an encryption configuration into form data.  The
// disabled variant blanks the discriminant and leaves the dependent fields
// untouched; the display conditions hide them.
func FlattenCrypto(p model.EncryptionParams, d *forms.FormData) {
	if !p.Enabled {
		d.Set(FieldType, "")
		return
	}
	d.Set(FieldType, p.Method.FormValue())
	d.Set(FieldAlgo, p.Algo.FormValue())
	d.Set(FieldCerts, p.Certs)
}

// UnflattenCrypto validates the form and reads it back into an encryption
// configuration.  ok is false when validation failed and the error map holds
// the details.  A blank or unrecognized discriminant yields the disabled
// variant; that is the selector's empty choice, not an error.
func UnflattenCrypto(d *forms.FormData) (p model.EncryptionParams, ok bool) {
	if !d.Validate() {
		return model.EncryptionParams{}, false
	}
	typ, _ := d.Value(FieldType)
	method, enabled := model.MethodFromForm(typ)
	if !enabled {
		return model.Disabled(), true
	}
	rawAlgo, _ := d.Value(FieldAlgo)
	algo, algoOK := model.AlgorithmFromForm(rawAlgo)
	if !algoOK {
		// Unset select falls back to the schema default.
		algo, _ = model.AlgorithmFromForm(d.Schema().Field(FieldAlgo).Default)
	}
	certs, _ := d.Value(FieldCerts)
	if method == model.MethodSMIME {
		return model.SMIME(algo, certs), true
	}
	return model.PGP(algo, certs), true
}

// Password returns the re-authentication password entered into the form.
// Only meaningful after a successful UnflattenCrypto.
func Password(d *forms.FormData) string {
	v, _ := d.Value(FieldPassword)
	return v
}
