package webui

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/mailcove/admin/pkg/api/client"
	"github.com/mailcove/admin/pkg/forms"
	"github.com/mailcove/admin/pkg/notify"
	"github.com/mailcove/admin/pkg/server/web"
	"github.com/mailcove/admin/pkg/settings"
)

// JSONFormOption is one choice of a select field.
type JSONFormOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// JSONFormField describes one field of a rendered form: enough for the UI to
// draw the widget without duplicating schema knowledge.
type JSONFormField struct {
	Name    string           `json:"name"`
	Type    string           `json:"type"`
	Label   string           `json:"label,omitempty"`
	Help    string           `json:"help,omitempty"`
	Options []JSONFormOption `json:"options,omitempty"`
	Value   string           `json:"value,omitempty"`
	Visible bool             `json:"visible"`
}

// JSONForm is the form view model served to the UI.
type JSONForm struct {
	Schema string           `json:"schema"`
	Fields []*JSONFormField `json:"fields"`
}

// JSONSubmitResult reports the outcome of a form submission.
type JSONSubmitResult struct {
	Saved  bool              `json:"saved"`
	Alert  *JSONAlert        `json:"alert,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

// CryptoShow fetches the current encryption-at-rest configuration and
// renders the settings form view model.
func CryptoShow(w http.ResponseWriter, req *http.Request, ctx *web.Context) error {
	params, err := ctx.Client.GetCrypto(req.Context(), ctx.Creds)
	if errors.Is(err, client.ErrUnauthorized) {
		// Session expired; the UI must return to login.
		return web.RenderJSONStatus(w, http.StatusUnauthorized, loginRedirect)
	}
	if err != nil {
		log.Warn().Str("module", "webui").Err(err).Msg("Crypto settings fetch failed")
		return web.RenderJSONStatus(w, http.StatusBadGateway, genericFailure)
	}

	data := settings.Schemas().BuildForm(settings.CryptoAtRest)
	settings.FlattenCrypto(params, data)
	return web.RenderJSON(w, formToJSON(data))
}

// CryptoSave validates a submitted encryption-at-rest form and forwards the
// configuration to the management API.
func CryptoSave(w http.ResponseWriter, req *http.Request, ctx *web.Context) error {
	if err := req.ParseForm(); err != nil {
		return web.RenderJSONStatus(w, http.StatusBadRequest, genericFailure)
	}

	// Fresh instance per submission; Set ignores keys outside the schema.
	data := settings.Schemas().BuildForm(settings.CryptoAtRest)
	for key, values := range req.PostForm {
		if len(values) > 0 {
			data.Set(key, values[0])
		}
	}

	params, ok := settings.UnflattenCrypto(data)
	if !ok {
		return web.RenderJSONStatus(w, http.StatusUnprocessableEntity, &JSONSubmitResult{
			Errors: data.Errors(),
		})
	}

	// Re-authenticate with the typed password, not the session credential.
	creds := client.Credentials{
		Username: ctx.Creds.Username,
		Password: settings.Password(data),
	}
	err := ctx.Client.SaveCrypto(req.Context(), creds, params)
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		// Wrong password; the form stays editable.
		return web.RenderJSON(w, &JSONSubmitResult{
			Alert: &JSONAlert{
				Level:   AlertWarning,
				Title:   "Incorrect password",
				Details: "The password you entered is incorrect",
			},
		})
	case err != nil:
		log.Warn().Str("module", "webui").Err(err).Msg("Crypto settings save failed")
		return web.RenderJSONStatus(w, http.StatusBadGateway, genericFailure)
	}

	ctx.Hub.Dispatch(notify.KindSettingsChanged, settings.CryptoAtRest)

	alert := &JSONAlert{
		Level: AlertSuccess,
		Title: "Encryption-at-rest disabled",
		Details: "Automatic encryption of plain text messages has been disabled. " +
			"From now on all incoming messages will be stored in their original form.",
	}
	if params.Enabled {
		alert = &JSONAlert{
			Level: AlertSuccess,
			Title: "Encryption-at-rest enabled",
			Details: "Automatic encryption of plain text messages has been enabled. " +
				"From now on all incoming plain-text messages will be encrypted " +
				"before they reach your mailbox.",
		}
	}
	return web.RenderJSON(w, &JSONSubmitResult{Saved: true, Alert: alert})
}

// formToJSON builds the view model for a form instance.  Secret values are
// never echoed back to the client.
func formToJSON(data *forms.FormData) *JSONForm {
	schema := data.Schema()
	fields := make([]*JSONFormField, 0, len(schema.Fields()))
	for _, f := range schema.Fields() {
		value, _ := data.Value(f.Name)
		if f.Type == forms.TypeSecret {
			value = ""
		}
		var options []JSONFormOption
		for _, opt := range f.Options {
			options = append(options, JSONFormOption{Value: opt.Value, Label: opt.Label})
		}
		fields = append(fields, &JSONFormField{
			Name:    f.Name,
			Type:    f.Type.String(),
			Label:   f.Label,
			Help:    f.Help,
			Options: options,
			Value:   value,
			Visible: data.IsVisible(f.Name),
		})
	}
	return &JSONForm{Schema: schema.Name(), Fields: fields}
}
