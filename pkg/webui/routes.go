// Package webui powers the admin console's web GUI, serving the JSON view
// models the single page UI renders.
package webui

import (
	"github.com/gorilla/mux"

	"github.com/mailcove/admin/pkg/server/web"
)

// SetupRoutes populates routes for the webui into the provided Router.
func SetupRoutes(r *mux.Router) {
	r.Path("/accounts").Handler(
		web.Handler(AccountList)).Name("AccountList").Methods("GET")
	r.Path("/settings/crypto").Handler(
		web.Handler(CryptoShow)).Name("CryptoShow").Methods("GET")
	r.Path("/settings/crypto").Handler(
		web.Handler(CryptoSave)).Name("CryptoSave").Methods("POST")
	r.Path("/socket").Handler(
		web.Handler(ChangeSocket)).Name("ChangeSocket").Methods("GET")
}
