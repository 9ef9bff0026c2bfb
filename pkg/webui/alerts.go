package webui

// Alert levels understood by the UI.
const (
	AlertSuccess = "success"
	AlertWarning = "warning"
	AlertError   = "error"
)

// JSONAlert is a page level message for the UI to display.
type JSONAlert struct {
	Level   string `json:"level"`
	Title   string `json:"title"`
	Details string `json:"details,omitempty"`
}

// JSONRedirect instructs the UI to navigate away, typically to the login
// page after the session expires.
type JSONRedirect struct {
	Redirect string `json:"redirect"`
}

// loginRedirect is sent with HTTP 401 when the management API no longer
// accepts the session credentials.
var loginRedirect = &JSONRedirect{Redirect: "/login"}

// genericFailure is shown when the management API misbehaves in a way the
// console cannot interpret.
var genericFailure = &JSONAlert{
	Level:   AlertError,
	Title:   "Request failed",
	Details: "The mail server could not be reached or returned an error.",
}
