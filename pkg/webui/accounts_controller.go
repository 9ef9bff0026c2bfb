package webui

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mailcove/admin/pkg/api/client"
	"github.com/mailcove/admin/pkg/api/model"
	"github.com/mailcove/admin/pkg/server/web"
	"github.com/mailcove/admin/pkg/webui/sanitize"
)

// JSONAccount formats one directory account for the UI.
type JSONAccount struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	// DescriptionHTML preserves the limited formatting allowed in directory
	// descriptions; everything else is stripped.
	DescriptionHTML string `json:"descriptionHtml,omitempty"`
	Email           string `json:"email,omitempty"`
	AddressCount    int    `json:"addressCount"`
	Superuser       bool   `json:"superuser"`
	QuotaPct        string `json:"quotaPct"`
	GroupCount      int    `json:"groupCount"`
}

// JSONAccountPage formats one page of the account listing for the UI,
// including the pagination controls' state.
type JSONAccountPage struct {
	Items       []*JSONAccount `json:"items"`
	Total       int64          `json:"total"`
	Page        int            `json:"page"`
	TotalPages  int            `json:"totalPages"`
	PrevEnabled bool           `json:"prevEnabled"`
	NextEnabled bool           `json:"nextEnabled"`
}

// AccountList renders one page of individual accounts as JSON for the UI.
func AccountList(w http.ResponseWriter, req *http.Request, ctx *web.Context) error {
	page := 1
	if p, err := strconv.Atoi(req.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}
	filter := req.URL.Query().Get("filter")
	pageSize := ctx.WebConfig.PageSize

	result, err := ctx.Client.ListAccounts(req.Context(), ctx.Creds, page, pageSize, filter)
	if errors.Is(err, client.ErrUnauthorized) {
		return web.RenderJSONStatus(w, http.StatusUnauthorized, loginRedirect)
	}
	if err != nil {
		log.Warn().Str("module", "webui").Int("page", page).Err(err).
			Msg("Account listing failed")
		return web.RenderJSONStatus(w, http.StatusBadGateway, genericFailure)
	}

	totalPages := int(math.Ceil(float64(result.Total) / float64(pageSize)))
	items := make([]*JSONAccount, len(result.Items))
	for i := range result.Items {
		items[i] = accountToJSON(&result.Items[i])
	}

	return web.RenderJSON(w, &JSONAccountPage{
		Items:       items,
		Total:       result.Total,
		Page:        page,
		TotalPages:  totalPages,
		PrevEnabled: page > 1,
		NextEnabled: page < totalPages,
	})
}

// accountToJSON maps a directory principal onto its UI row.  Directory
// strings are sanitized; the console does not own that data.
func accountToJSON(p *model.Principal) *JSONAccount {
	displayName := sanitize.Text(p.Description)
	if displayName == "" {
		displayName = sanitize.Text(p.Name)
	}
	if displayName == "" {
		displayName = "Unknown"
	}

	email := ""
	if len(p.Emails) > 0 {
		email = p.Emails[0]
	}

	descriptionHTML, err := sanitize.HTML(p.Description)
	if err != nil {
		// Unparseable markup; fall back to the stripped text.
		descriptionHTML = sanitize.Text(p.Description)
	}

	return &JSONAccount{
		ID:              p.ID,
		Name:            sanitize.Text(p.Name),
		DisplayName:     displayName,
		DescriptionHTML: strings.TrimSpace(descriptionHTML),
		Email:           email,
		AddressCount:    len(p.Emails),
		Superuser:       p.Type == model.PrincipalSuperuser,
		QuotaPct:        quotaPct(p.Quota, p.UsedQuota),
		GroupCount:      len(p.MemberOf),
	}
}

// quotaPct renders used quota as a rounded percentage, or "N/A" when the
// account has no quota.
func quotaPct(quota, used uint64) string {
	if quota == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%d%%", int(math.Round(float64(used)/float64(quota)*100)))
}
