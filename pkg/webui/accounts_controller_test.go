package webui

import (
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailcove/admin/pkg/api/model"
)

func TestAccountListFirstPage(t *testing.T) {
	backend := fakeDirectory(t, []model.Principal{
		{
			ID:          1,
			Type:        model.PrincipalIndividual,
			Name:        "john",
			Description: "John Doe",
			Quota:       1000,
			UsedQuota:   500,
			Emails:      []string{"john@example.com", "jdoe@example.com"},
			MemberOf:    []string{"staff"},
		},
		{
			ID:   2,
			Type: model.PrincipalSuperuser,
			Name: "admin",
		},
		{
			ID:     3,
			Type:   model.PrincipalIndividual,
			Name:   "jane",
			Emails: []string{"jane@example.com"},
		},
	})
	setupWebServer(t, backend.URL, 2)

	w := testUIGet("http://localhost/accounts")
	require.Equal(t, http.StatusOK, w.Code)

	var page JSONAccountPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 2, page.TotalPages)
	assert.False(t, page.PrevEnabled)
	assert.True(t, page.NextEnabled)

	require.Len(t, page.Items, 2)
	john := page.Items[0]
	assert.Equal(t, "john", john.Name)
	assert.Equal(t, "John Doe", john.DisplayName)
	assert.Equal(t, "john@example.com", john.Email)
	assert.Equal(t, 2, john.AddressCount)
	assert.False(t, john.Superuser)
	assert.Equal(t, "50%", john.QuotaPct)
	assert.Equal(t, 1, john.GroupCount)

	admin := page.Items[1]
	assert.Equal(t, "admin", admin.DisplayName, "name stands in for a blank description")
	assert.True(t, admin.Superuser)
	assert.Equal(t, "N/A", admin.QuotaPct, "no quota set")
	assert.Equal(t, 0, admin.AddressCount)
}

func TestAccountListLastPage(t *testing.T) {
	backend := fakeDirectory(t, []model.Principal{
		{ID: 1, Name: "john"},
		{ID: 2, Name: "jane"},
		{ID: 3, Name: "fred"},
	})
	setupWebServer(t, backend.URL, 2)

	w := testUIGet("http://localhost/accounts?page=2")
	require.Equal(t, http.StatusOK, w.Code)

	var page JSONAccountPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "fred", page.Items[0].Name)
	assert.Equal(t, 2, page.Page)
	assert.True(t, page.PrevEnabled)
	assert.False(t, page.NextEnabled, "no pages beyond the last")
}

// A page past the end of the listing renders empty rather than failing; the
// next control stays suppressed so the user can only navigate back.
func TestAccountListPastEnd(t *testing.T) {
	backend := fakeDirectory(t, []model.Principal{
		{ID: 1, Name: "john"},
	})
	setupWebServer(t, backend.URL, 1)

	w := testUIGet("http://localhost/accounts?page=3")
	require.Equal(t, http.StatusOK, w.Code)

	var page JSONAccountPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, 1, page.TotalPages)
	assert.True(t, page.PrevEnabled)
	assert.False(t, page.NextEnabled)
}

func TestAccountListBadPageParam(t *testing.T) {
	backend := fakeDirectory(t, []model.Principal{
		{ID: 1, Name: "john"},
	})
	setupWebServer(t, backend.URL, 10)

	for _, raw := range []string{"oops", "-1", "0", ""} {
		w := testUIGet("http://localhost/accounts?page=" + raw)
		require.Equal(t, http.StatusOK, w.Code)
		var page JSONAccountPage
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		assert.Equal(t, 1, page.Page, "page %q should fall back to 1", raw)
	}
}

func TestAccountListSanitizesDirectoryStrings(t *testing.T) {
	backend := fakeDirectory(t, []model.Principal{
		{ID: 1, Name: "john", Description: "<b>Big</b> Boss <script>alert(1)</script>"},
	})
	setupWebServer(t, backend.URL, 10)

	w := testUIGet("http://localhost/accounts")
	require.Equal(t, http.StatusOK, w.Code)

	var page JSONAccountPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Big Boss", page.Items[0].DisplayName)
	assert.Equal(t, "<b>Big</b> Boss", page.Items[0].DescriptionHTML,
		"simple formatting survives, scripts do not")
}

// An expired session turns into a 401 plus a login redirect for the UI.
func TestAccountListUnauthorized(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
	defer backend.Close()
	setupWebServer(t, backend.URL, 10)

	w := testUIGet("http://localhost/accounts")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var redirect JSONRedirect
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &redirect))
	assert.Equal(t, "/login", redirect.Redirect)
}

// Any other backend failure yields a page level error alert.
func TestAccountListBackendDown(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
	defer backend.Close()
	setupWebServer(t, backend.URL, 10)

	w := testUIGet("http://localhost/accounts")
	require.Equal(t, http.StatusBadGateway, w.Code)

	var alert JSONAlert
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &alert))
	assert.Equal(t, AlertError, alert.Level)
}
