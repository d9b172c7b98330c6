package request

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cradoe/crm/internal/models"
	"github.com/stretchr/testify/require"
)

func TestPagination(t *testing.T) {
	page, errs := Pagination(httptest.NewRequest(http.MethodGet, "/leads", nil))
	require.Nil(t, errs)
	require.Equal(t, models.Page{Page: models.DefaultPage, Limit: models.DefaultLimit}, page)

	page, errs = Pagination(httptest.NewRequest(http.MethodGet, "/leads?page=4&limit=25", nil))
	require.Nil(t, errs)
	require.Equal(t, models.Page{Page: 4, Limit: 25}, page)

	_, errs = Pagination(httptest.NewRequest(http.MethodGet, "/leads?page=0&limit=101", nil))
	require.Equal(t, []string{"page must not be less than 1", "limit must not be greater than 100"}, errs)
}

func TestPathIDs(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/leads/12", nil)
	r.SetPathValue("id", "12")

	id, err := IntID(r, "id")
	require.NoError(t, err)
	require.Equal(t, int64(12), id)

	_, err = UUID(r, "id")
	require.EqualError(t, err, "validation failed (uuid is expected)")

	r.SetPathValue("id", "6F1C2B7E-3D4A-4C8E-9B2F-1A2B3C4D5E6F")
	uuid, err := UUID(r, "id")
	require.NoError(t, err)
	require.Equal(t, "6f1c2b7e-3d4a-4c8e-9b2f-1a2b3c4d5e6f", uuid)

	_, err = IntID(r, "id")
	require.EqualError(t, err, "validation failed (numeric string is expected)")
}

func TestDecodeJSONStrict(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x","extra":1}`))
	err := DecodeJSONStrict(httptest.NewRecorder(), r, &dst)
	require.EqualError(t, err, `property "extra" should not exist`)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``))
	err = DecodeJSONStrict(httptest.NewRecorder(), r, &dst)
	require.EqualError(t, err, "body must not be empty")
}
