package commands

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTaskFormTrimsFields(t *testing.T) {
	form := url.Values{"title": {"  Buy milk "}, "description": {" Two bottles  "}}
	req := httptest.NewRequest(http.MethodPost, "/add", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	got, err := ParseTaskForm(req)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", got.Title)
	assert.Equal(t, "Two bottles", got.Description)
}

func TestParseTaskFormMissingFieldsAreEmpty(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/add", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	got, err := ParseTaskForm(req)
	require.NoError(t, err)
	assert.Empty(t, got.Title)
	assert.Empty(t, got.Description)
}
