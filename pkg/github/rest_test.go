package github_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ghpkg "github.com/xrpdonation/donation-action/pkg/github"
)

// enterprise URLs are rooted at /api/v3/
const labelsPath = "/api/v3/repos/octo/project/labels"

func TestListLabelNames_Paginates(t *testing.T) {
	var srvURL string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, labelsPath, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("page") == "2" {
			_, _ = w.Write([]byte(`[{"name":"XRPDonation:Done"}]`))
			return
		}
		w.Header().Set("Link", fmt.Sprintf(`<%s%s?page=2>; rel="next"`, srvURL, labelsPath))
		_, _ = w.Write([]byte(`[{"name":"bug"},{"name":"XRPDonation:New"}]`))
	}))
	defer srv.Close()
	srvURL = srv.URL

	client, err := ghpkg.NewRESTClient(srv.Client(), srv.URL)
	require.NoError(t, err)

	names, err := client.ListLabelNames(context.Background(), "octo", "project")
	require.NoError(t, err)
	assert.Equal(t, []string{"bug", "XRPDonation:New", "XRPDonation:Done"}, names)
}

func TestListLabelNames_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
	}))
	defer srv.Close()

	client, err := ghpkg.NewRESTClient(srv.Client(), srv.URL)
	require.NoError(t, err)

	_, err = client.ListLabelNames(context.Background(), "octo", "project")
	assert.Error(t, err)
}

func TestCreateLabel(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, labelsPath, r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"name":"XRPDonation:New"}`))
	}))
	defer srv.Close()

	client, err := ghpkg.NewRESTClient(srv.Client(), srv.URL)
	require.NoError(t, err)

	err = client.CreateLabel(context.Background(), "octo", "project", ghpkg.NewLabel{
		Name:        "XRPDonation:New",
		Color:       "#1d76db",
		Description: "Donation target detected",
	})
	require.NoError(t, err)
	assert.Equal(t, "XRPDonation:New", got["name"])
	assert.Equal(t, "1d76db", got["color"])
	assert.Equal(t, "Donation target detected", got["description"])
}

func TestCreateLabel_EmptyName(t *testing.T) {
	client, err := ghpkg.NewRESTClient(nil, "")
	require.NoError(t, err)

	assert.Error(t, client.CreateLabel(context.Background(), "octo", "project", ghpkg.NewLabel{Name: " "}))
}
