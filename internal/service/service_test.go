package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"asset-scan/internal/asset"
	"asset-scan/internal/backend"
	"asset-scan/internal/importer"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inventory is a small in-memory stand-in for the backend REST API.
type inventory struct {
	mu       sync.Mutex
	lists    map[string][]string
	assets   map[string]map[string]any // by registration number
	requests []string
	status   int // forced status for asset calls, 0 = normal
	lastPut  map[string]any
}

func newInventory() *inventory {
	return &inventory{
		lists: map[string][]string{
			backend.KeyAssetNames:  {"Mouse:Electronics"},
			backend.KeyInstitutes:  {"Engineering"},
			backend.KeyDepartments: {},
		},
		assets: map[string]map[string]any{
			"LAB-101/20240101000000/12345": {
				"_id":                 "66a1",
				"registration_number": "LAB-101/20240101000000/12345",
				"institute":           "Engineering",
				"assigned_type":       "general",
				"verified":            "no",
				"rate_per_unit":       12500,
			},
		},
	}
}

func (inv *inventory) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.requests = append(inv.requests, r.Method+" "+r.RequestURI)

	path := r.URL.EscapedPath()
	reply := func(status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}

	switch {
	case strings.HasPrefix(path, "/api/setup/"):
		parts := strings.SplitN(strings.TrimPrefix(path, "/api/setup/"), "/", 2)
		key := parts[0]
		switch r.Method {
		case http.MethodGet:
			reply(http.StatusOK, inv.lists[key])
		case http.MethodPost:
			var body struct{ Name, Category string }
			_ = json.NewDecoder(r.Body).Decode(&body)
			v := body.Name
			if body.Category != "" {
				v += ":" + body.Category
			}
			for _, existing := range inv.lists[key] {
				if existing == v {
					reply(http.StatusConflict, map[string]string{"error": "Value already exists"})
					return
				}
			}
			inv.lists[key] = append(inv.lists[key], v)
			reply(http.StatusCreated, map[string]string{"name": v})
		case http.MethodDelete:
			v, _ := url.PathUnescape(parts[1])
			kept := []string{}
			for _, existing := range inv.lists[key] {
				if existing != v {
					kept = append(kept, existing)
				}
			}
			inv.lists[key] = kept
			reply(http.StatusOK, map[string]string{"deleted": v})
		}
	case strings.HasPrefix(path, "/api/assets/by-reg/"):
		if inv.status != 0 {
			reply(inv.status, map[string]string{"error": "nope"})
			return
		}
		reg, _ := url.PathUnescape(strings.TrimPrefix(path, "/api/assets/by-reg/"))
		doc, ok := inv.assets[reg]
		if !ok {
			reply(http.StatusNotFound, map[string]string{"error": "Asset not found"})
			return
		}
		reply(http.StatusOK, doc)
	case strings.HasPrefix(path, "/api/assets/") && r.Method == http.MethodPut:
		if inv.status != 0 {
			reply(inv.status, map[string]string{"error": "Validation failed: status"})
			return
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		inv.lastPut = body
		reply(http.StatusOK, body)
	default:
		reply(http.StatusNotFound, map[string]string{"error": "no route"})
	}
}

func (inv *inventory) fail(status int) {
	inv.mu.Lock()
	inv.status = status
	inv.mu.Unlock()
}

func (inv *inventory) calls() []string {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return append([]string(nil), inv.requests...)
}

func setup(t *testing.T) (*inventory, *backend.Client) {
	t.Helper()
	inv := newInventory()
	srv := httptest.NewServer(inv)
	t.Cleanup(srv.Close)
	return inv, backend.NewWithHTTPClient(srv.URL, srv.Client())
}

var creds = backend.Credentials{Cookie: "sid=abc"}

func TestMasterDataAddIncludesValueOnce(t *testing.T) {
	_, client := setup(t)
	svc := &MasterDataService{Backend: client}
	ctx := context.Background()

	for _, s := range []string{"Physics", "  Chemistry  ", "Lab & Workshop"} {
		ch, err := svc.Add(ctx, creds, backend.KeyDepartments, s)
		require.NoError(t, err)
		want := strings.TrimSpace(s)
		count := 0
		for _, v := range ch.List {
			if v == want {
				count++
			}
		}
		assert.Equal(t, 1, count, s)
		assert.Equal(t, "Added to departments", ch.Message)
	}
}

func TestMasterDataValidationSendsNothing(t *testing.T) {
	inv, client := setup(t)
	svc := &MasterDataService{Backend: client}
	ctx := context.Background()

	_, err := svc.Add(ctx, creds, backend.KeyInstitutes, "   ")
	assert.EqualError(t, err, "Value is required.")

	_, err = svc.AddAssetName(ctx, creds, "Mouse", " ")
	assert.EqualError(t, err, "Asset Name and Category are both required.")

	_, err = svc.Add(ctx, creds, "buildings", "Main")
	assert.EqualError(t, err, "Unknown list 'buildings'.")

	assert.Empty(t, inv.calls())
}

func TestMasterDataBackendErrorAndDelete(t *testing.T) {
	_, client := setup(t)
	svc := &MasterDataService{Backend: client}
	ctx := context.Background()

	_, err := svc.AddAssetName(ctx, creds, "Mouse", "Electronics")
	assert.EqualError(t, err, "Value already exists")

	ch, err := svc.Delete(ctx, creds, backend.KeyAssetNames, "Mouse:Electronics")
	require.NoError(t, err)
	assert.Equal(t, "Deleted 'Mouse:Electronics'", ch.Message)
	assert.Empty(t, ch.List)

	lists, problems, err := svc.Load(ctx, creds)
	require.NoError(t, err)
	assert.Empty(t, problems)
	assert.Equal(t, []string{"Engineering"}, lists.Institutes())
}

func TestLookupRejectsMalformedWithoutRequest(t *testing.T) {
	inv, client := setup(t)
	svc := &AssetService{Backend: client, Today: asset.Today}

	_, err := svc.Lookup(context.Background(), creds, "   ")
	assert.EqualError(t, err, "Invalid QR")

	for _, s := range []string{"hello", "LAB-101/2024/12345", "https://example.com/LAB-101/20240101000000/12345"} {
		_, err := svc.Lookup(context.Background(), creds, s)
		assert.EqualError(t, err, "Data not found", s)
	}
	assert.Empty(t, inv.calls())
}

func TestLookupHydratesForm(t *testing.T) {
	inv, client := setup(t)
	svc := &AssetService{Backend: client, Today: asset.Today}

	loaded, err := svc.Lookup(context.Background(), creds, " LAB-101/20240101000000/12345 ")
	require.NoError(t, err)

	assert.Equal(t, []string{"GET /api/assets/by-reg/LAB-101%2F20240101000000%2F12345"}, inv.calls())
	assert.Equal(t, "66a1", loaded.Record.ID())
	assert.Equal(t, "Engineering", loaded.Form.Institute)
	assert.Equal(t, "12500", loaded.Form.RatePerUnit)
	assert.False(t, loaded.Form.Verified)
}

func TestLookupErrors(t *testing.T) {
	inv, client := setup(t)
	svc := &AssetService{Backend: client, Today: asset.Today}
	ctx := context.Background()

	_, err := svc.Lookup(ctx, creds, "LAB-999/20240101000000/12345")
	assert.EqualError(t, err, "Not found")

	inv.fail(http.StatusUnauthorized)
	_, err = svc.Lookup(ctx, creds, "LAB-101/20240101000000/12345")
	assert.True(t, backend.IsUnauthorized(err))

	inv.fail(http.StatusInternalServerError)
	_, err = svc.Lookup(ctx, creds, "LAB-101/20240101000000/12345")
	assert.EqualError(t, err, "Not found")

	down := &AssetService{Backend: backend.New("http://127.0.0.1:1"), Today: asset.Today}
	_, err = down.Lookup(ctx, creds, "LAB-101/20240101000000/12345")
	assert.EqualError(t, err, "Network error")
}

func filledForm() asset.Form {
	f := asset.NewForm()
	f.Institute = "Engineering"
	f.Department = "Physics"
	f.PurchaseDate = "2024-01-01"
	f.RoomNo = "Lab-101"
	f.AssignDate = "2024-02-01"
	return f
}

func TestSaveStampsToday(t *testing.T) {
	inv, client := setup(t)
	svc := &AssetService{Backend: client, Today: func() string { return "2026-10-16" }}

	f := filledForm()
	f.Verified = true
	saved, err := svc.Save(context.Background(), creds, "66a1", f)
	require.NoError(t, err)

	assert.Equal(t, "2026-10-16", inv.lastPut["verification_date"])
	assert.Equal(t, true, inv.lastPut["verified"])
	assert.Equal(t, "2026-10-16", saved.VerificationDate)
	assert.Contains(t, inv.calls(), "PUT /api/assets/66a1")
}

func TestSaveStampsRealToday(t *testing.T) {
	inv, client := setup(t)
	svc := &AssetService{Backend: client, Today: asset.Today}

	f := filledForm()
	f.Verified = true
	_, err := svc.Save(context.Background(), creds, "66a1", f)
	require.NoError(t, err)
	assert.Equal(t, asset.Today(), inv.lastPut["verification_date"])
}

func TestSaveFailuresKeepEdits(t *testing.T) {
	inv, client := setup(t)
	svc := &AssetService{Backend: client, Today: asset.Today}
	ctx := context.Background()

	_, err := svc.Save(ctx, creds, "", filledForm())
	assert.EqualError(t, err, "Scan an asset QR first")

	f := filledForm()
	f.Remarks = "moved to store"
	inv.fail(http.StatusBadRequest)
	kept, err := svc.Save(ctx, creds, "66a1", f)
	assert.EqualError(t, err, "Validation failed: status")
	assert.Equal(t, "moved to store", kept.Remarks)

	incomplete := asset.NewForm()
	_, err = svc.Save(ctx, creds, "66a1", incomplete)
	var ue *UserError
	require.True(t, errors.As(err, &ue))
	assert.Contains(t, ue.Msg, "Institute is required.")
}

// partialSetup serves every list except the ones marked broken.
type partialSetup struct {
	lists  map[string][]string
	broken map[string]error
}

func (p partialSetup) ListSetup(_ context.Context, _ backend.Credentials, key string) ([]string, error) {
	if err := p.broken[key]; err != nil {
		return nil, err
	}
	return p.lists[key], nil
}

func (partialSetup) AddSetup(context.Context, backend.Credentials, string, string) error {
	return nil
}

func (partialSetup) AddAssetName(context.Context, backend.Credentials, string, string) error {
	return nil
}

func (partialSetup) DeleteSetup(context.Context, backend.Credentials, string, string) error {
	return nil
}

func TestLoadReportsFailedListAndKeepsOthers(t *testing.T) {
	svc := &MasterDataService{Backend: partialSetup{
		lists: map[string][]string{
			backend.KeyAssetNames:  {"Mouse:Electronics"},
			backend.KeyInstitutes:  {"Engineering"},
			backend.KeyDepartments: {"Physics"},
		},
		broken: map[string]error{
			backend.KeyInstitutes: &backend.APIError{Status: http.StatusInternalServerError, Message: "db down"},
		},
	}}

	lists, problems, err := svc.Load(context.Background(), creds)
	require.NoError(t, err)
	assert.Equal(t, []string{"Failed to fetch institutes"}, problems)
	assert.Empty(t, lists.Institutes())
	assert.NotNil(t, lists.Institutes())
	assert.Equal(t, []string{"Mouse:Electronics"}, lists.AssetNames())
	assert.Equal(t, []string{"Physics"}, lists.Departments())
}

func TestLoadUnauthorizedIsReturned(t *testing.T) {
	svc := &MasterDataService{Backend: partialSetup{
		lists: map[string][]string{backend.KeyInstitutes: {"Engineering"}},
		broken: map[string]error{
			backend.KeyDepartments: &backend.APIError{Status: http.StatusUnauthorized},
		},
	}}

	_, problems, err := svc.Load(context.Background(), creds)
	assert.True(t, backend.IsUnauthorized(err))
	assert.Contains(t, problems, "Failed to fetch departments")
}

type countingUpdater struct {
	mu    sync.Mutex
	calls int
}

func (u *countingUpdater) UpdateByRegistration(context.Context, backend.Credentials, string, any) error {
	u.mu.Lock()
	u.calls++
	u.mu.Unlock()
	return nil
}

func TestImportRequiresLogin(t *testing.T) {
	up := &countingUpdater{}
	svc := &ImportService{Runner: &importer.Runner{Backend: up, Today: asset.Today}}

	_, err := svc.Import(context.Background(), backend.Credentials{}, strings.NewReader("not read"))
	assert.EqualError(t, err, "Please log in to update assets")
	assert.True(t, backend.IsUnauthorized(err))
	assert.Zero(t, up.calls)
}

func TestImportUnreadableFile(t *testing.T) {
	up := &countingUpdater{}
	svc := &ImportService{Runner: &importer.Runner{Backend: up, Today: asset.Today}}

	_, err := svc.Import(context.Background(), creds, strings.NewReader("not a workbook"))
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "Error processing Excel file: "))
	assert.Zero(t, up.calls)
}
