package cli

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"asset-scan/internal/importer"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const reg = "LAB-101/20240101000000/12345"

type fakeBackend struct {
	mu       sync.Mutex
	requests []string
	bodies   map[string]map[string]any
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, r.Method+" "+r.RequestURI+" "+r.Header.Get("Cookie"))

	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)
	if b.bodies == nil {
		b.bodies = map[string]map[string]any{}
	}
	b.bodies[r.Method+" "+r.URL.EscapedPath()] = body

	w.Header().Set("Content-Type", "application/json")
	path := r.URL.EscapedPath()
	switch {
	case path == "/api/auth/login":
		if body["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Invalid credentials"})
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "connect.sid", Value: "abc"})
		_ = json.NewEncoder(w).Encode(map[string]any{"user": map[string]string{"name": "Asha"}})
	case r.Method == http.MethodGet && strings.HasPrefix(path, "/api/setup/"):
		_ = json.NewEncoder(w).Encode([]string{"Engineering"})
	case strings.HasPrefix(path, "/api/assets/by-reg/"):
		_ = json.NewEncoder(w).Encode(map[string]any{
			"_id":           "66a1",
			"institute":     "Engineering",
			"department":    "Physics",
			"status":        "active",
			"purchase_date": "2024-01-01",
			"room_no":       "Lab-101",
			"assign_date":   "2024-02-01",
			"assigned_type": "General",
		})
	case strings.HasPrefix(path, "/api/assets/update-by-registration/LAB-404"):
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Asset not found"})
	default:
		_ = json.NewEncoder(w).Encode(body)
	}
}

func (b *fakeBackend) calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requests...)
}

func (b *fakeBackend) body(key string) map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bodies[key]
}

func run(t *testing.T, url string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCMD(&out)
	cmd.SetArgs(append([]string{"--backend", url, "--cookie", "sid=cli"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func newBackend(t *testing.T) (*fakeBackend, string) {
	t.Helper()
	fb := &fakeBackend{}
	srv := httptest.NewServer(fb)
	t.Cleanup(srv.Close)
	return fb, srv.URL
}

func TestSetupList(t *testing.T) {
	fb, url := newBackend(t)

	out, err := run(t, url, "setup", "list", "institutes")
	require.NoError(t, err)
	assert.Equal(t, "institutes:\n  Engineering\n", out)
	assert.Equal(t, []string{"GET /api/setup/institutes sid=cli"}, fb.calls())

	_, err = run(t, url, "setup", "list", "buildings")
	assert.EqualError(t, err, `unknown list "buildings"`)
}

func TestLoginPasswordFromFlagOrEnv(t *testing.T) {
	fb, url := newBackend(t)

	_, err := run(t, url, "login", "asha@example.com")
	assert.EqualError(t, err, "password is required, pass --password or set ASSETCTL_PASSWORD")
	assert.Empty(t, fb.calls())

	_, err = run(t, url, "login", "asha@example.com", "--password", "wrong")
	assert.EqualError(t, err, "Invalid credentials")

	out, err := run(t, url, "login", "asha@example.com", "--password", "secret")
	require.NoError(t, err)
	assert.Equal(t, "# signed in as Asha\nconnect.sid=abc\n", out)

	t.Setenv("ASSETCTL_PASSWORD", "secret")
	out, err = run(t, url, "login", "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, "# signed in as Asha\nconnect.sid=abc\n", out)
}

func TestSetupAddValidatesLocally(t *testing.T) {
	fb, url := newBackend(t)

	_, err := run(t, url, "setup", "add", "departments", "  ")
	assert.EqualError(t, err, "Value is required.")
	assert.Empty(t, fb.calls())
}

func TestUpdateSetsFields(t *testing.T) {
	fb, url := newBackend(t)

	out, err := run(t, url, "update", reg, "--set", "status=repair", "--set", "rate_per_unit=Rs 1,500", "--set", "verified=yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated successfully")

	body := fb.body("PUT /api/assets/66a1")
	require.NotNil(t, body)
	assert.Equal(t, "repair", body["status"])
	assert.Equal(t, "1500", body["rate_per_unit"])
	assert.Equal(t, "general", body["assigned_type"])
	assert.Equal(t, true, body["verified"])
	assert.NotEmpty(t, body["verification_date"])

	_, err = run(t, url, "update", reg, "--set", "colour=red")
	assert.Error(t, err)
}

func TestDecodeImageFile(t *testing.T) {
	_, url := newBackend(t)

	img, err := qrcode.NewQRCodeWriter().Encode(reg, gozxing.BarcodeFormat_QR_CODE, 256, 256, nil)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "tag.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	out, err := run(t, url, "decode", path, "--lookup")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, reg+"\n"))
	assert.Contains(t, out, `"id": "66a1"`)
}

func TestImportReportsFailures(t *testing.T) {
	fb, url := newBackend(t)

	header := []any{}
	for _, c := range importer.RequiredColumns {
		header = append(header, c)
	}
	row := func(regNo string) []any {
		values := map[string]string{
			importer.ColSerialNo:       "1",
			importer.ColRegistrationNo: regNo,
			importer.ColAssetName:      "Mouse",
			importer.ColCategory:       "Electronics",
			importer.ColInstitute:      "Engineering",
			importer.ColStatus:         "active",
			importer.ColPurchaseDate:   "2024-01-01",
			importer.ColRoomNo:         "Lab-101",
			importer.ColAssignedType:   "general",
			importer.ColAssignDate:     "2024-02-01",
		}
		line := make([]any, len(header))
		for i, h := range header {
			line[i] = values[h.(string)]
		}
		return line
	}

	wb := excelize.NewFile()
	sheet := wb.GetSheetName(0)
	require.NoError(t, wb.SetSheetRow(sheet, "A1", &header))
	first, second := row(reg), row("LAB-404/20240101000000/12345")
	require.NoError(t, wb.SetSheetRow(sheet, "A2", &first))
	require.NoError(t, wb.SetSheetRow(sheet, "A3", &second))
	path := filepath.Join(t.TempDir(), "assets.xlsx")
	require.NoError(t, wb.SaveAs(path))
	require.NoError(t, wb.Close())

	out, err := run(t, url, "import", path)
	assert.EqualError(t, err, "1 rows failed")
	assert.Contains(t, out, "Updated 1 assets successfully. 1 assets failed to update.")
	assert.Contains(t, out, "LAB-404/20240101000000/12345: Asset not found")
	assert.Len(t, fb.calls(), 2)
}
