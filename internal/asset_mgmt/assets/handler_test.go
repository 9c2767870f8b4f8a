package assets

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func testRouter(store *fakeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, r, testService(store))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateAssetEndpoint(t *testing.T) {
	store := newFakeStore()
	r := testRouter(store)

	w := doJSON(t, r, http.MethodPost, "/create-asset", CreateAssetRequest{
		AssetName:     "Laptop",
		AssetType:     TypeReturnable,
		AssetQuantity: 3,
		CompanyName:   "Acme",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var res AssetResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.AssetID == "" || res.AssetQuantity != 3 {
		t.Errorf("unexpected response: %+v", res)
	}
	if loc := w.Header().Get("Location"); loc != "/asset/"+res.AssetID {
		t.Errorf("Location = %q", loc)
	}
}

func TestCreateAssetEndpointBadType(t *testing.T) {
	r := testRouter(newFakeStore())

	w := doJSON(t, r, http.MethodPost, "/create-asset", CreateAssetRequest{
		AssetName:     "Laptop",
		AssetType:     "consumable",
		AssetQuantity: 3,
		CompanyName:   "Acme",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var e errDTO
	if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if e.Error.Code != CodeInvalidArgument {
		t.Errorf("code = %s", e.Error.Code)
	}
}

func TestListAssetsQueryWiring(t *testing.T) {
	store := newFakeStore()
	store.items["a1"] = &Asset{AssetID: "a1", AssetName: "Laptop", AssetType: TypeReturnable, AssetQuantity: 2, CompanyName: "Acme"}
	r := testRouter(store)

	w := doJSON(t, r, http.MethodGet, "/assets?typeField=returnable&search=lap&companySearch=Acme&quantityStatus=available&sortOrder=-1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	got := store.lastQuery
	want := AssetSearchQuery{
		TypeField:      "returnable",
		Search:         "lap",
		CompanySearch:  "Acme",
		QuantityStatus: "available",
		SortOrder:      "-1",
	}
	if got != want {
		t.Errorf("query = %+v, want %+v", got, want)
	}

	var list []AssetResponse
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 1 || list[0].AssetID != "a1" {
		t.Errorf("list = %+v", list)
	}
}

func TestDeleteAssetEndpointConflict(t *testing.T) {
	store := newFakeStore()
	store.items["a1"] = &Asset{AssetID: "a1", AssetName: "Laptop", AssetType: TypeReturnable}
	store.pendingRefs["a1"] = true
	r := testRouter(store)

	w := doJSON(t, r, http.MethodDelete, "/delete-asset/a1", nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var e errDTO
	if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if e.Error.Code != CodeConflict {
		t.Errorf("code = %s", e.Error.Code)
	}
}

func TestGetAssetEndpointNotFound(t *testing.T) {
	r := testRouter(newFakeStore())

	w := doJSON(t, r, http.MethodGet, "/asset/nope", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}
