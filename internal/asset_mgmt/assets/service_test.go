package assets

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type seqIDGen struct{ n int }

func (g *seqIDGen) NewULID(time.Time) string {
	g.n++
	return fmt.Sprintf("01TESTASSET%015d", g.n)
}

type fakeStore struct {
	items map[string]*Asset

	// pendingRefs marks assets with an open request so DeleteGuarded
	// can refuse them the way the SQL store does
	pendingRefs map[string]bool

	lastQuery AssetSearchQuery
}

func newFakeStore() *fakeStore {
	return &fakeStore{items: make(map[string]*Asset), pendingRefs: make(map[string]bool)}
}

func (f *fakeStore) Insert(_ context.Context, a *Asset) error {
	cp := *a
	f.items[a.AssetID] = &cp
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id string) (*Asset, error) {
	a, ok := f.items[id]
	if !ok {
		return nil, ErrNotFound("asset not found")
	}
	cp := *a
	return &cp, nil
}

func (f *fakeStore) List(_ context.Context, q AssetSearchQuery) ([]Asset, error) {
	f.lastQuery = q
	var out []Asset
	for _, a := range f.items {
		if q.TypeField != "" && a.AssetType != q.TypeField {
			continue
		}
		if q.Search != "" && !strings.Contains(strings.ToLower(a.AssetName), strings.ToLower(q.Search)) {
			continue
		}
		if q.CompanySearch != "" && a.CompanyName != q.CompanySearch {
			continue
		}
		if q.QuantityStatus == "available" && a.AssetQuantity == 0 {
			continue
		}
		if q.QuantityStatus == "outOfStock" && a.AssetQuantity != 0 {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeStore) Update(_ context.Context, id string, in UpdateAssetRequest) (*Asset, error) {
	a, ok := f.items[id]
	if !ok {
		return nil, ErrNotFound("asset not found")
	}
	if in.AssetName != nil {
		a.AssetName = *in.AssetName
	}
	if in.AssetType != nil {
		a.AssetType = *in.AssetType
	}
	if in.AssetQuantity != nil {
		a.AssetQuantity = *in.AssetQuantity
	}
	cp := *a
	return &cp, nil
}

func (f *fakeStore) DeleteGuarded(_ context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return ErrNotFound("asset not found")
	}
	if f.pendingRefs[id] {
		return ErrConflict("the asset has a pending request, resolve it first")
	}
	delete(f.items, id)
	return nil
}

func testService(store *fakeStore) *Service {
	return &Service{
		store: store,
		clock: fixedClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)},
		id:    &seqIDGen{},
	}
}

func isCode(err error, code Code) bool {
	api, ok := err.(*APIError)
	return ok && api.Code == code
}

func TestCreateAsset(t *testing.T) {
	store := newFakeStore()
	svc := testService(store)

	res, err := svc.CreateAsset(context.Background(), CreateAssetRequest{
		AssetName:     "Laptop",
		AssetType:     TypeReturnable,
		AssetQuantity: 5,
		CompanyName:   "Acme",
	})
	if err != nil {
		t.Fatalf("CreateAsset: %v", err)
	}
	if res.AssetID == "" {
		t.Error("assetId is empty")
	}
	if res.AssetQuantity != 5 {
		t.Errorf("quantity = %d, want 5", res.AssetQuantity)
	}
	if store.items[res.AssetID] == nil {
		t.Fatal("asset not stored")
	}
}

func TestCreateAssetValidation(t *testing.T) {
	svc := testService(newFakeStore())

	cases := []struct {
		name string
		req  CreateAssetRequest
	}{
		{"missing name", CreateAssetRequest{AssetType: TypeReturnable, CompanyName: "Acme"}},
		{"bad type", CreateAssetRequest{AssetName: "x", AssetType: "consumable", CompanyName: "Acme"}},
		{"negative quantity", CreateAssetRequest{AssetName: "x", AssetType: TypeReturnable, AssetQuantity: -1, CompanyName: "Acme"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.CreateAsset(context.Background(), tc.req); !isCode(err, CodeInvalidArgument) {
				t.Errorf("err = %v, want INVALID_ARGUMENT", err)
			}
		})
	}
}

func TestUpdateAssetRejectsNegativeQuantity(t *testing.T) {
	store := newFakeStore()
	store.items["a1"] = &Asset{AssetID: "a1", AssetName: "Laptop", AssetType: TypeReturnable, AssetQuantity: 1}
	svc := testService(store)

	neg := -2
	if _, err := svc.UpdateAsset(context.Background(), "a1", UpdateAssetRequest{AssetQuantity: &neg}); !isCode(err, CodeInvalidArgument) {
		t.Fatalf("err = %v, want INVALID_ARGUMENT", err)
	}
	if store.items["a1"].AssetQuantity != 1 {
		t.Errorf("quantity changed to %d", store.items["a1"].AssetQuantity)
	}
}

func TestDeleteAssetBlockedByPendingRequest(t *testing.T) {
	store := newFakeStore()
	store.items["a1"] = &Asset{AssetID: "a1", AssetName: "Laptop", AssetType: TypeReturnable}
	store.pendingRefs["a1"] = true
	svc := testService(store)

	if err := svc.DeleteAsset(context.Background(), "a1"); !isCode(err, CodeConflict) {
		t.Fatalf("err = %v, want CONFLICT", err)
	}
	if store.items["a1"] == nil {
		t.Error("asset was deleted despite the pending request")
	}
}

func TestDeleteAssetWithoutReferences(t *testing.T) {
	store := newFakeStore()
	store.items["a1"] = &Asset{AssetID: "a1", AssetName: "Laptop", AssetType: TypeReturnable}
	svc := testService(store)

	if err := svc.DeleteAsset(context.Background(), "a1"); err != nil {
		t.Fatalf("DeleteAsset: %v", err)
	}
	if store.items["a1"] != nil {
		t.Error("asset still stored")
	}
}

func TestListAssetsFilters(t *testing.T) {
	store := newFakeStore()
	store.items["a1"] = &Asset{AssetID: "a1", AssetName: "MacBook Pro", AssetType: TypeReturnable, AssetQuantity: 2, CompanyName: "Acme"}
	store.items["a2"] = &Asset{AssetID: "a2", AssetName: "Coffee Beans", AssetType: TypeNonReturnable, AssetQuantity: 0, CompanyName: "Acme"}
	svc := testService(store)

	got, err := svc.ListAssets(context.Background(), AssetSearchQuery{Search: "macbook", QuantityStatus: "available"})
	if err != nil {
		t.Fatalf("ListAssets: %v", err)
	}
	if len(got) != 1 || got[0].AssetID != "a1" {
		t.Errorf("got %v, want just a1", got)
	}

	got, err = svc.ListAssets(context.Background(), AssetSearchQuery{QuantityStatus: "outOfStock"})
	if err != nil {
		t.Fatalf("ListAssets: %v", err)
	}
	if len(got) != 1 || got[0].AssetID != "a2" {
		t.Errorf("got %v, want just a2", got)
	}
}
