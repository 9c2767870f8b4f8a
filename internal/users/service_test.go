package users

import (
	"context"
	"testing"
	"time"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type fakeStore struct {
	users map[string]*User
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[string]*User)}
}

func (f *fakeStore) GetByEmail(_ context.Context, email string) (*User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeStore) Insert(_ context.Context, u *User) error {
	cp := *u
	f.users[u.Email] = &cp
	return nil
}

func (f *fakeStore) List(_ context.Context, filter UserFilter) ([]User, error) {
	var out []User
	for _, u := range f.users {
		if filter.UserCompany != "" && (!u.UserCompany.Valid || u.UserCompany.String != filter.UserCompany) {
			continue
		}
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeStore) UpdateProfile(_ context.Context, email string, in UpdateProfileRequest) error {
	u, ok := f.users[email]
	if !ok {
		return ErrNotFound("user not found")
	}
	u.Name = in.Name
	return nil
}

func (f *fakeStore) UpdateCompany(_ context.Context, email, userCompany, companyImage string) error {
	u, ok := f.users[email]
	if !ok {
		return ErrNotFound("user not found")
	}
	u.UserCompany.String, u.UserCompany.Valid = userCompany, userCompany != ""
	u.CompanyImage.String, u.CompanyImage.Valid = companyImage, companyImage != ""
	return nil
}

func (f *fakeStore) UpdateCompanyBulk(_ context.Context, emails []string, userCompany, companyImage string) (int64, error) {
	var n int64
	for _, email := range emails {
		if err := f.UpdateCompany(context.Background(), email, userCompany, companyImage); err == nil {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) IncrementEmployeeLimit(_ context.Context, email string, delta int) error {
	u, ok := f.users[email]
	if !ok {
		return ErrNotFound("user not found")
	}
	u.EmployeeLimit += delta
	return nil
}

func testService(store *fakeStore) *Service {
	return &Service{store: store, clock: fixedClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}}
}

func isCode(err error, code Code) bool {
	api, ok := err.(*APIError)
	return ok && api.Code == code
}

func TestCreateUserDefaultsToRequester(t *testing.T) {
	store := newFakeStore()
	svc := testService(store)

	res, created, err := svc.CreateUser(context.Background(), CreateUserRequest{
		Email: "dev@acme.test",
		Name:  "Dev One",
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if !created {
		t.Fatal("created = false on first sign-up")
	}
	if res.Role != RoleRequester {
		t.Errorf("role = %s, want requester", res.Role)
	}
}

func TestCreateUserDuplicateIsNoOp(t *testing.T) {
	store := newFakeStore()
	svc := testService(store)

	first := CreateUserRequest{Email: "dev@acme.test", Name: "Dev One", Role: RoleManager}
	if _, _, err := svc.CreateUser(context.Background(), first); err != nil {
		t.Fatalf("first CreateUser: %v", err)
	}

	res, created, err := svc.CreateUser(context.Background(), CreateUserRequest{
		Email: "dev@acme.test",
		Name:  "Renamed",
		Role:  RoleAdmin,
	})
	if err != nil {
		t.Fatalf("second CreateUser: %v", err)
	}
	if created {
		t.Error("created = true for an existing email")
	}
	if res.Name != "Dev One" || res.Role != RoleManager {
		t.Errorf("duplicate create modified the row: %+v", res)
	}
}

func TestCreateUserValidation(t *testing.T) {
	svc := testService(newFakeStore())

	cases := []struct {
		name string
		req  CreateUserRequest
	}{
		{"missing email", CreateUserRequest{Name: "Dev"}},
		{"missing name", CreateUserRequest{Email: "dev@acme.test"}},
		{"negative limit", CreateUserRequest{Email: "dev@acme.test", Name: "Dev", EmployeeLimit: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := svc.CreateUser(context.Background(), tc.req); !isCode(err, CodeInvalidArgument) {
				t.Errorf("err = %v, want INVALID_ARGUMENT", err)
			}
		})
	}
}

func TestCheckUserNotFound(t *testing.T) {
	svc := testService(newFakeStore())

	if _, err := svc.CheckUser(context.Background(), "ghost@acme.test"); !isCode(err, CodeNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}

func TestManageMultipleMembersCountsUpdatedRows(t *testing.T) {
	store := newFakeStore()
	store.users["a@acme.test"] = &User{Email: "a@acme.test", Name: "A", Role: RoleRequester}
	store.users["b@acme.test"] = &User{Email: "b@acme.test", Name: "B", Role: RoleRequester}
	svc := testService(store)

	n, err := svc.ManageMultipleMembers(context.Background(), ManageMultipleMemberRequest{
		Emails:      []string{"a@acme.test", "b@acme.test", "ghost@acme.test"},
		UserCompany: "Acme",
	})
	if err != nil {
		t.Fatalf("ManageMultipleMembers: %v", err)
	}
	if n != 2 {
		t.Errorf("modified = %d, want 2", n)
	}
	if !store.users["a@acme.test"].UserCompany.Valid || store.users["a@acme.test"].UserCompany.String != "Acme" {
		t.Errorf("company not set: %+v", store.users["a@acme.test"].UserCompany)
	}
}

func TestManageMultipleMembersRequiresEmails(t *testing.T) {
	svc := testService(newFakeStore())

	if _, err := svc.ManageMultipleMembers(context.Background(), ManageMultipleMemberRequest{UserCompany: "Acme"}); !isCode(err, CodeInvalidArgument) {
		t.Errorf("err = %v, want INVALID_ARGUMENT", err)
	}
}

func TestIncreaseEmployeeLimitAdds(t *testing.T) {
	store := newFakeStore()
	store.users["mgr@acme.test"] = &User{Email: "mgr@acme.test", Name: "Mgr", Role: RoleManager, EmployeeLimit: 5}
	svc := testService(store)

	res, err := svc.IncreaseEmployeeLimit(context.Background(), "mgr@acme.test", IncreaseLimitRequest{EmployeeLimit: 3})
	if err != nil {
		t.Fatalf("IncreaseEmployeeLimit: %v", err)
	}
	if res.EmployeeLimit != 8 {
		t.Errorf("employeeLimit = %d, want 8", res.EmployeeLimit)
	}
}

func TestIncreaseEmployeeLimitRejectsNonPositive(t *testing.T) {
	store := newFakeStore()
	store.users["mgr@acme.test"] = &User{Email: "mgr@acme.test", Name: "Mgr", Role: RoleManager, EmployeeLimit: 5}
	svc := testService(store)

	for _, delta := range []int{0, -2} {
		if _, err := svc.IncreaseEmployeeLimit(context.Background(), "mgr@acme.test", IncreaseLimitRequest{EmployeeLimit: delta}); !isCode(err, CodeInvalidArgument) {
			t.Errorf("delta %d: err = %v, want INVALID_ARGUMENT", delta, err)
		}
	}
	if store.users["mgr@acme.test"].EmployeeLimit != 5 {
		t.Errorf("limit changed to %d", store.users["mgr@acme.test"].EmployeeLimit)
	}
}

func TestFindUsersFilters(t *testing.T) {
	store := newFakeStore()
	store.users["a@acme.test"] = &User{Email: "a@acme.test", Name: "A", Role: RoleManager}
	store.users["a@acme.test"].UserCompany.String, store.users["a@acme.test"].UserCompany.Valid = "Acme", true
	store.users["b@other.test"] = &User{Email: "b@other.test", Name: "B", Role: RoleRequester}
	svc := testService(store)

	got, err := svc.FindUsers(context.Background(), UserFilter{UserCompany: "Acme", Role: RoleManager})
	if err != nil {
		t.Fatalf("FindUsers: %v", err)
	}
	if len(got) != 1 || got[0].Email != "a@acme.test" {
		t.Errorf("got %+v, want just a@acme.test", got)
	}
}
