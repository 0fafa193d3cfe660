package form_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mbolis/quick-feedback/form"
	"github.com/mbolis/quick-feedback/model"
)

type fakeAuthenticator struct {
	ok    bool
	calls []model.Credentials
}

func (a *fakeAuthenticator) Login(_ context.Context, creds model.Credentials) bool {
	a.calls = append(a.calls, creds)
	return a.ok
}

func TestLoginRequiresBothFields(t *testing.T) {
	cases := []model.Credentials{
		{},
		{Username: "admin"},
		{Password: "admin"},
	}

	for _, creds := range cases {
		auth := &fakeAuthenticator{ok: true}
		f := form.NewLoginForm(auth)
		f.SetUsername(creds.Username)
		f.SetPassword(creds.Password)

		ok, err := f.Submit(context.Background())
		if ok || !errors.Is(err, form.ErrMissingCredentials) {
			t.Fatalf("%+v: expected ErrMissingCredentials, got ok=%v err=%v", creds, ok, err)
		}
		if len(auth.calls) != 0 {
			t.Fatalf("%+v: no login call expected", creds)
		}
	}
}

func TestLoginSubmit(t *testing.T) {
	auth := &fakeAuthenticator{}
	f := form.NewLoginForm(auth)
	f.SetUsername("admin")
	f.SetPassword("wrong")

	ok, err := f.Submit(context.Background())
	if ok || err != nil {
		t.Fatalf("expected plain failure, got ok=%v err=%v", ok, err)
	}
	if f.Credentials().Password != "wrong" {
		t.Fatal("failed login should keep the typed password")
	}

	auth.ok = true
	f.SetPassword("admin")
	ok, err = f.Submit(context.Background())
	if !ok || err != nil {
		t.Fatalf("expected success, got ok=%v err=%v", ok, err)
	}
	if len(auth.calls) != 2 || auth.calls[1] != (model.Credentials{Username: "admin", Password: "admin"}) {
		t.Fatalf("unexpected calls: %+v", auth.calls)
	}
	if f.Credentials().Password != "" {
		t.Fatal("password should be cleared after login")
	}
}
