package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mbolis/quick-feedback/api"
	"github.com/mbolis/quick-feedback/model"
	"github.com/mbolis/quick-feedback/store"
)

var errOffline = errors.New("offline")

// fakeGateway answers from fields set by each test and counts calls.
type fakeGateway struct {
	checkAuth api.Result[model.User]
	login     api.Result[model.User]
	created   model.Feedback
	submitErr error
	fetch     api.Result[[]model.Feedback]

	fetchCalls int
	logins     []model.Credentials
}

func (g *fakeGateway) CheckAuth(context.Context) api.Result[model.User] {
	return g.checkAuth
}

func (g *fakeGateway) Login(_ context.Context, creds model.Credentials) api.Result[model.User] {
	g.logins = append(g.logins, creds)
	return g.login
}

func (g *fakeGateway) SubmitFeedback(context.Context, model.FeedbackInput) (model.Feedback, error) {
	return g.created, g.submitErr
}

func (g *fakeGateway) FetchFeedbacks(context.Context) api.Result[[]model.Feedback] {
	g.fetchCalls++
	return g.fetch
}

func feedbacks(ids ...string) []model.Feedback {
	out := make([]model.Feedback, len(ids))
	for i, id := range ids {
		out[i] = model.Feedback{ID: model.FeedbackID(id), Name: "user " + id}
	}
	return out
}

func ids(list []model.Feedback) []string {
	out := make([]string, len(list))
	for i, fb := range list {
		out[i] = string(fb.ID)
	}
	return out
}

func equalIDs(t *testing.T, got []model.Feedback, want ...string) {
	t.Helper()
	g := ids(got)
	if len(g) != len(want) {
		t.Fatalf("unexpected feedbacks: got %v want %v", g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("unexpected feedbacks: got %v want %v", g, want)
		}
	}
}

func TestInitialState(t *testing.T) {
	st := store.New(&fakeGateway{})
	state := st.State()
	if state.Session.Authenticated || state.Session.User != nil {
		t.Fatalf("expected no session, got %+v", state.Session)
	}
	if state.Feedbacks == nil || len(state.Feedbacks) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", state.Feedbacks)
	}
}

func TestCheckAuth(t *testing.T) {
	gw := &fakeGateway{checkAuth: api.Succeeded(model.User{Username: "admin"})}
	st := store.New(gw)
	ctx := context.Background()

	if !st.CheckAuth(ctx) {
		t.Fatal("expected check-auth to succeed")
	}
	state := st.State()
	if !state.Session.Authenticated || state.Session.User == nil || state.Session.User.Username != "admin" {
		t.Fatalf("unexpected session: %+v", state.Session)
	}

	// twice converges to the same state
	if !st.CheckAuth(ctx) || !st.Authenticated() {
		t.Fatal("second check-auth changed the outcome")
	}

	gw.checkAuth = api.Failed[model.User](errOffline)
	if st.CheckAuth(ctx) {
		t.Fatal("expected check-auth to fail")
	}
	state = st.State()
	if state.Session.Authenticated || state.Session.User != nil {
		t.Fatalf("failed check-auth must reset the session, got %+v", state.Session)
	}
	if !errors.Is(st.LastFailure(store.OpCheckAuth), errOffline) {
		t.Fatalf("failure reason not kept: %v", st.LastFailure(store.OpCheckAuth))
	}
}

func TestLoginWrongCredentials(t *testing.T) {
	gw := &fakeGateway{login: api.Failed[model.User](api.ErrRejected)}
	st := store.New(gw)

	if st.Login(context.Background(), model.Credentials{Username: "admin", Password: "wrong"}) {
		t.Fatal("expected login to fail")
	}
	if st.Authenticated() {
		t.Fatal("failed login must leave the store unauthenticated")
	}
	if !errors.Is(st.LastFailure(store.OpLogin), api.ErrRejected) {
		t.Fatalf("unexpected failure: %v", st.LastFailure(store.OpLogin))
	}
}

func TestLoginFailureResetsSession(t *testing.T) {
	gw := &fakeGateway{login: api.Succeeded(model.User{Username: "admin"})}
	st := store.New(gw)
	ctx := context.Background()

	if !st.Login(ctx, model.Credentials{Username: "admin", Password: "admin"}) {
		t.Fatal("expected login to succeed")
	}
	if st.LastFailure(store.OpLogin) != nil {
		t.Fatalf("success must clear the failure, got %v", st.LastFailure(store.OpLogin))
	}

	gw.login = api.Failed[model.User](errOffline)
	st.Login(ctx, model.Credentials{Username: "admin", Password: "admin"})
	if st.Authenticated() {
		t.Fatal("failed login must reset the session")
	}
}

func TestSubmitPrependsWhenListPopulated(t *testing.T) {
	gw := &fakeGateway{
		fetch:   api.Succeeded(feedbacks("2", "1")),
		created: model.Feedback{ID: "3"},
	}
	st := store.New(gw)
	ctx := context.Background()

	st.FetchFeedbacks(ctx)
	if err := st.SubmitFeedback(ctx, model.FeedbackInput{Name: "Ada", Email: "ada@x.com", Message: "hi"}); err != nil {
		t.Fatalf("SubmitFeedback err: %v", err)
	}
	equalIDs(t, st.State().Feedbacks, "3", "2", "1")
}

func TestSubmitDoesNotPrependToEmptyList(t *testing.T) {
	gw := &fakeGateway{created: model.Feedback{ID: "1", Name: "Ada"}}
	st := store.New(gw)
	ctx := context.Background()

	if err := st.SubmitFeedback(ctx, model.FeedbackInput{Name: "Ada", Email: "ada@x.com", Message: "hi"}); err != nil {
		t.Fatalf("SubmitFeedback err: %v", err)
	}
	equalIDs(t, st.State().Feedbacks)

	gw.fetch = api.Succeeded(feedbacks("1"))
	st.FetchFeedbacks(ctx)
	equalIDs(t, st.State().Feedbacks, "1")
}

func TestSubmitFailureIsReturned(t *testing.T) {
	gw := &fakeGateway{
		fetch:     api.Succeeded(feedbacks("1")),
		submitErr: errOffline,
	}
	st := store.New(gw)
	ctx := context.Background()
	st.FetchFeedbacks(ctx)

	err := st.SubmitFeedback(ctx, model.FeedbackInput{Name: "Ada", Email: "ada@x.com", Message: "hi"})
	if !errors.Is(err, errOffline) {
		t.Fatalf("expected the gateway error, got %v", err)
	}
	equalIDs(t, st.State().Feedbacks, "1")
	if !errors.Is(st.LastFailure(store.OpSubmitFeedback), errOffline) {
		t.Fatalf("failure reason not kept: %v", st.LastFailure(store.OpSubmitFeedback))
	}
}

func TestFetchFailureEmptiesList(t *testing.T) {
	gw := &fakeGateway{fetch: api.Succeeded(feedbacks("2", "1"))}
	st := store.New(gw)
	ctx := context.Background()

	got := st.FetchFeedbacks(ctx)
	equalIDs(t, got, "2", "1")

	gw.fetch = api.Failed[[]model.Feedback](errOffline)
	got = st.FetchFeedbacks(ctx)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty list, got %#v", got)
	}
	equalIDs(t, st.State().Feedbacks)
	if !errors.Is(st.LastFailure(store.OpFetchFeedbacks), errOffline) {
		t.Fatalf("failure reason not kept: %v", st.LastFailure(store.OpFetchFeedbacks))
	}
}

func TestClearFeedbacks(t *testing.T) {
	gw := &fakeGateway{fetch: api.Succeeded(feedbacks("1"))}
	st := store.New(gw)
	st.FetchFeedbacks(context.Background())

	st.ClearFeedbacks()
	equalIDs(t, st.State().Feedbacks)
	if gw.fetchCalls != 1 {
		t.Fatalf("clear must not hit the network, got %d fetches", gw.fetchCalls)
	}
}

func TestStateIsACopy(t *testing.T) {
	gw := &fakeGateway{fetch: api.Succeeded(feedbacks("1"))}
	st := store.New(gw)
	st.FetchFeedbacks(context.Background())

	state := st.State()
	state.Feedbacks[0].Name = "changed"
	if st.State().Feedbacks[0].Name == "changed" {
		t.Fatal("State leaked the internal slice")
	}
}

func TestSubscribe(t *testing.T) {
	gw := &fakeGateway{
		checkAuth: api.Succeeded(model.User{Username: "admin"}),
		fetch:     api.Succeeded(feedbacks("1")),
	}
	st := store.New(gw)
	ctx := context.Background()

	var seen []store.State
	cancel := st.Subscribe(func(s store.State) { seen = append(seen, s) })

	st.CheckAuth(ctx)
	st.FetchFeedbacks(ctx)
	if len(seen) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(seen))
	}
	if !seen[0].Session.Authenticated || len(seen[1].Feedbacks) != 1 {
		t.Fatalf("unexpected notifications: %+v", seen)
	}

	cancel()
	st.ClearFeedbacks()
	if len(seen) != 2 {
		t.Fatalf("cancelled subscriber still notified")
	}
}
