package store

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davixiao/MeetTheDev/internal/core/domain"
	"github.com/davixiao/MeetTheDev/internal/core/ports"
)

func startStore(t *testing.T, s *Store) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- s.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		assert.ErrorIs(t, <-errc, context.Canceled)
	})
}

func TestStore_LoginChainsUserAndProfile(t *testing.T) {
	f := &fakeAPI{
		loginFn:          func(ports.LoginInput) (string, error) { return "tok", nil },
		loadUserFn:       func() (*domain.User, error) { return &domain.User{ID: "u1", Name: "A"}, nil },
		currentProfileFn: func() (*domain.Profile, error) { return &domain.Profile{ID: "p1"}, nil },
	}
	tokens := &memTokens{}
	a := newTestActions(f, tokens)
	s := New(Initial(""), a)
	startStore(t, s)

	s.Exec(a.Login("a@x.com", "secret1"))

	require.Eventually(t, func() bool {
		st := s.State()
		return st.Auth.User != nil && st.Profile.Profile != nil
	}, time.Second, 5*time.Millisecond)

	st := s.State()
	assert.True(t, st.Auth.IsAuthenticated)
	assert.Equal(t, "tok", st.Auth.Token)
	assert.Equal(t, "A", st.Auth.User.Name)
	assert.Equal(t, "p1", st.Profile.Profile.ID)
	assert.Equal(t, "tok", tokens.token)
}

func TestStore_AlertsExpire(t *testing.T) {
	a := newTestActions(&fakeAPI{}, &memTokens{})
	a.alertTTL = 100 * time.Millisecond
	s := New(Initial(""), a)
	startStore(t, s)

	s.Exec(a.SetAlertCmd("Profile Created", AlertSuccess))

	require.Eventually(t, func() bool { return len(s.State().Alerts) == 1 }, time.Second, time.Millisecond)
	require.Eventually(t, func() bool { return len(s.State().Alerts) == 0 }, time.Second, 5*time.Millisecond)
}

func TestStore_BatchOfFieldErrors(t *testing.T) {
	f := &fakeAPI{registerFn: func(ports.RegisterInput) (string, error) {
		return "", validationErr("Name is required", "Please include a valid email")
	}}
	a := NewActions(f, &memTokens{}, time.Second, time.Hour, zerolog.Nop())
	s := New(Initial(""), a)
	startStore(t, s)

	s.Exec(a.Register(ports.RegisterInput{}))

	require.Eventually(t, func() bool { return len(s.State().Alerts) == 2 }, time.Second, 5*time.Millisecond)
	st := s.State()
	assert.False(t, st.Auth.IsAuthenticated)
	assert.False(t, st.Auth.Loading)
}

func TestStore_Subscribe(t *testing.T) {
	s := New(Initial(""), nil)
	sub := s.Subscribe()
	startStore(t, s)

	s.Dispatch(LoginSuccess{Token: "tok"})

	select {
	case st := <-sub:
		assert.True(t, st.Auth.IsAuthenticated)
	case <-time.After(time.Second):
		t.Fatal("no state published")
	}
}

func TestStore_SubscribeClosedOnStop(t *testing.T) {
	s := New(Initial(""), nil)
	sub := s.Subscribe()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = s.Run(ctx)
		close(done)
	}()

	cancel()
	<-done

	_, ok := <-sub
	assert.False(t, ok)
	s.Dispatch(Logout{})
}

func TestStore_SubscribeAfterStop(t *testing.T) {
	s := New(Initial(""), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, s.Run(ctx), context.Canceled)

	select {
	case _, ok := <-s.Subscribe():
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("subscription after stop was left open")
	}
}
