package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/beatstore/internal/config"
	"github.com/polkiloo/beatstore/internal/domain/model"
	"github.com/polkiloo/beatstore/internal/feed"
	testhelpers "github.com/polkiloo/beatstore/internal/test"
	"github.com/polkiloo/beatstore/internal/worker"
)

type adminBootstrapperStub struct {
	calls int
	email string
	err   error
}

func (s *adminBootstrapperStub) EnsureAdmin(ctx context.Context, email, password string) (*model.User, error) {
	s.calls++
	s.email = email
	if s.err != nil {
		return nil, s.err
	}
	return &model.User{ID: "usr_admin", Email: email, Role: model.RoleAdmin}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestFulfiller() *worker.Fulfiller {
	return worker.NewFulfiller(&testhelpers.FulfillmentFacadeStub{}, 10*time.Millisecond, 1, 1, discardLogger())
}

func TestNewHTTPServer(t *testing.T) {
	cfg := &config.Config{RunAddress: ":9999"}
	router := gin.New()
	server := newHTTPServer(serverParams{Config: cfg, Router: router})
	if server.Addr != ":9999" {
		t.Fatalf("expected address :9999, got %q", server.Addr)
	}
	if server.Handler != router {
		t.Fatalf("expected handler to be router")
	}
}

func TestNewHTTPServerClosesFeedOnShutdown(t *testing.T) {
	hub := feed.NewHub(0, discardLogger())
	server := newHTTPServer(serverParams{Config: &config.Config{RunAddress: "127.0.0.1:0"}, Router: gin.New(), Hub: hub})

	sub, err := feed.Subscribe(context.Background(), hub, func(ctx context.Context) ([]int, error) {
		return []int{1}, nil
	})
	if err != nil {
		t.Fatalf("subscribe returned error: %v", err)
	}

	if err := server.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown returned error: %v", err)
	}

	select {
	case <-sub.Done():
	case <-time.After(time.Second):
		t.Fatal("expected subscription to end on server shutdown")
	}
	if hub.Len() != 0 {
		t.Fatalf("expected no live subscriptions, got %d", hub.Len())
	}
}

func TestNewFulfillerUsesConfig(t *testing.T) {
	f := newFulfiller(workerParams{
		Facade: &testhelpers.FulfillmentFacadeStub{},
		Config: &config.Config{FulfillmentPollInterval: 15 * time.Second, FulfillmentBatch: 3, FulfillmentWorkers: 4},
		Logger: discardLogger(),
	})
	if f == nil {
		t.Fatal("expected fulfiller instance")
	}
}

func TestModuleAdaptsStoreFacade(t *testing.T) {
	var _ worker.FulfillmentFacade = (*StoreFacade)(nil)
	var _ AdminBootstrapper = (*StoreFacade)(nil)
}

func TestRegisterLifecycleStartStop(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}
	admins := &adminBootstrapperStub{}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     discardLogger(),
		Server:     server,
		Worker:     newTestFulfiller(),
		Admins:     admins,
		Config:     &config.Config{ShutdownTimeout: 100 * time.Millisecond},
	})

	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected one hook registered, got %d", len(recorder.Hooks))
	}

	hook := recorder.Hooks[0]
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := hook.OnStart(ctx); err != nil {
		t.Fatalf("on start failed: %v", err)
	}
	if admins.calls != 0 {
		t.Fatalf("admin bootstrap must be skipped without an admin email")
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = hook.OnStop(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected on stop to finish")
	}
}

func TestRegisterLifecycleBootstrapsAdmin(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	admins := &adminBootstrapperStub{}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: &testhelpers.ShutdownerStub{},
		Logger:     discardLogger(),
		Server:     &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()},
		Worker:     newTestFulfiller(),
		Admins:     admins,
		Config:     &config.Config{AdminEmail: "owner@example.com", AdminPassword: "secret1", ShutdownTimeout: time.Second},
	})

	if err := recorder.Start(context.Background()); err != nil {
		t.Fatalf("on start failed: %v", err)
	}
	defer func() { _ = recorder.Stop(context.Background()) }()

	if admins.calls != 1 || admins.email != "owner@example.com" {
		t.Fatalf("expected admin bootstrap for owner@example.com, got %d calls for %q", admins.calls, admins.email)
	}
}

func TestRegisterLifecycleFailsOnAdminError(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	bootErr := errors.New("database unavailable")

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: &testhelpers.ShutdownerStub{},
		Logger:     discardLogger(),
		Server:     &http.Server{Addr: "127.0.0.1:0"},
		Worker:     newTestFulfiller(),
		Admins:     &adminBootstrapperStub{err: bootErr},
		Config:     &config.Config{AdminEmail: "owner@example.com", AdminPassword: "secret1"},
	})

	if err := recorder.Start(context.Background()); !errors.Is(err, bootErr) {
		t.Fatalf("expected bootstrap error, got %v", err)
	}
}

func TestRegisterLifecycleShutdownOnServerError(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     discardLogger(),
		Server:     &http.Server{Addr: "bad addr"},
		Worker:     newTestFulfiller(),
		Admins:     &adminBootstrapperStub{},
		Config:     &config.Config{ShutdownTimeout: time.Second},
	})

	hook := recorder.Hooks[0]
	if err := hook.OnStart(context.Background()); err != nil {
		t.Fatalf("on start returned error: %v", err)
	}

	select {
	case <-shutdowner.Called:
	case <-time.After(time.Second):
		t.Fatal("expected shutdown to be triggered on server error")
	}

	_ = hook.OnStop(context.Background())
}

func TestLifecycleRecorderRunsHooks(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	var order []string
	recorder.Append(fx.Hook{
		OnStart: func(context.Context) error { order = append(order, "start-1"); return nil },
		OnStop:  func(context.Context) error { order = append(order, "stop-1"); return nil },
	})
	recorder.Append(fx.Hook{
		OnStart: func(context.Context) error { order = append(order, "start-2"); return nil },
		OnStop:  func(context.Context) error { order = append(order, "stop-2"); return errors.New("stop failed") },
	})

	if err := recorder.Start(context.Background()); err != nil {
		t.Fatalf("start returned error: %v", err)
	}
	if err := recorder.Stop(context.Background()); err == nil {
		t.Fatal("expected stop error to be reported")
	}

	want := []string{"start-1", "start-2", "stop-2", "stop-1"}
	if len(order) != len(want) {
		t.Fatalf("unexpected hook order %v", order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("unexpected hook order %v", order)
		}
	}
}

func TestShutdownerStub(t *testing.T) {
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	if err := shutdowner.Shutdown(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	select {
	case <-shutdowner.Called:
	default:
		t.Fatal("expected shutdown notification")
	}
}
