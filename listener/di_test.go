package listener

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

func freePort(t *testing.T) string {
	t.Helper()

	listenCfg := net.ListenConfig{}

	ln, err := listenCfg.Listen(context.Background(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)

	defer func() { _ = ln.Close() }()

	return ln.Addr().String()
}

func namedHandler(name string, handler http.Handler) fx.Option {
	return fx.Supply(fx.Annotate(handler, fx.As(new(http.Handler)), fx.ResultTags(fmt.Sprintf(`name:"%s"`, name))))
}

func TestNewModule_WithOptions(t *testing.T) {
	t.Parallel()

	addr := freePort(t)
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, "ok")
	})

	app := fxtest.New(t,
		fx.Supply(discardLogger()),
		namedHandler("inspect", handler),
		NewModule("inspect", WithAddress(addr)),
	)

	app.RequireStart()

	status, body := get(t, "http://"+addr)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body)

	app.RequireStop()
}

func TestNewModule_WithExternalConfig(t *testing.T) {
	t.Parallel()

	addr := freePort(t)
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	app := fxtest.New(t,
		fx.Supply(discardLogger()),
		fx.Supply(fx.Annotate(Config{Address: addr}, fx.ResultTags(`name:"metrics"`))),
		namedHandler("metrics", handler),
		NewModule("metrics"),
	)

	app.RequireStart()

	status, _ := get(t, "http://"+addr)
	assert.Equal(t, http.StatusNoContent, status)

	app.RequireStop()
}

func TestNewModule_TwoListeners(t *testing.T) {
	t.Parallel()

	addr1 := freePort(t)
	addr2 := freePort(t)

	app := fxtest.New(t,
		fx.Supply(discardLogger()),
		namedHandler("public", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = fmt.Fprint(w, "public")
		})),
		namedHandler("private", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = fmt.Fprint(w, "private")
		})),
		NewModule("public", WithAddress(addr1)),
		NewModule("private", WithAddress(addr2)),
	)

	app.RequireStart()

	_, body1 := get(t, "http://"+addr1)
	assert.Equal(t, "public", body1)

	_, body2 := get(t, "http://"+addr2)
	assert.Equal(t, "private", body2)

	app.RequireStop()
}

func TestNewModule_ShutdownStopsServer(t *testing.T) {
	t.Parallel()

	addr := freePort(t)

	app := fxtest.New(t,
		fx.Supply(discardLogger()),
		namedHandler("inspect", http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {})),
		NewModule("inspect", WithAddress(addr)),
	)

	app.RequireStart()
	app.RequireStop()

	dialer := net.Dialer{Timeout: 100 * time.Millisecond}

	conn, dialErr := dialer.DialContext(context.Background(), "tcp", addr)
	if dialErr == nil {
		_ = conn.Close()
	}

	assert.Error(t, dialErr, "should not be able to connect after shutdown")
}

func TestNewModule_ListenFailure(t *testing.T) {
	t.Parallel()

	listenCfg := net.ListenConfig{}

	ln, err := listenCfg.Listen(context.Background(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)

	defer func() { _ = ln.Close() }()

	app := fx.New(
		fx.Supply(discardLogger()),
		namedHandler("fail", http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {})),
		NewModule("fail", WithAddress(ln.Addr().String())),
		fx.NopLogger,
	)

	err = app.Start(context.Background())
	assert.Error(t, err, "should fail when port is already in use")
}

func TestNewModule_EmptyName(t *testing.T) {
	t.Parallel()

	app := fx.New(
		fx.Supply(discardLogger()),
		NewModule(""),
		fx.NopLogger,
	)

	require.ErrorIs(t, app.Err(), ErrEmptyName)
}
