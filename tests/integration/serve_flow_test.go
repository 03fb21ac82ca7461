package integration

import (
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"github.com/T0mstone/simple-http-server/internal/config"
	"github.com/T0mstone/simple-http-server/internal/routes"
	"github.com/T0mstone/simple-http-server/internal/server"
)

// writeSite materializes a config file plus the files it routes to and
// returns the config path.
func writeSite(t *testing.T, configBody string, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir failed: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}

	configPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(configPath, []byte(configBody), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return configPath
}

// buildApp runs the full startup pipeline (minus the bind) against a config
// file and returns the resulting Fiber app.
func buildApp(t *testing.T, configPath string) *fiber.App {
	t.Helper()

	cfg, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("config load failed: %v", err)
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	table := routes.Build(cfg.GetRoutes, cfg.Root, logger)
	app, err := server.NewApp(server.AppOptions{
		Logger:    logger,
		Table:     table,
		ErrorPage: server.LoadErrorPage(cfg.NotFoundPath(), logger),
		Root:      cfg.Root,
	})
	if err != nil {
		t.Fatalf("failed to create app: %v", err)
	}
	return app
}

func fetch(t *testing.T, app *fiber.App, method, target string) (int, string, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, target, nil))
	if err != nil {
		t.Fatalf("app test failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, resp.Header.Get(fiber.HeaderContentType), string(body)
}

func TestServeFlowFromConfigFile(t *testing.T) {
	configPath := writeSite(t, `
addr = "127.0.0.1:0"
404 = "404.html"

[get_routes]
direct = ["a.txt", { type = "application/octet-stream", path = "blob.bin" }]
index = "index.html"
"hello" = "pages/hello.html"
"%direct" = "d.html"
`, map[string]string{
		"a.txt":            "alpha",
		"blob.bin":         "\x00\x01",
		"index.html":       "<p>home</p>",
		"pages/hello.html": "<p>hello</p>",
		"d.html":           "<p>direct</p>",
		"404.html":         "<h1>nope</h1>",
	})

	app := buildApp(t, configPath)

	status, contentType, body := fetch(t, app, "GET", "/a.txt")
	if status != fiber.StatusOK || contentType != "text/plain" || body != "alpha" {
		t.Fatalf("direct route broken: %d %q %q", status, contentType, body)
	}

	status, contentType, _ = fetch(t, app, "GET", "/blob.bin")
	if status != fiber.StatusOK || contentType != "application/octet-stream" {
		t.Fatalf("explicit-type route broken: %d %q", status, contentType)
	}

	status, _, body = fetch(t, app, "GET", "/hello")
	if status != fiber.StatusOK || body != "<p>hello</p>" {
		t.Fatalf("map route broken: %d %q", status, body)
	}

	status, _, body = fetch(t, app, "GET", "/")
	if status != fiber.StatusOK || body != "<p>home</p>" {
		t.Fatalf("index route broken: %d %q", status, body)
	}

	status, _, body = fetch(t, app, "GET", "/direct")
	if status != fiber.StatusOK || body != "<p>direct</p>" {
		t.Fatalf("reserved %%direct remap broken: %d %q", status, body)
	}

	status, contentType, body = fetch(t, app, "GET", "/unrouted")
	if status != fiber.StatusNotFound || contentType != fiber.MIMETextHTML || body != "<h1>nope</h1>" {
		t.Fatalf("cached 404 broken: %d %q %q", status, contentType, body)
	}

	status, _, _ = fetch(t, app, "POST", "/a.txt")
	if status != fiber.StatusMethodNotAllowed {
		t.Fatalf("non-GET should get 405, got %d", status)
	}
}

func TestServeFlowWithoutRoutesOr404(t *testing.T) {
	configPath := writeSite(t, `addr = "127.0.0.1:0"`, nil)
	app := buildApp(t, configPath)

	status, _, body := fetch(t, app, "GET", "/anything")
	if status != fiber.StatusNotFound || body != "" {
		t.Fatalf("empty config should serve bare 404s, got %d %q", status, body)
	}
}

func TestBindAndServeOverRealSocket(t *testing.T) {
	configPath := writeSite(t, `
addr = "host-that-cannot-resolve"
failsafe_addrs = ["127.0.0.1:0"]

[get_routes]
direct = ["a.txt"]
`, map[string]string{"a.txt": "alpha"})

	cfg, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("config load failed: %v", err)
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	ln := server.Bind(cfg.BindCandidates(), logger)
	if ln == nil {
		t.Fatalf("expected the failsafe address to bind")
	}
	ln.Close()
}
