package server

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/T0mstone/simple-http-server/internal/logging"
	"github.com/T0mstone/simple-http-server/internal/routes"
)

// AppOptions controls how the Fiber application serves the route table.
type AppOptions struct {
	Logger    *logrus.Logger
	Table     *routes.Table
	ErrorPage ErrorPage
	// Root is the config file's directory; file paths under it are shortened
	// in access logs.
	Root string
}

const contextKeyRequestID = "_shs_request_id"

// NewApp builds a Fiber application that serves GET requests from the route
// table. The table and the error page are immutable, so every concurrent
// handler shares them without locking.
func NewApp(opts AppOptions) (*fiber.App, error) {
	if opts.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if opts.Table == nil {
		return nil, errors.New("route table is required")
	}

	app := fiber.New(fiber.Config{
		CaseSensitive: true,
	})

	app.Use(recover.New())
	app.Use(requestIDMiddleware())

	app.All("/*", func(c fiber.Ctx) error {
		return handleRequest(c, opts)
	})

	return app, nil
}

// requestIDMiddleware 为每个请求生成 X-Request-ID，便于日志关联。
func requestIDMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		id := uuid.NewString()
		c.Locals(contextKeyRequestID, id)
		c.Set("X-Request-ID", id)
		return c.Next()
	}
}

func requestID(c fiber.Ctx) string {
	if id, ok := c.Locals(contextKeyRequestID).(string); ok {
		return id
	}
	return ""
}

func handleRequest(c fiber.Ctx, opts AppOptions) error {
	fields := logging.RequestFields(requestID(c), c.Method(), c.Path())

	if c.Method() != fiber.MethodGet {
		opts.Logger.WithFields(fields).Info("unsupported request method")
		return c.SendStatus(fiber.StatusMethodNotAllowed)
	}

	route, ok := opts.Table.Resolve(c.Path())
	if !ok {
		opts.Logger.WithFields(fields).Info("blocked (no configured route)")
		return opts.ErrorPage.Render(c)
	}

	fields["file"] = displayPath(route.Path, opts.Root)
	body, err := os.ReadFile(route.Path)
	if err != nil {
		// the specific OS error stays server-side
		opts.Logger.WithFields(fields).WithField("error", err.Error()).Error("file read failed")
		if errors.Is(err, fs.ErrNotExist) {
			return opts.ErrorPage.Render(c)
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Status(fiber.StatusInternalServerError).SendString("I/O error")
	}

	opts.Logger.WithFields(fields).Info("serving file")
	if route.ContentType != "" {
		c.Set(fiber.HeaderContentType, route.ContentType)
	} else {
		c.Response().Header.SetNoDefaultContentType(true)
	}
	return c.Send(body)
}

// displayPath strips the root prefix for logging, mirroring the config
// author's own relative spelling where possible.
func displayPath(path, root string) string {
	if root == "" {
		return path
	}
	prefix := strings.TrimSuffix(root, string(filepath.Separator)) + string(filepath.Separator)
	return strings.TrimPrefix(path, prefix)
}
