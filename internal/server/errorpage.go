package server

import (
	"os"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// ErrorPage caches the not-found payload. It is loaded at most once, before
// serving begins, and never refreshed: every miss for the rest of the process
// lifetime serves the same bytes.
type ErrorPage struct {
	body    []byte
	hasBody bool
}

// LoadErrorPage reads the 404 payload from path. An empty path means no 404
// file is configured; a read failure is logged and degrades to the empty
// page. Neither case prevents the server from starting.
func LoadErrorPage(path string, logger *logrus.Logger) ErrorPage {
	if path == "" {
		logger.WithField("action", "error_page_skipped").Info("proceeding without 404 file")
		return ErrorPage{}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.WithFields(logrus.Fields{
			"action": "error_page_load_failed",
			"path":   path,
			"error":  err.Error(),
		}).Error("failed to load 404 file")
		return ErrorPage{}
	}

	logger.WithFields(logrus.Fields{
		"action": "error_page_loaded",
		"path":   path,
		"bytes":  len(data),
	}).Info("loaded 404 file")
	return ErrorPage{body: data, hasBody: true}
}

// Render writes the cached 404 response. Without a cached payload the
// response is a bare status with no body.
func (p ErrorPage) Render(c fiber.Ctx) error {
	if !p.hasBody {
		return c.SendStatus(fiber.StatusNotFound)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTML)
	return c.Status(fiber.StatusNotFound).Send(p.body)
}
