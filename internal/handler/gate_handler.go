package handler

import (
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/locvowork/erp_office_note/internal/logger"
	"github.com/locvowork/erp_office_note/internal/service/serviceutils"
)

const (
	SessionName      = "officenote"
	authenticatedKey = "authenticated"
	passwordLength   = 4
)

// passwordFields are the form fields of the one-character password boxes, in order.
var passwordFields = func() []string {
	fields := make([]string, passwordLength)
	for i := range fields {
		fields[i] = "pw_" + string(rune('0'+i))
	}
	return fields
}()

// GateHandler is the shared-password gate in front of the upload pages. It only keeps
// casual visitors out of the UI and is not an access control layer.
type GateHandler struct {
	password string
}

func NewGateHandler(password string) *GateHandler {
	return &GateHandler{password: password}
}

// Authenticated reports whether the session already passed the gate.
func (h *GateHandler) Authenticated(c echo.Context) bool {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return false
	}
	ok, _ := sess.Values[authenticatedKey].(bool)
	return ok
}

// LoginHandler joins the password boxes and compares them with the shared password.
// An empty shared password accepts empty input.
func (h *GateHandler) LoginHandler(c echo.Context) error {
	ctx := c.Request().Context()

	var sb strings.Builder
	for _, f := range passwordFields {
		sb.WriteString(c.FormValue(f))
	}
	if sb.String() != h.password {
		logger.InfoLog(ctx, "gate: incorrect password")
		return c.Render(http.StatusUnauthorized, "index.html", pageData{
			PasswordFields: passwordFields,
			LoginError:     "Incorrect password. Please try again.",
		})
	}

	sess, err := session.Get(SessionName, c)
	if err != nil {
		return err
	}
	sess.Options = &sessions.Options{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode}
	sess.Values[authenticatedKey] = true
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return err
	}
	logger.InfoLog(ctx, "gate: session authenticated")
	return c.Redirect(http.StatusSeeOther, "/")
}

// RequireSession keeps unauthenticated sessions out of the wrapped routes: API calls get a
// 401, page posts are sent back to the gate.
func (h *GateHandler) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if h.Authenticated(c) {
			return next(c)
		}
		if strings.HasPrefix(c.Path(), "/api/") {
			return serviceutils.ResponseError(c, http.StatusUnauthorized, "Password required", nil)
		}
		return c.Redirect(http.StatusSeeOther, "/")
	}
}
