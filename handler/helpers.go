package handler

import (
	ctxpkg "context"
	c "elverra-club-backend/context"
	"elverra-club-backend/logger"
	"elverra-club-backend/response"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"
)

var rxEmail = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+\\/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")

func validateEmail(email string) bool {
	if len(email) > 254 || !rxEmail.MatchString(email) {
		return false
	}
	return true
}

func isEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// memberID reads the member id the auth middleware stored in the
// request context.
func memberID(ctx ctxpkg.Context) (int64, bool) {
	raw := c.GetContextValue(ctx, c.ContextKeyMemberID)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// sendError writes a typed error response when the service returned
// one, or a generic failure otherwise.
func sendError(ctx ctxpkg.Context, w http.ResponseWriter, err error, logPrefix string) {
	var er response.ErrorResponse
	if errors.As(err, &er) {
		er.Send(ctx, w)
		return
	}
	logger.Errorf(ctx, "%s: %+v", logPrefix, err)
	response.SomethingWrong().Send(ctx, w)
}

func pathVar(vars map[string]string, key string) string {
	return strings.TrimSpace(vars[key])
}

func pathVarInt64(vars map[string]string, key string) (int64, bool) {
	v, err := strconv.ParseInt(pathVar(vars, key), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
