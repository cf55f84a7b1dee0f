package testinfra

import (
	"context"
	"io/ioutil"
	"net/http"
	"net/http/httptest"

	"gradflow/authority"
	"gradflow/session"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
)

// BuildSecCtx builds a session for tests, perms are global role names.
func BuildSecCtx(uid types.ID, perms ...string) *session.Session {
	role := ""
	if len(perms) > 0 {
		role = perms[0]
	}
	return &session.Session{
		Token:    "test_token",
		Identity: session.Identity{ID: uid, Name: "user" + uid.String(), Role: role},
		Perms:    authority.Permissions(perms),
		Context:  context.Background(),
	}
}

// ExecuteRequest drives a request through the engine and returns status and body.
func ExecuteRequest(req *http.Request, engine *gin.Engine) (int, string, error) {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	resp := w.Result()
	defer resp.Body.Close()
	bodyBytes, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, "", err
	}
	return resp.StatusCode, string(bodyBytes), nil
}
