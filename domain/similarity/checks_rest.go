package similarity

import (
	"net/http"

	"gradflow/session"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var DuplicateChecksApiRoot = "/v1/duplicate-checks"

func RegisterDuplicateChecksRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	checks := r.Group(DuplicateChecksApiRoot, middleWares...)
	checks.POST("", HandleCheckDuplicate)
}

func HandleCheckDuplicate(c *gin.Context) {
	payload := DuplicateChecking{}
	if err := c.ShouldBindBodyWith(&payload, binding.JSON); err != nil {
		panic(err)
	}
	report, err := CheckProjectAbstractFunc(&payload, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, report)
}
