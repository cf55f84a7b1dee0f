package milestone

import (
	"net/http"

	"gradflow/domain"
	"gradflow/session"

	"github.com/gin-gonic/gin"
)

var MilestonesApiRoot = "/v1/project-milestones"

func RegisterMilestonesRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	milestones := r.Group(MilestonesApiRoot, middleWares...)
	milestones.GET("", HandleQueryMilestones)
}

func HandleQueryMilestones(c *gin.Context) {
	query := domain.MilestoneQuery{}
	if err := c.ShouldBindQuery(&query); err != nil {
		panic(err)
	}
	result, err := QueryMilestonesFunc(&query, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, result)
}
