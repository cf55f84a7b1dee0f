package supervising

import (
	"net/http"

	"gradflow/domain"
	"gradflow/misc"
	"gradflow/session"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var SupervisorRequestsApiRoot = "/v1/supervisor-requests"

func RegisterSupervisorRequestsRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	requests := r.Group(SupervisorRequestsApiRoot, middleWares...)
	requests.GET("", HandleQueryRequests)
	requests.POST("", HandleSendRequest)
	requests.POST(":id/response", HandleRespondRequest)
}

func HandleQueryRequests(c *gin.Context) {
	query := domain.SupervisorRequestQuery{}
	if err := c.ShouldBindQuery(&query); err != nil {
		panic(err)
	}
	result, err := QueryRequestsFunc(&query, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, result)
}

func HandleSendRequest(c *gin.Context) {
	payload := domain.SupervisorRequestCreating{}
	if err := c.ShouldBindBodyWith(&payload, binding.JSON); err != nil {
		panic(err)
	}
	result, err := SendRequestFunc(&payload, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, result)
}

func HandleRespondRequest(c *gin.Context) {
	id, err := misc.BindingPathID(c)
	if err != nil {
		panic(err)
	}
	payload := domain.SupervisorRequestResponding{}
	if err := c.ShouldBindBodyWith(&payload, binding.JSON); err != nil {
		panic(err)
	}
	result, err := RespondRequestFunc(id, &payload, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, result)
}
