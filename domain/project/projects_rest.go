package project

import (
	"net/http"

	"gradflow/domain"
	"gradflow/misc"
	"gradflow/session"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var ProjectsApiRoot = "/v1/projects"

func RegisterProjectsRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	projects := r.Group(ProjectsApiRoot, middleWares...)
	projects.GET("", HandleQueryProjects)
	projects.POST("", HandleCreateProject)
	projects.GET(":id", HandleDetailProject)

	projects.POST(":id/submission", HandleSubmitProposal)
	projects.POST(":id/review", HandleReviewProposal)
	projects.POST(":id/phase", HandleAdvancePhase)
}

func HandleQueryProjects(c *gin.Context) {
	query := domain.ProjectQuery{}
	if err := c.ShouldBindQuery(&query); err != nil {
		panic(err)
	}
	result, err := QueryProjectsFunc(&query, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, result)
}

func HandleCreateProject(c *gin.Context) {
	payload := domain.ProjectCreating{}
	if err := c.ShouldBindBodyWith(&payload, binding.JSON); err != nil {
		panic(err)
	}
	result, err := CreateProjectFunc(&payload, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, result)
}

func HandleDetailProject(c *gin.Context) {
	id, err := misc.BindingPathID(c)
	if err != nil {
		panic(err)
	}
	result, err := DetailProjectFunc(id, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, result)
}

func HandleSubmitProposal(c *gin.Context) {
	id, err := misc.BindingPathID(c)
	if err != nil {
		panic(err)
	}
	result, err := SubmitProposalFunc(id, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, result)
}

func HandleReviewProposal(c *gin.Context) {
	id, err := misc.BindingPathID(c)
	if err != nil {
		panic(err)
	}
	payload := domain.ProposalReview{}
	if err := c.ShouldBindBodyWith(&payload, binding.JSON); err != nil {
		panic(err)
	}
	result, err := ReviewProposalFunc(id, &payload, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, result)
}

func HandleAdvancePhase(c *gin.Context) {
	id, err := misc.BindingPathID(c)
	if err != nil {
		panic(err)
	}
	payload := domain.PhaseAdvancing{}
	if err := c.ShouldBindBodyWith(&payload, binding.JSON); err != nil {
		panic(err)
	}
	result, err := AdvancePhaseFunc(id, &payload, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, result)
}
