package team

import (
	"net/http"

	"gradflow/domain"
	"gradflow/misc"
	"gradflow/session"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	TeamMembersApiRoot = "/v1/team-members"
	ProjectsApiRoot    = "/v1/projects"
)

func RegisterTeamRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	members := r.Group(TeamMembersApiRoot, middleWares...)
	members.GET("", HandleQueryTeamMembers)
	members.POST(":id/response", HandleRespondInvitation)
	members.DELETE(":id", HandleLeaveTeam)

	projects := r.Group(ProjectsApiRoot, middleWares...)
	projects.POST(":id/invitations", HandleInviteMember)
	projects.POST(":id/matches", HandleFindMatches)
	projects.GET(":id/matches", HandleQueryCachedMatches)
}

func HandleQueryTeamMembers(c *gin.Context) {
	query := domain.TeamMemberQuery{}
	if err := c.ShouldBindQuery(&query); err != nil {
		panic(err)
	}
	result, err := QueryTeamMembersFunc(&query, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, result)
}

func HandleInviteMember(c *gin.Context) {
	id, err := misc.BindingPathID(c)
	if err != nil {
		panic(err)
	}
	payload := domain.MemberInviting{}
	if err := c.ShouldBindBodyWith(&payload, binding.JSON); err != nil {
		panic(err)
	}
	result, err := InviteMemberFunc(id, &payload, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, result)
}

func HandleFindMatches(c *gin.Context) {
	id, err := misc.BindingPathID(c)
	if err != nil {
		panic(err)
	}
	query := domain.MatchQuery{}
	if err := c.ShouldBindQuery(&query); err != nil {
		panic(err)
	}
	result, err := FindMatchesFunc(id, &query, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, result)
}

func HandleQueryCachedMatches(c *gin.Context) {
	id, err := misc.BindingPathID(c)
	if err != nil {
		panic(err)
	}
	result, err := QueryCachedMatchesFunc(id, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, result)
}

func HandleRespondInvitation(c *gin.Context) {
	id, err := misc.BindingPathID(c)
	if err != nil {
		panic(err)
	}
	payload := domain.InvitationResponding{}
	if err := c.ShouldBindBodyWith(&payload, binding.JSON); err != nil {
		panic(err)
	}
	result, err := RespondInvitationFunc(id, &payload, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, result)
}

func HandleLeaveTeam(c *gin.Context) {
	id, err := misc.BindingPathID(c)
	if err != nil {
		panic(err)
	}
	if err := LeaveTeamFunc(id, session.ExtractSessionFromGinContext(c)); err != nil {
		panic(err)
	}
	c.Status(http.StatusNoContent)
}
