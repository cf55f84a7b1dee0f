package milestone_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gradflow/bizerror"
	"gradflow/domain"
	"gradflow/domain/milestone"
	"gradflow/session"
	"gradflow/testinfra"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
)

func TestQueryMilestonesAPI(t *testing.T) {
	RegisterTestingT(t)

	router := gin.Default()
	router.Use(bizerror.ErrorHandling())
	milestone.RegisterMilestonesRestAPI(router)

	t.Run("should be able to validate parameters", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, milestone.MilestonesApiRoot, nil)
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusBadRequest))
		Expect(strings.Contains(body, "'ProjectID' failed on the 'required' tag")).To(BeTrue())
	})

	t.Run("should be able to query milestones of a project", func(t *testing.T) {
		demoTime := types.TimestampOfDate(2025, 1, 1, 1, 0, 0, 0, time.Now().Location())
		timeBytes, err := demoTime.Time().MarshalJSON()
		Expect(err).To(BeNil())
		timeString := strings.Trim(string(timeBytes), `"`)

		var q1 *domain.MilestoneQuery
		milestone.QueryMilestonesFunc = func(q *domain.MilestoneQuery, sec *session.Session) (*[]domain.ProjectMilestone, error) {
			q1 = q
			return &[]domain.ProjectMilestone{{ID: 123, ProjectID: q.ProjectID,
				Phase: domain.MilestonePhaseProposal, Status: domain.MilestoneStatusCompleted,
				ReviewerID: 500, Feedback: "well done",
				CompletedAt: demoTime, CreateTime: demoTime, UpdateTime: demoTime}}, nil
		}
		req := httptest.NewRequest(http.MethodGet, milestone.MilestonesApiRoot+"?projectId=11", nil)
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusOK))
		Expect(body).To(MatchJSON(`[{"id": "123", "projectId": "11", "phase": "proposal",
			"status": "completed", "reviewerId": "500", "feedback": "well done",
			"completedAt": "` + timeString + `", "createTime": "` + timeString + `", "updateTime": "` + timeString + `"}]`))
		Expect(*q1).To(Equal(domain.MilestoneQuery{ProjectID: 11}))
	})
}
