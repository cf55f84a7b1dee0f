package supervising_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gradflow/bizerror"
	"gradflow/domain"
	"gradflow/domain/supervising"
	"gradflow/session"
	"gradflow/testinfra"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
)

func TestSendRequestAPI(t *testing.T) {
	RegisterTestingT(t)

	router := gin.Default()
	router.Use(bizerror.ErrorHandling())
	supervising.RegisterSupervisorRequestsRestAPI(router)

	t.Run("should be able to validate parameters", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, supervising.SupervisorRequestsApiRoot, strings.NewReader("{}"))
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusBadRequest))
		Expect(strings.Contains(body, "bad_request.validation_failed")).To(BeTrue())
		Expect(strings.Contains(body, "'SupervisorID' failed on the 'required' tag")).To(BeTrue())
	})

	t.Run("should surface conflicts from the service", func(t *testing.T) {
		supervising.SendRequestFunc = func(c *domain.SupervisorRequestCreating, sec *session.Session) (*domain.SupervisorRequest, error) {
			return nil, bizerror.PendingRequestExists()
		}
		req := httptest.NewRequest(http.MethodPost, supervising.SupervisorRequestsApiRoot,
			strings.NewReader(`{"supervisorId":"500"}`))
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusConflict))
		Expect(body).To(MatchJSON(`{"code": "supervising.pending_request_exists",
			"message": "an identical request is still pending"}`))
	})

	t.Run("should be able to send a request", func(t *testing.T) {
		demoTime := types.TimestampOfDate(2025, 1, 1, 1, 0, 0, 0, time.Now().Location())
		timeBytes, err := demoTime.Time().MarshalJSON()
		Expect(err).To(BeNil())
		timeString := strings.Trim(string(timeBytes), `"`)

		var c1 *domain.SupervisorRequestCreating
		supervising.SendRequestFunc = func(c *domain.SupervisorRequestCreating, sec *session.Session) (*domain.SupervisorRequest, error) {
			c1 = c
			return &domain.SupervisorRequest{ID: 123, StudentID: 100, SupervisorID: c.SupervisorID,
				ProjectID: c.ProjectID, Message: c.Message, Status: domain.RequestStatusPending,
				CreateTime: demoTime, RespondedAt: demoTime}, nil
		}
		reqBody := `{"supervisorId":"500", "projectId":"11", "message":"please supervise"}`
		req := httptest.NewRequest(http.MethodPost, supervising.SupervisorRequestsApiRoot, strings.NewReader(reqBody))
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusOK))
		Expect(body).To(MatchJSON(`{"id": "123", "studentId": "100", "supervisorId": "500", "projectId": "11",
			"message": "please supervise", "status": "pending", "supervisorResponse": "",
			"createTime": "` + timeString + `", "respondedAt": "` + timeString + `"}`))
		Expect(*c1).To(Equal(domain.SupervisorRequestCreating{SupervisorID: 500, ProjectID: 11,
			Message: "please supervise"}))
	})
}

func TestRespondRequestAPI(t *testing.T) {
	RegisterTestingT(t)

	router := gin.Default()
	router.Use(bizerror.ErrorHandling())
	supervising.RegisterSupervisorRequestsRestAPI(router)

	t.Run("should be able to validate parameters", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, supervising.SupervisorRequestsApiRoot+"/123/response",
			strings.NewReader(`{"action":"maybe"}`))
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusBadRequest))
		Expect(strings.Contains(body, "'Action' failed on the 'oneof' tag")).To(BeTrue())
	})

	t.Run("should be able to respond to a request", func(t *testing.T) {
		demoTime := types.TimestampOfDate(2025, 1, 1, 1, 0, 0, 0, time.Now().Location())
		timeBytes, err := demoTime.Time().MarshalJSON()
		Expect(err).To(BeNil())
		timeString := strings.Trim(string(timeBytes), `"`)

		var id1 types.ID
		var r1 *domain.SupervisorRequestResponding
		supervising.RespondRequestFunc = func(id types.ID, r *domain.SupervisorRequestResponding, sec *session.Session) (*domain.SupervisorRequest, error) {
			id1, r1 = id, r
			return &domain.SupervisorRequest{ID: id, StudentID: 100, SupervisorID: 500,
				ProjectID: 11, Status: domain.RequestStatusApproved, SupervisorResponse: r.Message,
				CreateTime: demoTime, RespondedAt: demoTime}, nil
		}
		reqBody := `{"action":"approve", "message":"happy to"}`
		req := httptest.NewRequest(http.MethodPost, supervising.SupervisorRequestsApiRoot+"/123/response",
			strings.NewReader(reqBody))
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusOK))
		Expect(body).To(MatchJSON(`{"id": "123", "studentId": "100", "supervisorId": "500", "projectId": "11",
			"message": "", "status": "approved", "supervisorResponse": "happy to",
			"createTime": "` + timeString + `", "respondedAt": "` + timeString + `"}`))
		Expect(id1).To(Equal(types.ID(123)))
		Expect(*r1).To(Equal(domain.SupervisorRequestResponding{Action: "approve", Message: "happy to"}))
	})
}

func TestQueryRequestsAPI(t *testing.T) {
	RegisterTestingT(t)

	router := gin.Default()
	router.Use(bizerror.ErrorHandling())
	supervising.RegisterSupervisorRequestsRestAPI(router)

	t.Run("should be able to query requests with filters", func(t *testing.T) {
		var q1 *domain.SupervisorRequestQuery
		supervising.QueryRequestsFunc = func(q *domain.SupervisorRequestQuery, sec *session.Session) (*[]domain.SupervisorRequest, error) {
			q1 = q
			return &[]domain.SupervisorRequest{}, nil
		}
		req := httptest.NewRequest(http.MethodGet,
			supervising.SupervisorRequestsApiRoot+"?status=pending&supervisorId=500", nil)
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusOK))
		Expect(body).To(MatchJSON(`[]`))
		Expect(q1.Status).To(Equal(domain.RequestStatusPending))
		Expect(*q1.SupervisorID).To(Equal(types.ID(500)))
	})
}
