package notification

import (
	"encoding/json"
	"net/http"
	"os"

	"gradflow/common"

	"github.com/fundwit/go-commons/types"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	TypeProposalSubmitted  = "proposal_submitted"
	TypeProposalReviewed   = "proposal_reviewed"
	TypePhaseAdvanced      = "phase_advanced"
	TypeSupervisorRequest  = "supervisor_request"
	TypeSupervisorResponse = "supervisor_response"
	TypeTeamInvitation     = "team_invitation"
	TypeInvitationResponse = "invitation_response"
	TypeMemberLeft         = "member_left"
)

type Notification struct {
	Recipient types.ID `json:"recipient"`
	Type      string   `json:"type"`
	Message   string   `json:"message"`
}

var (
	SendFunc = Send

	// outbound deliveries are throttled, the sink is advisory anyway
	deliveryLimiter = rate.NewLimiter(rate.Limit(20), 50)
)

// Send delivers a notification on a best effort basis. Failures are logged
// and swallowed, a notification must never fail the operation that raised it.
func Send(recipient types.ID, notificationType, message string) {
	n := Notification{Recipient: recipient, Type: notificationType, Message: message}

	logrus.WithFields(logrus.Fields{"recipient": n.Recipient, "type": n.Type}).Info(n.Message)

	webhook := os.Getenv("NOTIFICATION_WEBHOOK")
	if webhook == "" {
		return
	}
	// never wait on the throttle, Send runs inside the request path
	if !deliveryLimiter.Allow() {
		logrus.WithFields(logrus.Fields{"recipient": n.Recipient, "type": n.Type}).
			Warn("notification delivery throttled, dropped")
		return
	}
	body, err := json.Marshal(&n)
	if err != nil {
		logrus.Warnf("notification marshal failed: %v", err)
		return
	}
	if _, err := common.HttpInvokeJson(http.MethodPost, webhook, nil, string(body)); err != nil {
		logrus.Warnf("notification delivery failed: %v", err)
	}
}
