package bizerror

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")

	ErrUnknownState = errors.New("unknown state")

	ErrInvalidPassword = errors.New("invalid password")
)

type BizError interface {
	Respond() *BizErrorDetail
}

type BizErrorDetail struct {
	Status  int
	Code    string
	Message string

	Data  interface{}
	Cause error
}

// ErrBadParam reports malformed input beyond what binding validation covers.
type ErrBadParam struct {
	Cause error
}

func (e *ErrBadParam) Unwrap() error {
	return e.Cause
}
func (e *ErrBadParam) Error() string {
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return "common.bad_param"
}
func (e *ErrBadParam) Respond() *BizErrorDetail {
	message := "common.bad_param"
	if e.Cause != nil {
		message = e.Cause.Error()
	}
	return &BizErrorDetail{Status: http.StatusBadRequest, Code: "common.bad_param", Message: message}
}

// ErrPreconditionFailed reports an entity not being in a state the operation permits.
type ErrPreconditionFailed struct {
	Subject string
	Require string
}

func (e *ErrPreconditionFailed) Error() string {
	return fmt.Sprintf("precondition failed on %s: %s", e.Subject, e.Require)
}
func (e *ErrPreconditionFailed) Respond() *BizErrorDetail {
	return &BizErrorDetail{Status: http.StatusConflict, Code: "common.precondition_failed",
		Message: e.Error(), Data: e.Require}
}

// ErrInvalidTransition carries the legal successor set so the caller can retry correctly.
type ErrInvalidTransition struct {
	From       string
	Target     string
	NextStates []string
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("invalid transition from %s to %s", e.From, e.Target)
}
func (e *ErrInvalidTransition) Respond() *BizErrorDetail {
	return &BizErrorDetail{Status: http.StatusBadRequest, Code: "lifecycle.invalid_transition",
		Message: e.Error(), Data: e.NextStates}
}

// ErrConflict reports a duplicate pending request, an already assigned
// supervisor or an already invited member.
type ErrConflict struct {
	Code    string
	Message string
}

func (e *ErrConflict) Error() string {
	return e.Message
}
func (e *ErrConflict) Respond() *BizErrorDetail {
	return &BizErrorDetail{Status: http.StatusConflict, Code: e.Code, Message: e.Message}
}

// ErrValidation reports a domain validation failure, e.g. missing review feedback.
type ErrValidation struct {
	Code    string
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Message
}
func (e *ErrValidation) Respond() *BizErrorDetail {
	return &BizErrorDetail{Status: http.StatusBadRequest, Code: e.Code, Message: e.Message}
}

func PendingRequestExists() *ErrConflict {
	return &ErrConflict{Code: "supervising.pending_request_exists",
		Message: "an identical request is still pending"}
}

func SupervisorAlreadyAssigned() *ErrConflict {
	return &ErrConflict{Code: "supervising.supervisor_already_assigned",
		Message: "project already has a supervisor"}
}

func MemberAlreadyJoined() *ErrConflict {
	return &ErrConflict{Code: "team.member_already_joined",
		Message: "user is already on the team"}
}

func EmptyReviewFeedback() *ErrValidation {
	return &ErrValidation{Code: "lifecycle.empty_review_feedback",
		Message: "feedback is required when requesting changes or rejecting"}
}

func TargetNotSupervisor() *ErrValidation {
	return &ErrValidation{Code: "supervising.target_not_supervisor",
		Message: "target user is not a supervisor"}
}

func AbstractTooShort(min int) *ErrValidation {
	return &ErrValidation{Code: "similarity.abstract_too_short",
		Message: fmt.Sprintf("abstract must be at least %d characters", min)}
}
