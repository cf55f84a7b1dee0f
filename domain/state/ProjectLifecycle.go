package state

import (
	"gradflow/domain"
)

var (
	StateDraft            = State{Name: domain.ProjectStatusDraft, Category: InDraft}
	StatePendingProposal  = State{Name: domain.ProjectStatusPendingProposal, Category: InReview}
	StateSupervisorReview = State{Name: domain.ProjectStatusSupervisorReview, Category: InReview}
	StateChangesRequested = State{Name: domain.ProjectStatusChangesRequested, Category: InDraft}
	StateApproved         = State{Name: domain.ProjectStatusApproved, Category: InProcess}
	StateMidDefense       = State{Name: domain.ProjectStatusMidDefense, Category: InProcess}
	StateFinalSubmission  = State{Name: domain.ProjectStatusFinalSubmission, Category: InProcess}
	StateCompleted        = State{Name: domain.ProjectStatusCompleted, Category: Done}
	StateArchived         = State{Name: domain.ProjectStatusArchived, Category: Done}
)

// ProjectLifecycle is the phase graph every project moves through.
// Initial state is draft, terminal state is archived. The only back edge is
// changes_requested -> pending_proposal.
var ProjectLifecycle = NewStateMachine(
	[]State{
		StateDraft, StatePendingProposal, StateSupervisorReview, StateChangesRequested,
		StateApproved, StateMidDefense, StateFinalSubmission, StateCompleted, StateArchived,
	},
	[]Transition{
		{Name: "submit", From: StateDraft.Name, To: StatePendingProposal.Name},
		{Name: "pick up", From: StatePendingProposal.Name, To: StateSupervisorReview.Name},
		{Name: "approve", From: StateSupervisorReview.Name, To: StateApproved.Name},
		{Name: "request changes", From: StateSupervisorReview.Name, To: StateChangesRequested.Name},
		{Name: "resubmit", From: StateChangesRequested.Name, To: StatePendingProposal.Name},
		{Name: "enter mid defense", From: StateApproved.Name, To: StateMidDefense.Name},
		{Name: "enter final submission", From: StateMidDefense.Name, To: StateFinalSubmission.Name},
		{Name: "complete", From: StateFinalSubmission.Name, To: StateCompleted.Name},
		{Name: "archive", From: StateCompleted.Name, To: StateArchived.Name},
	},
)

const (
	ReviewActionApprove        = "approve"
	ReviewActionRequestChanges = "request_changes"
	ReviewActionReject         = "reject"
)

type ReviewEdge struct {
	Action string
	From   string
	To     string
}

// ReviewEdges is the tagged action table for proposal review: action x state -> state.
// "reject" and "request_changes" intentionally land on the same status, the
// distinction survives only in the milestone feedback.
var ReviewEdges = []ReviewEdge{
	{Action: ReviewActionApprove, From: StateSupervisorReview.Name, To: StateApproved.Name},
	{Action: ReviewActionRequestChanges, From: StatePendingProposal.Name, To: StateChangesRequested.Name},
	{Action: ReviewActionRequestChanges, From: StateSupervisorReview.Name, To: StateChangesRequested.Name},
	{Action: ReviewActionReject, From: StatePendingProposal.Name, To: StateChangesRequested.Name},
	{Action: ReviewActionReject, From: StateSupervisorReview.Name, To: StateChangesRequested.Name},
}

// FindReviewEdge resolves a review action against the current status.
func FindReviewEdge(action, fromState string) (ReviewEdge, bool) {
	for _, edge := range ReviewEdges {
		if edge.Action == action && edge.From == fromState {
			return edge, true
		}
	}
	return ReviewEdge{}, false
}

// ReviewableStates lists states a given review action may start from.
func ReviewableStates(action string) []string {
	r := []string{}
	for _, edge := range ReviewEdges {
		if edge.Action == action {
			r = append(r, edge.From)
		}
	}
	return r
}
