package project

import (
	"gradflow/bizerror"
	"gradflow/domain"
	"gradflow/domain/milestone"
	"gradflow/domain/state"
	"gradflow/event"
	"gradflow/notification"
	"gradflow/persistence"
	"gradflow/session"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
)

var (
	SubmitProposalFunc = SubmitProposal
	ReviewProposalFunc = ReviewProposal
	AdvancePhaseFunc   = AdvancePhase
)

// SubmitProposal moves an author's draft into supervisor review. It requires
// an assigned supervisor, and writes the status change together with the
// proposal milestone in one transaction.
func SubmitProposal(id types.ID, sec *session.Session) (*domain.Project, error) {
	var p domain.Project
	var ev *event.EventRecord

	err := persistence.ActiveDataSourceManager.GormDB(sec.Context).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(&domain.Project{ID: id}).First(&p).Error; err != nil {
			return err
		}
		if p.AuthorID != sec.Identity.ID {
			return bizerror.ErrForbidden
		}
		if p.Status != domain.ProjectStatusDraft {
			return &bizerror.ErrPreconditionFailed{Subject: "project", Require: "status=" + domain.ProjectStatusDraft}
		}
		if p.SupervisorID.IsZero() {
			return &bizerror.ErrPreconditionFailed{Subject: "project", Require: "supervisor assigned"}
		}

		if err := applyTransition(tx, &p, domain.ProjectStatusSupervisorReview, sec, &ev); err != nil {
			return err
		}
		_, err := milestone.EnsureMilestone(tx, p.ID, domain.MilestonePhaseProposal, domain.MilestoneStatusInProgress, p.SupervisorID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if event.InvokeHandlersFunc != nil {
		event.InvokeHandlersFunc(ev)
	}
	notification.SendFunc(p.SupervisorID, notification.TypeProposalSubmitted,
		"proposal submitted for review: "+p.Title)
	return &p, nil
}

// ReviewProposal applies a supervisor decision. Approve is legal only from
// supervisor_review; request_changes and reject both land on
// changes_requested, the distinction survives in the milestone feedback only.
func ReviewProposal(id types.ID, review *domain.ProposalReview, sec *session.Session) (*domain.Project, error) {
	var p domain.Project
	var ev *event.EventRecord

	err := persistence.ActiveDataSourceManager.GormDB(sec.Context).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(&domain.Project{ID: id}).First(&p).Error; err != nil {
			return err
		}
		if !sec.IsAdmin() && (p.SupervisorID.IsZero() || p.SupervisorID != sec.Identity.ID) {
			return bizerror.ErrForbidden
		}

		edge, found := state.FindReviewEdge(review.Action, p.Status)
		if !found {
			return &bizerror.ErrInvalidTransition{From: p.Status, Target: review.Action,
				NextStates: state.ReviewableStates(review.Action)}
		}
		if review.Action != state.ReviewActionApprove && review.Feedback == "" {
			return bizerror.EmptyReviewFeedback()
		}

		if err := applyTransition(tx, &p, edge.To, sec, &ev); err != nil {
			return err
		}

		if review.Action == state.ReviewActionApprove {
			return milestone.CompleteMilestone(tx, p.ID, domain.MilestonePhaseProposal, sec.Identity.ID, review.Feedback)
		}
		return milestone.RejectMilestone(tx, p.ID, domain.MilestonePhaseProposal, sec.Identity.ID, review.Feedback)
	})
	if err != nil {
		return nil, err
	}

	if event.InvokeHandlersFunc != nil {
		event.InvokeHandlersFunc(ev)
	}
	notification.SendFunc(p.AuthorID, notification.TypeProposalReviewed,
		"proposal review outcome for "+p.Title+": "+p.Status)
	return &p, nil
}

// phases tracked with their own milestone record when entered via AdvancePhase
var milestonePhases = map[string]bool{
	domain.ProjectStatusMidDefense:      true,
	domain.ProjectStatusFinalSubmission: true,
}

// closingPhase maps a target status to the phase whose milestone it completes.
var closingPhase = map[string]string{
	domain.ProjectStatusApproved:        domain.MilestonePhaseProposal,
	domain.ProjectStatusFinalSubmission: domain.ProjectStatusMidDefense,
	domain.ProjectStatusCompleted:       domain.ProjectStatusFinalSubmission,
}

// AdvancePhase moves a project to a direct successor phase. An illegal target
// fails with the legal successor set attached so the caller can retry.
func AdvancePhase(id types.ID, advancing *domain.PhaseAdvancing, sec *session.Session) (*domain.Project, error) {
	if _, found := state.ProjectLifecycle.FindState(advancing.Target); !found {
		return nil, bizerror.ErrUnknownState
	}

	var p domain.Project
	var ev *event.EventRecord

	err := persistence.ActiveDataSourceManager.GormDB(sec.Context).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(&domain.Project{ID: id}).First(&p).Error; err != nil {
			return err
		}
		if !sec.IsAdmin() && (p.SupervisorID.IsZero() || p.SupervisorID != sec.Identity.ID) {
			return bizerror.ErrForbidden
		}
		if !state.ProjectLifecycle.HasTransition(p.Status, advancing.Target) {
			return &bizerror.ErrInvalidTransition{From: p.Status, Target: advancing.Target,
				NextStates: state.ProjectLifecycle.NextStates(p.Status)}
		}

		if err := applyTransition(tx, &p, advancing.Target, sec, &ev); err != nil {
			return err
		}

		if prior, found := closingPhase[advancing.Target]; found {
			if err := milestone.CompleteMilestone(tx, p.ID, prior, sec.Identity.ID, ""); err != nil {
				return err
			}
		}
		if milestonePhases[advancing.Target] {
			if _, err := milestone.EnsureMilestone(tx, p.ID, advancing.Target, domain.MilestoneStatusInProgress, sec.Identity.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if event.InvokeHandlersFunc != nil {
		event.InvokeHandlersFunc(ev)
	}
	notification.SendFunc(p.AuthorID, notification.TypePhaseAdvanced,
		"project "+p.Title+" entered phase "+p.Status)
	return &p, nil
}

// applyTransition writes the status change guarded by the previous status, so
// two concurrent reviewers cannot both win the same edge.
func applyTransition(tx *gorm.DB, p *domain.Project, target string, sec *session.Session, ev **event.EventRecord) error {
	origin := p.Status
	db := tx.Model(&domain.Project{}).Where(&domain.Project{ID: p.ID, Status: origin}).
		Update(map[string]interface{}{"status": target})
	if db.Error != nil {
		return db.Error
	}
	if db.RowsAffected != 1 {
		return &bizerror.ErrPreconditionFailed{Subject: "project", Require: "status=" + origin}
	}
	p.Status = target

	created, err := event.CreateEvent(event.SourceTypeProject, p.ID, p.Title, event.EventCategoryPropertyUpdated,
		event.UpdatedProperties{{PropertyName: "Status", PropertyDesc: "Status", OldValue: origin, NewValue: target}},
		nil, &sec.Identity, types.CurrentTimestamp(), tx)
	if err != nil {
		return err
	}
	*ev = created
	return nil
}
