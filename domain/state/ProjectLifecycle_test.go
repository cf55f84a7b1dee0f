package state_test

import (
	"gradflow/domain"
	"gradflow/domain/state"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("ProjectLifecycle", func() {
	Describe("phase graph", func() {
		It("should walk the forward path from draft to archived", func() {
			path := []string{
				domain.ProjectStatusDraft, domain.ProjectStatusPendingProposal,
				domain.ProjectStatusSupervisorReview, domain.ProjectStatusApproved,
				domain.ProjectStatusMidDefense, domain.ProjectStatusFinalSubmission,
				domain.ProjectStatusCompleted, domain.ProjectStatusArchived,
			}
			for i := 0; i < len(path)-1; i++ {
				Ω(state.ProjectLifecycle.HasTransition(path[i], path[i+1])).Should(BeTrue())
			}
		})

		It("should only allow going back from changes_requested to pending_proposal", func() {
			Ω(state.ProjectLifecycle.HasTransition(
				domain.ProjectStatusChangesRequested, domain.ProjectStatusPendingProposal)).Should(BeTrue())
			Ω(state.ProjectLifecycle.HasTransition(
				domain.ProjectStatusApproved, domain.ProjectStatusDraft)).Should(BeFalse())
			Ω(state.ProjectLifecycle.HasTransition(
				domain.ProjectStatusCompleted, domain.ProjectStatusFinalSubmission)).Should(BeFalse())
		})

		It("should treat archived as terminal", func() {
			Ω(state.ProjectLifecycle.NextStates(domain.ProjectStatusArchived)).Should(Equal([]string{}))
		})

		It("should branch from supervisor_review to approved and changes_requested", func() {
			Ω(state.ProjectLifecycle.NextStates(domain.ProjectStatusSupervisorReview)).Should(Equal(
				[]string{domain.ProjectStatusApproved, domain.ProjectStatusChangesRequested}))
		})
	})

	Describe("FindReviewEdge", func() {
		It("should resolve approve only from supervisor_review", func() {
			edge, found := state.FindReviewEdge(state.ReviewActionApprove, domain.ProjectStatusSupervisorReview)
			Expect(found).To(BeTrue())
			Expect(edge.To).To(Equal(domain.ProjectStatusApproved))

			_, found = state.FindReviewEdge(state.ReviewActionApprove, domain.ProjectStatusPendingProposal)
			Expect(found).To(BeFalse())
			_, found = state.FindReviewEdge(state.ReviewActionApprove, domain.ProjectStatusDraft)
			Expect(found).To(BeFalse())
		})

		It("should land request_changes and reject on changes_requested", func() {
			for _, action := range []string{state.ReviewActionRequestChanges, state.ReviewActionReject} {
				for _, from := range []string{domain.ProjectStatusPendingProposal, domain.ProjectStatusSupervisorReview} {
					edge, found := state.FindReviewEdge(action, from)
					Expect(found).To(BeTrue())
					Expect(edge.To).To(Equal(domain.ProjectStatusChangesRequested))
				}
			}
		})

		It("should not resolve review actions from non reviewable states", func() {
			_, found := state.FindReviewEdge(state.ReviewActionReject, domain.ProjectStatusApproved)
			Expect(found).To(BeFalse())
			_, found = state.FindReviewEdge("unknown", domain.ProjectStatusSupervisorReview)
			Expect(found).To(BeFalse())
		})
	})

	Describe("ReviewableStates", func() {
		It("should list the states each action may start from", func() {
			Ω(state.ReviewableStates(state.ReviewActionApprove)).Should(Equal(
				[]string{domain.ProjectStatusSupervisorReview}))
			Ω(state.ReviewableStates(state.ReviewActionReject)).Should(Equal(
				[]string{domain.ProjectStatusPendingProposal, domain.ProjectStatusSupervisorReview}))
		})
	})
})
