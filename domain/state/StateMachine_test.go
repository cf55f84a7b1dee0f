package state_test

import (
	"gradflow/domain/state"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("StateMachine", func() {
	var (
		stateMachine *state.StateMachine
	)

	BeforeEach(func() {
		//         PENDING      DOING         DONE
		// PENDING   -            V (begin)   V (close)
		// DOING     V (cancel)   -           V (finish)
		// DONE      V (reopen)   X			  -
		stateMachine = state.NewStateMachine(
			[]state.State{{Name: "PENDING"}, {Name: "DOING"}, {Name: "DONE"}},
			[]state.Transition{
				{Name: "begin", From: "PENDING", To: "DOING"},
				{Name: "close", From: "PENDING", To: "DONE"},
				{Name: "cancel", From: "DOING", To: "PENDING"},
				{Name: "finish", From: "DOING", To: "DONE"},
				{Name: "reopen", From: "DONE", To: "PENDING"},
			})
	})

	Describe("FindState", func() {
		It("should find states by name", func() {
			s, found := stateMachine.FindState("DOING")
			Expect(found).To(BeTrue())
			Expect(s).To(Equal(state.State{Name: "DOING"}))

			_, found = stateMachine.FindState("UNKNOWN")
			Expect(found).To(BeFalse())
		})
	})

	Describe("AvailableTransitions", func() {
		It("should return transitions matched by from and to state", func() {
			Ω(stateMachine.AvailableTransitions("PENDING", "")).Should(Equal([]state.Transition{
				{Name: "begin", From: "PENDING", To: "DOING"},
				{Name: "close", From: "PENDING", To: "DONE"},
			}))

			Ω(stateMachine.AvailableTransitions("DOING", "DONE")).Should(Equal([]state.Transition{
				{Name: "finish", From: "DOING", To: "DONE"},
			}))

			Ω(stateMachine.AvailableTransitions("", "PENDING")).Should(Equal([]state.Transition{
				{Name: "cancel", From: "DOING", To: "PENDING"},
				{Name: "reopen", From: "DONE", To: "PENDING"},
			}))

			Ω(len(stateMachine.AvailableTransitions("UNKNOWN", ""))).Should(Equal(0))
		})
	})

	Describe("NextStates", func() {
		It("should list directly reachable states", func() {
			Ω(stateMachine.NextStates("PENDING")).Should(Equal([]string{"DOING", "DONE"}))
			Ω(stateMachine.NextStates("DONE")).Should(Equal([]string{"PENDING"}))
			Ω(stateMachine.NextStates("UNKNOWN")).Should(Equal([]string{}))
		})
	})

	Describe("HasTransition", func() {
		It("should report whether a direct edge exists", func() {
			Ω(stateMachine.HasTransition("PENDING", "DOING")).Should(BeTrue())
			Ω(stateMachine.HasTransition("DONE", "DOING")).Should(BeFalse())
		})
	})
})
