package milestone_test

import (
	"testing"
	"time"

	"gradflow/domain"
	"gradflow/domain/milestone"
	"gradflow/persistence"
	"gradflow/testinfra"

	"github.com/fundwit/go-commons/types"
	. "github.com/onsi/gomega"
)

func milestoneTestSetup(t *testing.T, testDatabase **testinfra.TestDatabase) {
	db := testinfra.StartMysqlTestDatabase("gradflow")
	*testDatabase = db
	Expect(db.DS.GormDB(nil).AutoMigrate(&domain.ProjectMilestone{}).Error).To(BeNil())
	persistence.ActiveDataSourceManager = db.DS
}

func milestoneTestTeardown(t *testing.T, testDatabase *testinfra.TestDatabase) {
	if testDatabase != nil {
		testinfra.StopMysqlTestDatabase(testDatabase)
	}
}

func TestEnsureMilestone(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	t.Run("should create one record per project and phase", func(t *testing.T) {
		defer milestoneTestTeardown(t, testDatabase)
		milestoneTestSetup(t, &testDatabase)
		db := testDatabase.DS.GormDB(nil)

		m, err := milestone.EnsureMilestone(db, 11, domain.MilestonePhaseProposal,
			domain.MilestoneStatusInProgress, 500)
		Expect(err).To(BeNil())
		Expect(m.ID).ToNot(BeZero())
		Expect(m.Status).To(Equal(domain.MilestoneStatusInProgress))
		Expect(m.ReviewerID).To(Equal(types.ID(500)))
		Expect(time.Since(m.CreateTime.Time()) < time.Second).To(BeTrue())

		// a second ensure refreshes in place, never duplicates
		again, err := milestone.EnsureMilestone(db, 11, domain.MilestonePhaseProposal,
			domain.MilestoneStatusPending, 501)
		Expect(err).To(BeNil())
		Expect(again.ID).To(Equal(m.ID))
		Expect(again.Status).To(Equal(domain.MilestoneStatusPending))
		Expect(again.ReviewerID).To(Equal(types.ID(501)))

		var count int
		Expect(db.Model(&domain.ProjectMilestone{}).Where("project_id = ?", 11).
			Count(&count).Error).To(BeNil())
		Expect(count).To(Equal(1))
	})
}

func TestCloseMilestone(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	t.Run("should record feedback and completion time on complete", func(t *testing.T) {
		defer milestoneTestTeardown(t, testDatabase)
		milestoneTestSetup(t, &testDatabase)
		db := testDatabase.DS.GormDB(nil)

		_, err := milestone.EnsureMilestone(db, 11, domain.MilestonePhaseProposal,
			domain.MilestoneStatusInProgress, 500)
		Expect(err).To(BeNil())
		Expect(milestone.CompleteMilestone(db, 11, domain.MilestonePhaseProposal, 500, "well done")).To(BeNil())

		m := domain.ProjectMilestone{}
		Expect(db.Where(&domain.ProjectMilestone{ProjectID: 11, Phase: domain.MilestonePhaseProposal}).
			First(&m).Error).To(BeNil())
		Expect(m.Status).To(Equal(domain.MilestoneStatusCompleted))
		Expect(m.Feedback).To(Equal("well done"))
		Expect(time.Since(m.CompletedAt.Time()) < time.Second).To(BeTrue())
	})

	t.Run("should leave completion time empty on reject", func(t *testing.T) {
		defer milestoneTestTeardown(t, testDatabase)
		milestoneTestSetup(t, &testDatabase)
		db := testDatabase.DS.GormDB(nil)

		Expect(milestone.RejectMilestone(db, 11, domain.MilestonePhaseProposal, 500, "too broad")).To(BeNil())

		m := domain.ProjectMilestone{}
		Expect(db.Where(&domain.ProjectMilestone{ProjectID: 11, Phase: domain.MilestonePhaseProposal}).
			First(&m).Error).To(BeNil())
		Expect(m.Status).To(Equal(domain.MilestoneStatusRejected))
		Expect(m.Feedback).To(Equal("too broad"))
		Expect(m.CompletedAt.IsZero()).To(BeTrue())
	})
}

func TestQueryMilestones(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	t.Run("should list milestones of one project ordered by creation", func(t *testing.T) {
		defer milestoneTestTeardown(t, testDatabase)
		milestoneTestSetup(t, &testDatabase)
		db := testDatabase.DS.GormDB(nil)

		_, err := milestone.EnsureMilestone(db, 11, domain.MilestonePhaseProposal,
			domain.MilestoneStatusCompleted, 500)
		Expect(err).To(BeNil())
		_, err = milestone.EnsureMilestone(db, 11, domain.ProjectStatusMidDefense,
			domain.MilestoneStatusInProgress, 500)
		Expect(err).To(BeNil())
		_, err = milestone.EnsureMilestone(db, 22, domain.MilestonePhaseProposal,
			domain.MilestoneStatusInProgress, 501)
		Expect(err).To(BeNil())

		sec := testinfra.BuildSecCtx(100, domain.RoleStudent)
		list, err := milestone.QueryMilestones(&domain.MilestoneQuery{ProjectID: 11}, sec)
		Expect(err).To(BeNil())
		Expect(len(*list)).To(Equal(2))
		Expect((*list)[0].Phase).To(Equal(domain.MilestonePhaseProposal))
		Expect((*list)[1].Phase).To(Equal(domain.ProjectStatusMidDefense))
	})
}
