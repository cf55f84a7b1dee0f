package supervising

import (
	"gradflow/account"
	"gradflow/bizerror"
	"gradflow/domain"
	"gradflow/event"
	"gradflow/idgen"
	"gradflow/notification"
	"gradflow/persistence"
	"gradflow/session"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sony/sonyflake"
)

var (
	idWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	SendRequestFunc    = SendRequest
	RespondRequestFunc = RespondRequest
	QueryRequestsFunc  = QueryRequests
)

// SendRequest creates a pending supervision request from a student to a
// supervisor. A duplicate of a still pending (student, supervisor, project)
// triple is rejected, as is a project that already has a supervisor.
func SendRequest(c *domain.SupervisorRequestCreating, sec *session.Session) (*domain.SupervisorRequest, error) {
	if !sec.IsStudent() {
		return nil, bizerror.ErrForbidden
	}

	var record domain.SupervisorRequest
	var ev *event.EventRecord
	err := persistence.ActiveDataSourceManager.GormDB(sec.Context).Transaction(func(tx *gorm.DB) error {
		target, err := account.FindUserFunc(tx, c.SupervisorID)
		if err != nil {
			return err
		}
		if target.Role != domain.RoleSupervisor {
			return bizerror.TargetNotSupervisor()
		}

		if !c.ProjectID.IsZero() {
			p := domain.Project{}
			if err := tx.Where(&domain.Project{ID: c.ProjectID}).First(&p).Error; err != nil {
				return err
			}
			if p.AuthorID != sec.Identity.ID {
				return bizerror.ErrForbidden
			}
			if !p.SupervisorID.IsZero() {
				return bizerror.SupervisorAlreadyAssigned()
			}
		}

		// explicit condition, a project-less request has project_id 0 and a
		// struct condition would drop the zero value from the predicate
		var pendingCount int
		if err := tx.Model(&domain.SupervisorRequest{}).
			Where("student_id = ? AND supervisor_id = ? AND project_id = ? AND status = ?",
				sec.Identity.ID, c.SupervisorID, c.ProjectID, domain.RequestStatusPending).
			Count(&pendingCount).Error; err != nil {
			return err
		}
		if pendingCount > 0 {
			return bizerror.PendingRequestExists()
		}

		record = domain.SupervisorRequest{
			ID: idgen.NextID(idWorker), StudentID: sec.Identity.ID, SupervisorID: c.SupervisorID,
			ProjectID: c.ProjectID, Message: c.Message,
			Status: domain.RequestStatusPending, CreateTime: types.CurrentTimestamp(),
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		ev, err = event.CreateEvent(event.SourceTypeSupervisorRequest, record.ID, record.Message,
			event.EventCategoryCreated, nil, nil, &sec.Identity, record.CreateTime, tx)
		return err
	})
	if err != nil {
		return nil, err
	}

	if event.InvokeHandlersFunc != nil {
		event.InvokeHandlersFunc(ev)
	}
	notification.SendFunc(record.SupervisorID, notification.TypeSupervisorRequest,
		"new supervision request from "+sec.Identity.Name)
	return &record, nil
}

// RespondRequest lets the target supervisor settle a pending request. On
// approve with a project attached, the project's supervisor is set in the
// same transaction, re-checking that no one else got there first.
func RespondRequest(requestId types.ID, r *domain.SupervisorRequestResponding, sec *session.Session) (*domain.SupervisorRequest, error) {
	var record domain.SupervisorRequest
	var ev *event.EventRecord
	err := persistence.ActiveDataSourceManager.GormDB(sec.Context).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(&domain.SupervisorRequest{ID: requestId}).First(&record).Error; err != nil {
			return err
		}
		if record.SupervisorID != sec.Identity.ID {
			return bizerror.ErrForbidden
		}
		if record.Status != domain.RequestStatusPending {
			return &bizerror.ErrPreconditionFailed{Subject: "supervisor request", Require: "status=" + domain.RequestStatusPending}
		}

		terminal := domain.RequestStatusRejected
		if r.Action == domain.RequestActionApprove {
			terminal = domain.RequestStatusApproved
		}
		now := types.CurrentTimestamp()

		if terminal == domain.RequestStatusApproved && !record.ProjectID.IsZero() {
			// the pending check at request time does not close the race, re-check here
			db := tx.Model(&domain.Project{}).
				Where("id = ? AND supervisor_id = 0", record.ProjectID).
				Update(map[string]interface{}{"supervisor_id": sec.Identity.ID})
			if db.Error != nil {
				return db.Error
			}
			if db.RowsAffected != 1 {
				return bizerror.SupervisorAlreadyAssigned()
			}

			var supervisor account.User
			if err := tx.Where(&account.User{ID: sec.Identity.ID}).First(&supervisor).Error; err != nil {
				return err
			}
			if err := tx.Model(&account.User{}).Where(&account.User{ID: sec.Identity.ID}).
				Update("supervised_project_ids", supervisor.SupervisedProjectIDs.Append(record.ProjectID)).Error; err != nil {
				return err
			}
		}

		db := tx.Model(&domain.SupervisorRequest{}).
			Where(&domain.SupervisorRequest{ID: record.ID, Status: domain.RequestStatusPending}).
			Update(map[string]interface{}{"status": terminal, "supervisor_response": r.Message, "responded_at": now})
		if db.Error != nil {
			return db.Error
		}
		if db.RowsAffected != 1 {
			return &bizerror.ErrPreconditionFailed{Subject: "supervisor request", Require: "status=" + domain.RequestStatusPending}
		}
		record.Status = terminal
		record.SupervisorResponse = r.Message
		record.RespondedAt = now

		created, err := event.CreateEvent(event.SourceTypeSupervisorRequest, record.ID, record.Message,
			event.EventCategoryPropertyUpdated,
			event.UpdatedProperties{{PropertyName: "Status", PropertyDesc: "Status",
				OldValue: domain.RequestStatusPending, NewValue: terminal}},
			nil, &sec.Identity, now, tx)
		ev = created
		return err
	})
	if err != nil {
		return nil, err
	}

	if event.InvokeHandlersFunc != nil {
		event.InvokeHandlersFunc(ev)
	}
	notification.SendFunc(record.StudentID, notification.TypeSupervisorResponse,
		"supervision request "+record.Status)
	return &record, nil
}

func QueryRequests(query *domain.SupervisorRequestQuery, sec *session.Session) (*[]domain.SupervisorRequest, error) {
	db := persistence.ActiveDataSourceManager.GormDB(sec.Context)
	q := db.Model(&domain.SupervisorRequest{})
	if query.StudentID != nil {
		q = q.Where("student_id = ?", query.StudentID)
	}
	if query.SupervisorID != nil {
		q = q.Where("supervisor_id = ?", query.SupervisorID)
	}
	if query.Status != "" {
		q = q.Where("status = ?", query.Status)
	}
	if !sec.IsAdmin() {
		q = q.Where("student_id = ? OR supervisor_id = ?", sec.Identity.ID, sec.Identity.ID)
	}

	var records []domain.SupervisorRequest
	if err := q.Order("create_time DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return &records, nil
}
