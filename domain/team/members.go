package team

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

	InviteMemberFunc      = InviteMember
	RespondInvitationFunc = RespondInvitation
	LeaveTeamFunc         = LeaveTeam
	QueryTeamMembersFunc  = QueryTeamMembers
)

// InviteMember creates an invited membership. Only the project leader invites,
// and a user already on the team may not be invited again.
func InviteMember(projectId types.ID, c *domain.MemberInviting, sec *session.Session) (*domain.TeamMember, error) {
	var record domain.TeamMember
	var ev *event.EventRecord
	err := persistence.ActiveDataSourceManager.GormDB(sec.Context).Transaction(func(tx *gorm.DB) error {
		p := domain.Project{}
		if err := tx.Where(&domain.Project{ID: projectId}).First(&p).Error; err != nil {
			return err
		}
		if p.AuthorID != sec.Identity.ID {
			return bizerror.ErrForbidden
		}
		if p.StudentIDs.Contains(c.UserID) {
			return bizerror.MemberAlreadyJoined()
		}
		if _, err := account.FindUserFunc(tx, c.UserID); err != nil {
			return err
		}

		var liveCount int
		if err := tx.Model(&domain.TeamMember{}).
			Where("project_id = ? AND user_id = ? AND status != ?", projectId, c.UserID, domain.MemberStatusLeft).
			Count(&liveCount).Error; err != nil {
			return err
		}
		if liveCount > 0 {
			return bizerror.MemberAlreadyJoined()
		}

		record = domain.TeamMember{
			ID: idgen.NextID(idWorker), ProjectID: projectId, UserID: c.UserID,
			Role: domain.TeamRoleMember, Status: domain.MemberStatusInvited,
			InviteMessage: c.Message, CreateTime: types.CurrentTimestamp(),
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		created, err := event.CreateEvent(event.SourceTypeTeamMember, record.ID, p.Title,
			event.EventCategoryCreated, nil, nil, &sec.Identity, record.CreateTime, tx)
		ev = created
		return err
	})
	if err != nil {
		return nil, err
	}

	if event.InvokeHandlersFunc != nil {
		event.InvokeHandlersFunc(ev)
	}
	notification.SendFunc(record.UserID, notification.TypeTeamInvitation,
		"you have been invited to join a project team")
	return &record, nil
}

// RespondInvitation settles an invited membership. Accept activates it and
// adds the student to the project's id set with set semantics, so accepting
// twice can never duplicate the id. Reject deletes the record outright.
func RespondInvitation(memberId types.ID, r *domain.InvitationResponding, sec *session.Session) (*domain.TeamMember, error) {
	var record domain.TeamMember
	var leaderId types.ID
	var ev *event.EventRecord
	err := persistence.ActiveDataSourceManager.GormDB(sec.Context).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(&domain.TeamMember{ID: memberId}).First(&record).Error; err != nil {
			return err
		}
		if record.UserID != sec.Identity.ID {
			return bizerror.ErrForbidden
		}
		if record.Status != domain.MemberStatusInvited {
			return &bizerror.ErrPreconditionFailed{Subject: "team member", Require: "status=" + domain.MemberStatusInvited}
		}

		p := domain.Project{}
		if err := tx.Where(&domain.Project{ID: record.ProjectID}).First(&p).Error; err != nil {
			return err
		}
		leaderId = p.AuthorID

		if r.Action == domain.InvitationActionReject {
			// rejected invitations leave no trace
			if err := tx.Delete(&domain.TeamMember{}, "id = ?", record.ID).Error; err != nil {
				return err
			}
			record.Status = ""
			created, err := event.CreateEvent(event.SourceTypeTeamMember, record.ID, p.Title,
				event.EventCategoryDeleted, nil, nil, &sec.Identity, types.CurrentTimestamp(), tx)
			ev = created
			return err
		}

		now := types.CurrentTimestamp()
		if err := tx.Model(&domain.TeamMember{}).Where(&domain.TeamMember{ID: record.ID}).
			Update(map[string]interface{}{"status": domain.MemberStatusActive, "joined_at": now}).Error; err != nil {
			return err
		}
		record.Status = domain.MemberStatusActive
		record.JoinedAt = now

		if err := tx.Model(&domain.Project{}).Where(&domain.Project{ID: p.ID}).
			Update(map[string]interface{}{"student_ids": p.StudentIDs.Append(record.UserID)}).Error; err != nil {
			return err
		}

		created, err := event.CreateEvent(event.SourceTypeTeamMember, record.ID, p.Title,
			event.EventCategoryRelationUpdated,
			nil,
			event.UpdatedRelations{{PropertyName: "StudentIDs", PropertyDesc: "Team",
				TargetType: "USER", NewTargetId: record.UserID.String()}},
			&sec.Identity, now, tx)
		ev = created
		return err
	})
	if err != nil {
		return nil, err
	}

	if event.InvokeHandlersFunc != nil {
		event.InvokeHandlersFunc(ev)
	}
	outcome := "accepted"
	if r.Action == domain.InvitationActionReject {
		outcome = "rejected"
	}
	notification.SendFunc(leaderId, notification.TypeInvitationResponse,
		sec.Identity.Name+" "+outcome+" the team invitation")
	return &record, nil
}

// LeaveTeam marks an active membership as left and removes the student from
// the project's id set. The leader can never leave its own project.
func LeaveTeam(memberId types.ID, sec *session.Session) error {
	var leaderId types.ID
	var ev *event.EventRecord
	err := persistence.ActiveDataSourceManager.GormDB(sec.Context).Transaction(func(tx *gorm.DB) error {
		record := domain.TeamMember{}
		if err := tx.Where(&domain.TeamMember{ID: memberId}).First(&record).Error; err != nil {
			return err
		}
		if record.UserID != sec.Identity.ID {
			return bizerror.ErrForbidden
		}
		if record.Role == domain.TeamRoleLeader {
			return bizerror.ErrForbidden
		}
		if record.Status != domain.MemberStatusActive {
			return &bizerror.ErrPreconditionFailed{Subject: "team member", Require: "status=" + domain.MemberStatusActive}
		}

		p := domain.Project{}
		if err := tx.Where(&domain.Project{ID: record.ProjectID}).First(&p).Error; err != nil {
			return err
		}
		leaderId = p.AuthorID

		if err := tx.Model(&domain.TeamMember{}).Where(&domain.TeamMember{ID: record.ID}).
			Update(map[string]interface{}{"status": domain.MemberStatusLeft}).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Project{}).Where(&domain.Project{ID: p.ID}).
			Update(map[string]interface{}{"student_ids": p.StudentIDs.Remove(record.UserID)}).Error; err != nil {
			return err
		}

		created, err := event.CreateEvent(event.SourceTypeTeamMember, record.ID, p.Title,
			event.EventCategoryRelationUpdated,
			nil,
			event.UpdatedRelations{{PropertyName: "StudentIDs", PropertyDesc: "Team",
				TargetType: "USER", OldTargetId: record.UserID.String()}},
			&sec.Identity, types.CurrentTimestamp(), tx)
		ev = created
		return err
	})
	if err != nil {
		return err
	}

	if event.InvokeHandlersFunc != nil {
		event.InvokeHandlersFunc(ev)
	}
	notification.SendFunc(leaderId, notification.TypeMemberLeft,
		sec.Identity.Name+" left the project team")
	return nil
}

func QueryTeamMembers(query *domain.TeamMemberQuery, sec *session.Session) (*[]domain.TeamMemberDetail, error) {
	db := persistence.ActiveDataSourceManager.GormDB(sec.Context)
	q := db.Model(&domain.TeamMember{}).Where("project_id = ?", query.ProjectID)
	if query.Status != "" {
		q = q.Where("status = ?", query.Status)
	}

	var records []domain.TeamMember
	if err := q.Order("create_time ASC").Find(&records).Error; err != nil {
		return nil, err
	}

	var userIds []types.ID
	for _, r := range records {
		userIds = append(userIds, r.UserID)
	}
	names, err := account.QueryAccountNamesFunc(userIds)
	if err != nil {
		return nil, err
	}

	details := []domain.TeamMemberDetail{}
	for _, r := range records {
		detail := domain.TeamMemberDetail{TeamMember: r, UserName: "Unknown"}
		if name, found := names[r.UserID]; found {
			detail.UserName = name
		}
		details = append(details, detail)
	}
	return &details, nil
}
