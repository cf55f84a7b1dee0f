package project

import (
	"gradflow/bizerror"
	"gradflow/domain"
	"gradflow/event"
	"gradflow/idgen"
	"gradflow/persistence"
	"gradflow/session"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sony/sonyflake"
)

var (
	idWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	CreateProjectFunc = CreateProject
	DetailProjectFunc = DetailProject
	QueryProjectsFunc = QueryProjects
)

func CreateProject(c *domain.ProjectCreating, sec *session.Session) (*domain.Project, error) {
	if !sec.IsStudent() && !sec.IsAdmin() {
		return nil, bizerror.ErrForbidden
	}

	now := types.CurrentTimestamp()
	p := domain.Project{
		ID: idgen.NextID(idWorker), Title: c.Title, Abstract: c.Abstract,
		Status: domain.ProjectStatusDraft, AuthorID: sec.Identity.ID,
		StudentIDs: domain.IDList{sec.Identity.ID}, RequiredSkills: c.RequiredSkills,
		CreateTime: now,
	}
	leader := domain.TeamMember{
		ID: idgen.NextID(idWorker), ProjectID: p.ID, UserID: sec.Identity.ID,
		Role: domain.TeamRoleLeader, Status: domain.MemberStatusActive,
		CreateTime: now, JoinedAt: now,
	}

	var ev *event.EventRecord
	err := persistence.ActiveDataSourceManager.GormDB(sec.Context).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&p).Error; err != nil {
			return err
		}
		if err := tx.Create(&leader).Error; err != nil {
			return err
		}
		var err error
		ev, err = event.CreateEvent(event.SourceTypeProject, p.ID, p.Title, event.EventCategoryCreated,
			nil, nil, &sec.Identity, now, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	if event.InvokeHandlersFunc != nil {
		event.InvokeHandlersFunc(ev)
	}
	return &p, nil
}

func DetailProject(id types.ID, sec *session.Session) (*domain.Project, error) {
	db := persistence.ActiveDataSourceManager.GormDB(sec.Context)
	p := domain.Project{ID: id}
	if err := db.Where(&domain.Project{ID: id}).First(&p).Error; err != nil {
		return nil, err
	}
	if !Visible(&p, sec) {
		return nil, bizerror.ErrForbidden
	}
	return &p, nil
}

func QueryProjects(query *domain.ProjectQuery, sec *session.Session) (*[]domain.Project, error) {
	db := persistence.ActiveDataSourceManager.GormDB(sec.Context)

	q := db.Model(&domain.Project{})
	if query.Status != "" {
		q = q.Where("status = ?", query.Status)
	}
	if query.AuthorID != nil {
		q = q.Where("author_id = ?", query.AuthorID)
	}
	if !sec.IsAdmin() {
		var memberProjectIds []types.ID
		rows, err := db.Model(&domain.TeamMember{}).
			Where("user_id = ? AND status != ?", sec.Identity.ID, domain.MemberStatusLeft).
			Select("project_id").Rows()
		if err != nil {
			return nil, err
		}
		defer rows.Close()
		for rows.Next() {
			var id types.ID
			if err := rows.Scan(&id); err != nil {
				return nil, err
			}
			memberProjectIds = append(memberProjectIds, id)
		}
		q = q.Where("supervisor_id = ? OR id IN (?)", sec.Identity.ID, memberProjectIds)
	}

	var projects []domain.Project
	if err := q.Find(&projects).Error; err != nil {
		return nil, err
	}
	return &projects, nil
}

// Visible tells whether a session may read a project: admins, the assigned
// supervisor and every student on the team.
func Visible(p *domain.Project, sec *session.Session) bool {
	if sec.IsAdmin() {
		return true
	}
	if !p.SupervisorID.IsZero() && p.SupervisorID == sec.Identity.ID {
		return true
	}
	return p.StudentIDs.Contains(sec.Identity.ID)
}
