package main

import (
	"gradflow/account"
	"gradflow/bizerror"
	"gradflow/domain"
	"gradflow/domain/milestone"
	"gradflow/domain/project"
	"gradflow/domain/similarity"
	"gradflow/domain/supervising"
	"gradflow/domain/team"
	"gradflow/event"
	"gradflow/infra/tracing"
	"gradflow/persistence"
	"gradflow/servehttp"
	"gradflow/session"
	"gradflow/sessions"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.Info("service start")

	dbConfig, err := persistence.ParseDatabaseConfigFromEnv()
	if err != nil {
		logrus.Fatalf("parse database config failed %v", err)
	}

	// create database (no conflict)
	if dbConfig.DriverType == "mysql" {
		if err := persistence.PrepareMysqlDatabase(dbConfig.DriverArgs); err != nil {
			logrus.Fatalf("failed to prepare database %v", err)
		}
	}

	ds := &persistence.DataSourceManager{DatabaseConfig: dbConfig}
	if err := ds.Start(); err != nil {
		logrus.Fatalf("database connection failed %v", err)
	}
	defer ds.Stop()
	persistence.ActiveDataSourceManager = ds

	// database migration (race condition)
	err = ds.GormDB(nil).AutoMigrate(
		&account.User{},
		&domain.Project{},
		&domain.SupervisorRequest{},
		&domain.TeamMember{},
		&domain.TeamMatchSuggestion{},
		&domain.MatchSnapshot{},
		&domain.ProjectMilestone{},
		&event.EventRecord{},
	).Error
	if err != nil {
		logrus.Fatalf("database migration failed %v", err)
	}

	if closer := tracing.InitTracing(); closer != nil {
		defer closer.Close()
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), bizerror.ErrorHandling(), tracing.TracingIngress())
	engine.GET("/", func(c *gin.Context) {
		c.String(200, "gradflow")
	})

	sessions.RegisterSessionsHandler(engine)

	auth := session.SimpleAuthFilter()
	account.RegisterUsersRestAPI(engine, auth)
	project.RegisterProjectsRestAPI(engine, auth)
	supervising.RegisterSupervisorRequestsRestAPI(engine, auth)
	team.RegisterTeamRestAPI(engine, auth)
	milestone.RegisterMilestonesRestAPI(engine, auth)
	similarity.RegisterDuplicateChecksRestAPI(engine, auth)

	servehttp.StartHTTPServer(engine)
}
