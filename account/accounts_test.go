package account_test

import (
	"testing"

	"gradflow/account"
	"gradflow/bizerror"
	"gradflow/domain"
	"gradflow/persistence"
	"gradflow/testinfra"

	"github.com/fundwit/go-commons/types"
	. "github.com/onsi/gomega"
)

func accountTestSetup(t *testing.T, testDatabase **testinfra.TestDatabase) {
	db := testinfra.StartMysqlTestDatabase("gradflow")
	*testDatabase = db
	Expect(db.DS.GormDB(nil).AutoMigrate(&account.User{}).Error).To(BeNil())
	persistence.ActiveDataSourceManager = db.DS
}

func accountTestTeardown(t *testing.T, testDatabase *testinfra.TestDatabase) {
	if testDatabase != nil {
		testinfra.StopMysqlTestDatabase(testDatabase)
	}
}

func TestCreateUser(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	t.Run("should only accept admins", func(t *testing.T) {
		defer accountTestTeardown(t, testDatabase)
		accountTestSetup(t, &testDatabase)

		_, err := account.CreateUser(&account.UserCreation{Name: "ann", Secret: "secret123",
			Role: domain.RoleStudent}, testinfra.BuildSecCtx(100, domain.RoleStudent))
		Expect(err).To(Equal(bizerror.ErrForbidden))
	})

	t.Run("should create a user with a hashed secret", func(t *testing.T) {
		defer accountTestTeardown(t, testDatabase)
		accountTestSetup(t, &testDatabase)

		admin := testinfra.BuildSecCtx(1, domain.RoleAdmin)
		info, err := account.CreateUser(&account.UserCreation{Name: "ann", Secret: "secret123",
			Nickname: "Ann", Role: domain.RoleStudent, Skills: domain.StringList{"go"}}, admin)
		Expect(err).To(BeNil())
		Expect(info.ID).ToNot(BeZero())
		Expect(info.Name).To(Equal("ann"))
		Expect(info.Role).To(Equal(domain.RoleStudent))
		Expect(info.Skills).To(Equal(domain.StringList{"go"}))

		user := account.User{}
		Expect(testDatabase.DS.GormDB(nil).Where(&account.User{ID: info.ID}).First(&user).Error).To(BeNil())
		Expect(user.Secret).To(Equal(account.HashSha256("secret123")))
		Expect(user.Secret).ToNot(Equal("secret123"))
	})
}

func TestFindUser(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	t.Run("should map missing users to a not found error", func(t *testing.T) {
		defer accountTestTeardown(t, testDatabase)
		accountTestSetup(t, &testDatabase)
		db := testDatabase.DS.GormDB(nil)

		_, err := account.FindUser(db, 404)
		Expect(err).To(Equal(domain.ErrNotFound))

		Expect(db.Create(&account.User{ID: 100, Name: "ann", Role: domain.RoleStudent}).Error).To(BeNil())
		user, err := account.FindUser(db, 100)
		Expect(err).To(BeNil())
		Expect(user.Name).To(Equal("ann"))
	})
}

func TestQueryStudents(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	t.Run("should only return users with the student role", func(t *testing.T) {
		defer accountTestTeardown(t, testDatabase)
		accountTestSetup(t, &testDatabase)
		db := testDatabase.DS.GormDB(nil)

		Expect(db.Create(&account.User{ID: 100, Name: "ann", Role: domain.RoleStudent,
			Skills: domain.StringList{"go"}}).Error).To(BeNil())
		Expect(db.Create(&account.User{ID: 500, Name: "prof", Role: domain.RoleSupervisor}).Error).To(BeNil())

		students, err := account.QueryStudents(db)
		Expect(err).To(BeNil())
		Expect(len(students)).To(Equal(1))
		Expect(students[0].Name).To(Equal("ann"))
		Expect(students[0].Skills).To(Equal(domain.StringList{"go"}))
	})
}

func TestQueryAccountNames(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	t.Run("should prefer nicknames and skip unknown ids", func(t *testing.T) {
		defer accountTestTeardown(t, testDatabase)
		accountTestSetup(t, &testDatabase)
		db := testDatabase.DS.GormDB(nil)

		Expect(db.Create(&account.User{ID: 100, Name: "ann", Nickname: "Ann"}).Error).To(BeNil())
		Expect(db.Create(&account.User{ID: 200, Name: "bob"}).Error).To(BeNil())

		names, err := account.QueryAccountNames([]types.ID{100, 200, 404})
		Expect(err).To(BeNil())
		Expect(names).To(Equal(map[types.ID]string{100: "Ann", 200: "bob"}))

		names, err = account.QueryAccountNames([]types.ID{})
		Expect(err).To(BeNil())
		Expect(names).To(Equal(map[types.ID]string{}))
	})
}

func TestUpdateBasicAuthSecret(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	t.Run("should reject a wrong original secret", func(t *testing.T) {
		defer accountTestTeardown(t, testDatabase)
		accountTestSetup(t, &testDatabase)
		db := testDatabase.DS.GormDB(nil)

		Expect(db.Create(&account.User{ID: 100, Name: "ann",
			Secret: account.HashSha256("old-secret")}).Error).To(BeNil())

		sec := testinfra.BuildSecCtx(100, domain.RoleStudent)
		err := account.UpdateBasicAuthSecret(&account.BasicAuthUpdating{
			OriginalSecret: "wrong", NewSecret: "new-secret"}, sec)
		Expect(err).To(Equal(bizerror.ErrInvalidPassword))

		Expect(account.UpdateBasicAuthSecret(&account.BasicAuthUpdating{
			OriginalSecret: "old-secret", NewSecret: "new-secret"}, sec)).To(BeNil())

		user := account.User{}
		Expect(db.Where(&account.User{ID: 100}).First(&user).Error).To(BeNil())
		Expect(user.Secret).To(Equal(account.HashSha256("new-secret")))
	})
}

func TestUpdateUser(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	t.Run("should let users update themselves and admins update anyone", func(t *testing.T) {
		defer accountTestTeardown(t, testDatabase)
		accountTestSetup(t, &testDatabase)
		db := testDatabase.DS.GormDB(nil)

		Expect(db.Create(&account.User{ID: 100, Name: "ann"}).Error).To(BeNil())

		err := account.UpdateUser(100, &account.UserUpdation{Nickname: "Ann"},
			testinfra.BuildSecCtx(200, domain.RoleStudent))
		Expect(err).To(Equal(bizerror.ErrForbidden))

		Expect(account.UpdateUser(100, &account.UserUpdation{Nickname: "Ann",
			Skills: domain.StringList{"go"}}, testinfra.BuildSecCtx(100, domain.RoleStudent))).To(BeNil())

		user := account.User{}
		Expect(db.Where(&account.User{ID: 100}).First(&user).Error).To(BeNil())
		Expect(user.Nickname).To(Equal("Ann"))
		Expect(user.Skills).To(Equal(domain.StringList{"go"}))

		Expect(account.UpdateUser(100, &account.UserUpdation{Nickname: "Annie"},
			testinfra.BuildSecCtx(1, domain.RoleAdmin))).To(BeNil())
	})
}
