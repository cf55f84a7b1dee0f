package account

import (
	"crypto/sha256"
	"encoding/hex"

	"gradflow/bizerror"
	"gradflow/domain"
	"gradflow/idgen"
	"gradflow/persistence"
	"gradflow/session"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sony/sonyflake"
)

var (
	userIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	QueryAccountNamesFunc = QueryAccountNames
	FindUserFunc          = FindUser
	QueryStudentsFunc     = QueryStudents
)

func HashSha256(raw string) string {
	h := sha256.New()
	h.Write([]byte(raw))
	sum := h.Sum(nil)
	return hex.EncodeToString(sum)
}

func CreateUser(c *UserCreation, sec *session.Session) (*UserInfo, error) {
	if !sec.IsAdmin() {
		return nil, bizerror.ErrForbidden
	}

	user := User{ID: idgen.NextID(userIdWorker), Name: c.Name, Nickname: c.Nickname,
		Secret: HashSha256(c.Secret), Role: c.Role, Skills: c.Skills}
	if err := persistence.ActiveDataSourceManager.GormDB(sec.Context).Save(&user).Error; err != nil {
		return nil, err
	}
	return &UserInfo{ID: user.ID, Name: user.Name, Nickname: user.Nickname, Role: user.Role, Skills: user.Skills}, nil
}

func QueryUsers(sec *session.Session) (*[]UserInfo, error) {
	var users []UserInfo
	if err := persistence.ActiveDataSourceManager.GormDB(sec.Context).Model(&User{}).Scan(&users).Error; err != nil {
		return nil, err
	}
	return &users, nil
}

func UpdateUser(userId types.ID, c *UserUpdation, sec *session.Session) error {
	if !sec.IsAdmin() && userId != sec.Identity.ID {
		return bizerror.ErrForbidden
	}

	return persistence.ActiveDataSourceManager.GormDB(sec.Context).Transaction(func(tx *gorm.DB) error {
		user := User{ID: userId}
		if err := tx.Where(&user).First(&user).Error; err != nil {
			return err
		}
		if err := tx.Model(&user).Update(&User{Nickname: c.Nickname, Skills: c.Skills}).Error; err != nil {
			return err
		}
		return nil
	})
}

func UpdateBasicAuthSecret(u *BasicAuthUpdating, sec *session.Session) error {
	db := persistence.ActiveDataSourceManager.GormDB(sec.Context)
	user := User{}
	if err := db.Model(&User{}).Where(&User{ID: sec.Identity.ID, Secret: HashSha256(u.OriginalSecret)}).Scan(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return bizerror.ErrInvalidPassword
		}
		return err
	}

	return db.Model(&User{}).Where(&User{ID: sec.Identity.ID, Secret: HashSha256(u.OriginalSecret)}).
		Update(&User{Secret: HashSha256(u.NewSecret)}).Error
}

// FindUser loads one user by id, mapping missing records to domain.ErrNotFound.
func FindUser(tx *gorm.DB, id types.ID) (*User, error) {
	user := User{ID: id}
	if err := tx.Where(&user).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// QueryStudents returns the candidate pool for team matching.
func QueryStudents(tx *gorm.DB) ([]User, error) {
	var students []User
	if err := tx.Where(&User{Role: domain.RoleStudent}).Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

func QueryAccountNames(ids []types.ID) (map[types.ID]string, error) {
	if len(ids) == 0 {
		return map[types.ID]string{}, nil
	}
	db := persistence.ActiveDataSourceManager.GormDB(nil)
	var records []UserInfo
	if err := db.Model(&User{}).Where("id IN (?)", ids).Scan(&records).Error; err != nil {
		return nil, err
	}
	result := map[types.ID]string{}
	for _, r := range records {
		result[r.ID] = r.DisplayName()
	}
	return result, nil
}
