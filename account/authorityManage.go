package account

import (
	"gradflow/authority"
	"gradflow/persistence"

	"github.com/fundwit/go-commons/types"
)

var LoadPermFunc = LoadPerm

// LoadPerm resolves the global permissions of a user from its directory role.
func LoadPerm(uid types.ID) authority.Permissions {
	user := User{ID: uid}
	db := persistence.ActiveDataSourceManager.GormDB(nil)
	if err := db.Where(&user).First(&user).Error; err != nil {
		return authority.Permissions{}
	}
	if user.Role == "" {
		return authority.Permissions{}
	}
	return authority.Permissions{user.Role}
}
