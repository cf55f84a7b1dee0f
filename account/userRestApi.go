package account

import (
	"net/http"

	"gradflow/misc"
	"gradflow/session"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	UsersApiRoot = "/v1/users"

	CreateUserFunc = CreateUser
	QueryUsersFunc = QueryUsers
	UpdateUserFunc = UpdateUser
)

func RegisterUsersRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	users := r.Group(UsersApiRoot, middleWares...)
	users.GET("", HandleQueryUsers)
	users.POST("", HandleCreateUser)
	users.PUT(":id", HandleUpdateUser)
}

func HandleQueryUsers(c *gin.Context) {
	result, err := QueryUsersFunc(session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, result)
}

func HandleCreateUser(c *gin.Context) {
	payload := UserCreation{}
	if err := c.ShouldBindBodyWith(&payload, binding.JSON); err != nil {
		panic(err)
	}
	result, err := CreateUserFunc(&payload, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, result)
}

func HandleUpdateUser(c *gin.Context) {
	id, err := misc.BindingPathID(c)
	if err != nil {
		panic(err)
	}
	payload := UserUpdation{}
	if err := c.ShouldBindBodyWith(&payload, binding.JSON); err != nil {
		panic(err)
	}
	if err := UpdateUserFunc(id, &payload, session.ExtractSessionFromGinContext(c)); err != nil {
		panic(err)
	}
	c.Status(http.StatusOK)
}
