package misc

import (
	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
)

type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func BindingPathID(c *gin.Context) (types.ID, error) {
	raw := c.Param("id")
	id, err := types.ParseID(raw)
	if err != nil {
		return 0, err
	}
	return id, nil
}
