package handlers

import (
	"yearbook/access"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Error string `json:"error"`
}

var (
	OKResponse       = Response{}
	DBError1Response = Response{"DB Error 1"}
	DBError2Response = Response{"DB Error 2"}
)

// Error renders an engine error with its mapped status code.
func Error(c *gin.Context, err error) {
	c.JSON(access.HTTPStatus(err), Response{Error: err.Error()})
}
