package httperr

import (
	"github.com/gin-gonic/gin"
)

// Response is the error envelope every failed cart request renders.
// Detail carries machine-readable context such as the sync status after a
// failed merge.
type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

func NewResponse(status int, msg string, detail any) Response {
	resp := Response{Status: status, Detail: detail}
	resp.Error.Message = msg
	return resp
}

// AbortWithError keeps err on the gin context for the logging middleware
// and writes the envelope.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := NewResponse(status, msg, detail)
	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
