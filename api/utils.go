package api

import (
	"github.com/gin-gonic/gin"

	"github.com/openarcade/arcade-server/tokens"
)

const (
	ErrorMessage500 = "Something went wrong!"
)

// Every route answers with the same {status, message, data} envelope;
// for errors the message is the taxonomy kind when one applies.
func errorResponse(msg string) gin.H {
	return gin.H{
		"status":  "error",
		"message": msg,
	}
}

func successResponse(msg string, data any) gin.H {
	return gin.H{
		"status":  "success",
		"message": msg,
		"data":    data,
	}
}

// GetPayload returns the identity the auth middleware stored on the
// request context.
func GetPayload(c *gin.Context) (*tokens.Payload, bool) {
	v, ok := c.Get(string(authContextKey))
	if !ok {
		return nil, false
	}

	payload, ok := v.(*tokens.Payload)
	return payload, ok
}
