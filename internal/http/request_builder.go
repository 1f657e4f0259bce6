package http

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
)

// Validator is implemented by request bodies that check themselves.
type Validator interface {
	Validate() error
}

// BuildRequest decodes the JSON body of c into a T.
func BuildRequest[T any](c *gin.Context) (*T, error) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// BuildRequestAndValidate decodes the JSON body of c and runs its Validate
// method when T has one.
func BuildRequestAndValidate[T any](c *gin.Context) (*T, error) {
	req, err := BuildRequest[T](c)
	if err != nil {
		return nil, err
	}
	if v, ok := any(req).(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	return req, nil
}

// BuildOptionalRequest decodes the JSON body of c, or returns the zero T when
// the request has no body. Scanners post validate and put-in-pack without one.
func BuildOptionalRequest[T any](c *gin.Context) (*T, error) {
	var req T
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return &req, nil
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return &req, nil
		}
		return nil, err
	}
	return &req, nil
}
