package util

import "github.com/gin-gonic/gin"

// BindForm binds the urlencoded or multipart body of c into a T.
func BindForm[T any](c *gin.Context) (T, error) {
	var params T

	if err := c.ShouldBind(&params); err != nil {
		return params, err
	}

	return params, nil
}
