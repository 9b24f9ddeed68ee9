package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/foodrepublic/pos-backend/pkg/apperr"
)

// fail writes the error envelope, mapping the error kind to a wire status.
func fail(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), gin.H{
		"success": false,
		"message": apperr.Message(err),
	})
}

// badRequest writes a plain 400 envelope for malformed payloads.
func badRequest(c *gin.Context, message string) {
	c.JSON(400, gin.H{"success": false, "message": message})
}
