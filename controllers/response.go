package controllers

import (
	"net/http"
	"strconv"

	"pos-service/middleware"
	"pos-service/models"
	"pos-service/services"

	"github.com/gin-gonic/gin"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func respond(ctx *gin.Context, status int, message string, data interface{}) {
	ctx.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

func respondError(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, Envelope{Success: false, Message: message})
}

func respondServiceError(ctx *gin.Context, svcErr *services.ServiceError) {
	respondError(ctx, svcErr.StatusCode, svcErr.Message)
}

// actorFrom fetches the authenticated actor or writes a 401.
func actorFrom(ctx *gin.Context) (models.Actor, bool) {
	actor, ok := middleware.GetActor(ctx)
	if !ok {
		respondError(ctx, http.StatusUnauthorized, "Authentication required")
		return models.Actor{}, false
	}
	return actor, true
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		respondError(ctx, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func bindJSON(ctx *gin.Context, req interface{}) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid request: "+err.Error())
		return false
	}
	return true
}
