package controllers

import (
	"net/http"

	"pos-service/models"
	"pos-service/services"

	"github.com/gin-gonic/gin"
)

// UserController handles sign-in and staff account administration.
type UserController struct {
	userService services.UserService
}

func NewUserController(userService services.UserService) *UserController {
	return &UserController{userService: userService}
}

// Login handles POST /api/auth/login.
func (uc *UserController) Login(ctx *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(ctx, &req) {
		return
	}
	resp, svcErr := uc.userService.Login(ctx.Request.Context(), &req)
	if svcErr != nil {
		respondServiceError(ctx, svcErr)
		return
	}
	respond(ctx, http.StatusOK, "Login successful", resp)
}

// CreateUser handles POST /api/users.
func (uc *UserController) CreateUser(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	var req models.CreateUserRequest
	if !bindJSON(ctx, &req) {
		return
	}
	user, svcErr := uc.userService.CreateUser(ctx.Request.Context(), actor, &req)
	if svcErr != nil {
		respondServiceError(ctx, svcErr)
		return
	}
	respond(ctx, http.StatusCreated, "User created successfully", models.NewUserResponse(user))
}

// ListUsers handles GET /api/users.
func (uc *UserController) ListUsers(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	users, svcErr := uc.userService.ListUsers(ctx.Request.Context(), actor)
	if svcErr != nil {
		respondServiceError(ctx, svcErr)
		return
	}
	data := make([]models.UserResponse, 0, len(users))
	for i := range users {
		data = append(data, models.NewUserResponse(&users[i]))
	}
	respond(ctx, http.StatusOK, "Users retrieved", data)
}

// DeleteUser handles DELETE /api/users/:id.
func (uc *UserController) DeleteUser(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if svcErr := uc.userService.DeleteUser(ctx.Request.Context(), actor, id); svcErr != nil {
		respondServiceError(ctx, svcErr)
		return
	}
	respond(ctx, http.StatusOK, "User deleted successfully", nil)
}
