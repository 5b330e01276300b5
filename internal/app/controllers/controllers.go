package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/selim/acadload/internal/app/auth"
	"github.com/selim/acadload/internal/app/models/dto"
	"github.com/selim/acadload/internal/middleware"
)

// parseIDParam parses the :id path parameter, writing a 400 response and
// returning false when it is not a number.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid ID").
			WithDetails("ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// requirePrincipal returns the authenticated principal, writing a 401
// response and returning false when it is missing. JWTAuth always sets it
// on protected routes; the guard covers misconfigured route wiring.
func requirePrincipal(ctx *gin.Context) (auth.Principal, bool) {
	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return auth.Principal{}, false
	}
	return principal, true
}

// bindJSON binds the request body, writing a 400 response and returning
// false on binding errors.
func bindJSON(ctx *gin.Context, target interface{}) bool {
	if err := ctx.ShouldBindJSON(target); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return false
	}
	return true
}
