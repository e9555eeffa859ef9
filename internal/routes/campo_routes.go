package routes

import (
	"torre_tracker/internal/controllers"
	"torre_tracker/internal/middleware"

	"github.com/gin-gonic/gin"
)

// CampoRoutes is the surface the mobile field app uses.
func CampoRoutes(r *gin.Engine) {
	campo := r.Group("/campo")
	campo.Use(middleware.RequireAuth())
	{
		campo.POST("/validar-ubicacion", controllers.ValidarUbicacion)
	}
}
