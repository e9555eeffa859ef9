package routes

import (
	"torre_tracker/internal/controllers"
	"torre_tracker/internal/middleware"

	"github.com/gin-gonic/gin"
)

// ConsultaRoutes are read-only lookups shared by every authenticated role.
func ConsultaRoutes(r *gin.Engine) {
	consulta := r.Group("/")
	consulta.Use(middleware.RequireAuth())
	{
		consulta.GET("lineas", controllers.ListLineas)
		consulta.GET("lineas/:id/torres", controllers.ListTorresLinea)
		consulta.GET("torres/cercana", controllers.GetTorreCercana)
		consulta.GET("torres/:id", controllers.GetTorre)
		consulta.GET("torres/:id/poligono", controllers.GetPoligonoTorre)
	}
}
