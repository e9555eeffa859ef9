package routes

import (
	"torre_tracker/internal/controllers"
	"torre_tracker/internal/middleware"

	"github.com/gin-gonic/gin"
)

func AdminRoutes(r *gin.Engine) {
	admin := r.Group("admin")
	admin.Use(middleware.RequireAuthWithRole("admin"))
	{
		admin.POST("/lineas", controllers.CreateLinea)
		admin.POST("/poligonos", controllers.CreatePoligono)
		admin.PUT("/poligonos/:id", controllers.UpdatePoligono)
		admin.GET("/usuarios/campo", controllers.ListFieldWorkers)

		// File imports: monthly Excel programming and KMZ/KML tower files
		admin.POST("/importar/programacion", controllers.ImportarProgramacion)
		admin.POST("/importar/kmz", controllers.ImportarKMZ)
	}
}
