package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/huyndo/acadmin/internal/app/controllers"
	"github.com/huyndo/acadmin/internal/config"
	"github.com/huyndo/acadmin/internal/middleware"
)

// crudController is the handler set every resource controller provides.
type crudController interface {
	Index(*gin.Context)
	Show(*gin.Context)
	Store(*gin.Context)
	Update(*gin.Context)
	Destroy(*gin.Context)
}

// SetupRouter registers the full API surface. Every guarded route carries
// its symbolic operation name, "{resource}.{action}", which the permission
// gate matches against the principal's permissions.
func SetupRouter(router *gin.Engine, ctrls *controllers.Container, appCfg config.App, authMW gin.HandlerFunc) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	api.POST("/login", ctrls.Auth.Login)
	api.POST("/refresh", ctrls.Auth.Refresh)

	secured := api.Group("")
	secured.Use(authMW)

	gate := func(operation string) gin.HandlerFunc {
		return middleware.Gate(appCfg, operation)
	}

	secured.GET("/me", gate(""), ctrls.Auth.Me)
	secured.POST("/me", gate(""), ctrls.Auth.UpdateMe)
	secured.POST("/logout", gate(""), ctrls.Auth.Logout)

	secured.GET("/permission", gate("permission.index"), ctrls.Permissions.Index)
	secured.POST("/menu/move", gate("menu.move"), ctrls.Menus.Move)

	registerResource(secured, "/role", "role", ctrls.Roles, gate)
	registerResource(secured, "/user", "user", ctrls.Users, gate)
	registerResource(secured, "/menu", "menu", ctrls.Menus, gate)
	registerResource(secured, "/theses", "theses", ctrls.Theses, gate)
	registerResource(secured, "/students", "students", ctrls.Students, gate)
	registerResource(secured, "/lecturers", "lecturers", ctrls.Lecturers, gate)
}

func registerResource(group *gin.RouterGroup, path, opPrefix string, ctrl crudController, gate func(string) gin.HandlerFunc) {
	group.GET(path, gate(opPrefix+".index"), ctrl.Index)
	group.POST(path, gate(opPrefix+".store"), ctrl.Store)
	group.GET(path+"/:id", gate(opPrefix+".show"), ctrl.Show)
	group.PUT(path+"/:id", gate(opPrefix+".update"), ctrl.Update)
	group.DELETE(path+"/:id", gate(opPrefix+".destroy"), ctrl.Destroy)
}
