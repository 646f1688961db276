package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/MikeMC777/cafelove/docs"
	"github.com/MikeMC777/cafelove/internal/auth"
	"github.com/MikeMC777/cafelove/internal/httpx"
	"github.com/MikeMC777/cafelove/internal/menu"
	"github.com/MikeMC777/cafelove/internal/order"
	"github.com/MikeMC777/cafelove/internal/user"
)

type routerDeps struct {
	Users     *user.Service
	Orders    *order.Service
	Menu      menu.Repository
	SeedItems []menu.Item
	Verifier  auth.Verifier
	AdminKey  string
	Origin    string
	Log       *logrus.Entry
}

func newRouter(d routerDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger(d.Log), httpx.CORS(d.Origin))

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	api.POST("/auth/signup", signupHandler(d.Users, d.Log))
	api.POST("/auth/login", loginHandler(d.Users, d.Log))
	api.GET("/menu", getMenuHandler(d.Menu, d.Log))
	api.POST("/menu/seed", httpx.RequireAdminKey(d.AdminKey, d.Log), seedMenuHandler(d.Menu, d.SeedItems, d.Log))

	authed := api.Group("", httpx.RequireAuth(d.Verifier, d.Log))
	authed.POST("/orders", createOrderHandler(d.Orders, d.Log))
	authed.GET("/orders", listMyOrdersHandler(d.Orders, d.Log))
	authed.GET("/orders/:id", getOrderHandler(d.Orders, d.Log))
	authed.GET("/users/:user_id/orders", listOrdersByUserHandler(d.Orders, d.Log))
	authed.GET("/profile", getProfileHandler(d.Users, d.Log))
	authed.PUT("/profile", updateProfileHandler(d.Users, d.Log))

	return r
}
