package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/MikeMC777/cafelove/internal/apperr"
	"github.com/MikeMC777/cafelove/internal/httpx"
	"github.com/MikeMC777/cafelove/internal/menu"
	"github.com/MikeMC777/cafelove/internal/order"
	"github.com/MikeMC777/cafelove/internal/user"
)

const maxPageSize = 100

// pageParams reads ?limit=&offset=. A missing limit means everything.
func pageParams(c *gin.Context) (limit, offset int, err error) {
	if v := c.Query("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit < 0 || limit > maxPageSize {
			return 0, 0, apperr.Validation("limit", "limit must be between 0 and 100")
		}
	}
	if v := c.Query("offset"); v != "" {
		offset, err = strconv.Atoi(v)
		if err != nil || offset < 0 {
			return 0, 0, apperr.Validation("offset", "offset must be a non-negative integer")
		}
	}
	return limit, offset, nil
}

// signupHandler godoc
// @Summary      Register a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      user.SignupRequest  true  "new user"
// @Success      201   {object}  user.Profile
// @Failure      400   {object}  httpx.HTTPError
// @Failure      409   {object}  httpx.HTTPError
// @Router       /auth/signup [post]
func signupHandler(users *user.Service, log *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in user.SignupRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.BadRequest(c, "invalid json")
			return
		}
		p, err := users.Signup(c.Request.Context(), in)
		if err != nil {
			httpx.WriteError(c, log, err)
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

// loginHandler godoc
// @Summary      Log in and obtain a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      user.LoginRequest  true  "credentials"
// @Success      200   {object}  user.LoginResponse
// @Failure      400   {object}  httpx.HTTPError
// @Failure      401   {object}  httpx.HTTPError
// @Router       /auth/login [post]
func loginHandler(users *user.Service, log *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in user.LoginRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.BadRequest(c, "invalid json")
			return
		}
		token, err := users.Login(c.Request.Context(), in.Email, in.Password)
		if err != nil {
			httpx.WriteError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, user.LoginResponse{Token: token})
	}
}

// getMenuHandler godoc
// @Summary      Menu grouped by category
// @Tags         menu
// @Produce      json
// @Success      200  {object}  menu.Menu
// @Failure      500  {object}  httpx.HTTPError
// @Router       /menu [get]
func getMenuHandler(repo menu.Repository, log *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := repo.List(c.Request.Context())
		if err != nil {
			httpx.WriteError(c, log, apperr.Persistence("list menu", err))
			return
		}
		c.JSON(http.StatusOK, menu.Group(items))
	}
}

// seedMenuHandler godoc
// @Summary      Replace the catalog with the default items
// @Tags         menu
// @Produce      json
// @Param        X-Admin-Key  header    string  false  "admin key"
// @Success      200          {object}  menu.SeedResponse
// @Failure      403          {object}  httpx.HTTPError
// @Failure      500          {object}  httpx.HTTPError
// @Router       /menu/seed [post]
func seedMenuHandler(repo menu.Repository, items []menu.Item, log *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := repo.Seed(c.Request.Context(), items); err != nil {
			httpx.WriteError(c, log, apperr.Persistence("seed menu", err))
			return
		}
		log.WithField("count", len(items)).Info("menu reseeded")
		c.JSON(http.StatusOK, menu.SeedResponse{Message: "menu seeded", Count: len(items)})
	}
}

// createOrderHandler godoc
// @Summary      Place an order for the caller
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      order.CreateOrderRequest  true  "items with delivery address"
// @Success      201   {object}  order.CreateOrderResponse
// @Failure      400   {object}  httpx.HTTPError
// @Failure      401   {object}  httpx.HTTPError
// @Router       /orders [post]
func createOrderHandler(orders *order.Service, log *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in order.CreateOrderRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.BadRequest(c, "invalid json")
			return
		}
		o, err := orders.Create(c.Request.Context(), httpx.UserID(c), in)
		if err != nil {
			httpx.WriteError(c, log, err)
			return
		}
		c.JSON(http.StatusCreated, order.CreateOrderResponse{Message: "Order placed successfully", Order: *o})
	}
}

// listMyOrdersHandler godoc
// @Summary      The caller's orders, newest first
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query     int  false  "page size (max 100)"
// @Param        offset  query     int  false  "offset"
// @Success      200     {array}   order.Order
// @Failure      401     {object}  httpx.HTTPError
// @Router       /orders [get]
func listMyOrdersHandler(orders *order.Service, log *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := httpx.UserID(c)
		listOrders(c, orders, log, uid, uid)
	}
}

// listOrdersByUserHandler godoc
// @Summary      Orders of one user; only that user may read them
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      string  true   "user id"
// @Param        limit    query     int     false  "page size (max 100)"
// @Param        offset   query     int     false  "offset"
// @Success      200      {array}   order.Order
// @Failure      401      {object}  httpx.HTTPError
// @Failure      403      {object}  httpx.HTTPError
// @Router       /users/{user_id}/orders [get]
func listOrdersByUserHandler(orders *order.Service, log *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		listOrders(c, orders, log, httpx.UserID(c), c.Param("user_id"))
	}
}

func listOrders(c *gin.Context, orders *order.Service, log *logrus.Entry, callerID, ownerID string) {
	limit, offset, err := pageParams(c)
	if err != nil {
		httpx.WriteError(c, log, err)
		return
	}
	out, err := orders.List(c.Request.Context(), callerID, ownerID, limit, offset)
	if err != nil {
		httpx.WriteError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// getOrderHandler godoc
// @Summary      One of the caller's orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "order id"
// @Success      200  {object}  order.Order
// @Failure      403  {object}  httpx.HTTPError
// @Failure      404  {object}  httpx.HTTPError
// @Router       /orders/{id} [get]
func getOrderHandler(orders *order.Service, log *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := orders.Get(c.Request.Context(), httpx.UserID(c), c.Param("id"))
		if err != nil {
			httpx.WriteError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

// getProfileHandler godoc
// @Summary      The caller's profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  user.Profile
// @Failure      401  {object}  httpx.HTTPError
// @Failure      404  {object}  httpx.HTTPError
// @Router       /profile [get]
func getProfileHandler(users *user.Service, log *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := users.Profile(c.Request.Context(), httpx.UserID(c))
		if err != nil {
			httpx.WriteError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// updateProfileHandler godoc
// @Summary      Update name, contact or address
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      user.UpdateProfileRequest  true  "fields to change"
// @Success      200   {object}  user.UpdateProfileResponse
// @Failure      400   {object}  httpx.HTTPError
// @Failure      404   {object}  httpx.HTTPError
// @Router       /profile [put]
func updateProfileHandler(users *user.Service, log *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in user.UpdateProfileRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.BadRequest(c, "invalid json")
			return
		}
		p, err := users.UpdateProfile(c.Request.Context(), httpx.UserID(c), in)
		if err != nil {
			httpx.WriteError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, user.UpdateProfileResponse{Message: "Profile updated", User: *p})
	}
}
