package routes

import (
	"github.com/gin-gonic/gin"

	"store-api/controllers"
	"store-api/middleware"
	"store-api/services"
)

// Controllers bundles everything RegisterRoutes needs to wire the API.
type Controllers struct {
	Auth     *controllers.AuthController
	Users    *controllers.UserController
	Products *controllers.ProductController
	Orders   *controllers.OrderController
	Branches *controllers.BranchController
	Tokens   *services.TokenService
}

// RegisterRoutes registers all application routes.
func RegisterRoutes(r *gin.Engine, ctl Controllers) {
	isAuth := middleware.Auth(ctl.Tokens)

	r.POST("/api/login", middleware.RateLimit(100, 50), ctl.Auth.Login)

	user := r.Group("/api/user")
	{
		user.GET("/role", ctl.Users.GetUsersByRole)
		user.GET("/phone", ctl.Users.GetUsersByPhoneNumber)
		user.GET("/:id", ctl.Users.GetUserByID)
	}

	admin := r.Group("/api/admin")
	{
		admin.GET("/profile", isAuth, ctl.Users.Profile)
		admin.POST("/", ctl.Users.CreateAdmin)
		admin.PUT("/:id", ctl.Users.UpdateUser)
		admin.DELETE("/:id", ctl.Users.DeleteUser)
	}

	staff := r.Group("/api/staff")
	{
		staff.GET("/profile", isAuth, ctl.Users.Profile)
		staff.POST("/", ctl.Users.CreateStaff)
		staff.PUT("/:id", ctl.Users.UpdateUser)
		staff.DELETE("/:id", ctl.Users.DeleteUser)
	}

	client := r.Group("/api/client")
	{
		client.GET("/profile", isAuth, ctl.Users.Profile)
		client.POST("/", ctl.Users.CreateClient)
		client.PUT("/:id", ctl.Users.UpdateUser)
		client.DELETE("/:id", ctl.Users.DeleteUser)
	}

	product := r.Group("/api/product")
	{
		product.GET("/", ctl.Products.GetProducts)
		product.GET("/discounted", ctl.Products.GetDiscountedProducts)
		product.GET("/search", ctl.Products.SearchProducts)
		product.GET("/categories", ctl.Products.GetProductCategories)
		product.GET("/brands", ctl.Products.GetProductBrands)
		product.GET("/:id", ctl.Products.GetProductByID)
		product.GET("/:id/related", ctl.Products.GetRelatedProducts)

		// Catalog writes are admin operations.
		product.POST("/", isAuth, middleware.IsAdmin(), ctl.Products.CreateProduct)
		product.PATCH("/:id", isAuth, middleware.IsAdmin(), ctl.Products.UpdateProduct)
		product.DELETE("/:id", isAuth, middleware.IsAdmin(), ctl.Products.DeleteProduct)
		product.PATCH("/:id/stock", isAuth, middleware.IsStaff(), ctl.Products.UpdateProductStock)
	}

	order := r.Group("/api/order")
	{
		order.GET("/", ctl.Orders.GetOrders)
		order.GET("/by-order-id", ctl.Orders.GetOrderByNumber)
		order.GET("/:id", ctl.Orders.GetOrderByID)
		order.POST("/", ctl.Orders.CreateOrder)
		order.PUT("/:id", ctl.Orders.UpdateOrder)
	}

	branch := r.Group("/api/branch")
	{
		branch.GET("/", ctl.Branches.GetBranches)
		branch.GET("/:id", ctl.Branches.GetBranchByID)
		branch.POST("/", ctl.Branches.CreateBranch)
		branch.POST("/add-staff", ctl.Branches.AddStaff)
		branch.DELETE("/delete-staff", ctl.Branches.RemoveStaff)
		branch.PUT("/:id", ctl.Branches.UpdateBranch)
		branch.DELETE("/:id", ctl.Branches.DeleteBranch)
	}
}
