package router

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"glowskin_dev_v1/internal/controller"
	"glowskin_dev_v1/internal/middleware"
	"glowskin_dev_v1/internal/model"
)

// Controllers 路由依赖的全部控制器
type Controllers struct {
	Auth         *controller.AuthController
	Brand        *controller.BrandController
	Category     *controller.CategoryController
	Product      *controller.ProductController
	Coupon       *controller.CouponController
	Cart         *controller.CartController
	Order        *controller.OrderController
	Review       *controller.ReviewController
	BlogPost     *controller.BlogPostController
	BlogTaxonomy *controller.BlogTaxonomyController
	BlogComment  *controller.BlogCommentController
	Analytics    *controller.AnalyticsController
}

// InitRoutes 注册所有路由
// 身份在中间件里解析一次，handler 从 context 取
func InitRoutes(r *gin.Engine, ctl Controllers) {
	// Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	api.Use(middleware.SessionID(), middleware.OptionalAuth())

	adminOnly := []gin.HandlerFunc{middleware.JWTAuth(), middleware.RequireRole(model.RoleAdmin)}

	// auth 鉴权组
	auth := api.Group("/auth")
	{
		auth.POST("/register", ctl.Auth.Register)
		auth.POST("/login", ctl.Auth.Login)
		auth.POST("/refresh", ctl.Auth.Refresh)
	}

	// 品牌
	brands := api.Group("/brands")
	{
		brands.GET("", ctl.Brand.ListBrands)
		brands.GET("/:id", ctl.Brand.GetBrand)
		brands.GET("/slug/:slug", ctl.Brand.GetBrandBySlug)
		brands.POST("", append(adminOnly, ctl.Brand.CreateBrand)...)
		brands.PUT("/:id", append(adminOnly, ctl.Brand.UpdateBrand)...)
		brands.DELETE("/:id", append(adminOnly, ctl.Brand.DeleteBrand)...)
	}

	// 商品分类
	categories := api.Group("/categories")
	{
		categories.GET("", ctl.Category.ListCategories)
		categories.GET("/:id", ctl.Category.GetCategory)
		categories.GET("/slug/:slug", ctl.Category.GetCategoryBySlug)
		categories.POST("", append(adminOnly, ctl.Category.CreateCategory)...)
		categories.PUT("/:id", append(adminOnly, ctl.Category.UpdateCategory)...)
		categories.DELETE("/:id", append(adminOnly, ctl.Category.DeleteCategory)...)
	}

	// 商品 + 图片
	products := api.Group("/products")
	{
		products.GET("", ctl.Product.ListProducts)
		products.GET("/:id", ctl.Product.GetProduct)
		products.GET("/slug/:slug", ctl.Product.GetProductBySlug)
		products.POST("", append(adminOnly, ctl.Product.CreateProduct)...)
		products.PUT("/:id", append(adminOnly, ctl.Product.UpdateProduct)...)
		products.DELETE("/:id", append(adminOnly, ctl.Product.DeleteProduct)...)

		products.GET("/:id/images", ctl.Product.ListProductImages)
		products.POST("/:id/images", append(adminOnly, ctl.Product.AddProductImage)...)
		products.PUT("/:id/images/:imageId", append(adminOnly, ctl.Product.UpdateProductImage)...)
		products.DELETE("/:id/images/:imageId", append(adminOnly, ctl.Product.DeleteProductImage)...)
	}

	// 优惠券：试算公开，管理接口仅管理员
	coupons := api.Group("/coupons")
	{
		coupons.POST("/validate", ctl.Coupon.ValidateCoupon)
		coupons.GET("", append(adminOnly, ctl.Coupon.ListCoupons)...)
		coupons.GET("/:id", append(adminOnly, ctl.Coupon.GetCoupon)...)
		coupons.POST("", append(adminOnly, ctl.Coupon.CreateCoupon)...)
		coupons.PUT("/:id", append(adminOnly, ctl.Coupon.UpdateCoupon)...)
		coupons.DELETE("/:id", append(adminOnly, ctl.Coupon.DeleteCoupon)...)
	}

	// 购物车 / 心愿单：匿名可用
	cartItems := api.Group("/cart-items")
	{
		cartItems.GET("", ctl.Cart.ListCartItems)
		cartItems.POST("", ctl.Cart.AddCartItem)
		cartItems.PUT("/:id", ctl.Cart.UpdateCartItem)
		cartItems.DELETE("/:id", ctl.Cart.RemoveCartItem)
		cartItems.DELETE("", ctl.Cart.ClearCart)
	}
	wishlistItems := api.Group("/wishlist-items")
	{
		wishlistItems.GET("", ctl.Cart.ListWishlistItems)
		wishlistItems.POST("", ctl.Cart.AddWishlistItem)
		wishlistItems.DELETE("/:id", ctl.Cart.RemoveWishlistItem)
	}

	// 订单：游客可下单，管理操作仅管理员
	orders := api.Group("/orders")
	{
		orders.POST("", middleware.ThrottleBySession("checkout", 2*time.Second), ctl.Order.Checkout)
		orders.GET("", ctl.Order.ListOrders)
		orders.GET("/stats", append(adminOnly, ctl.Order.OrderStats)...)
		orders.GET("/number/:number", ctl.Order.GetOrderByNumber)
		orders.GET("/:id", ctl.Order.GetOrder)
		orders.POST("/:id/cancel", ctl.Order.CancelOrder)
		orders.POST("/:id/confirm-payment", ctl.Order.ConfirmPayment)
		orders.PUT("/:id", append(adminOnly, ctl.Order.UpdateOrder)...)
		orders.DELETE("/:id", append(adminOnly, ctl.Order.DeleteOrder)...)
	}

	// 商品评价：发表需登录
	reviews := api.Group("/reviews")
	{
		reviews.GET("", ctl.Review.ListReviews)
		reviews.GET("/:id", ctl.Review.GetReview)
		reviews.POST("", middleware.JWTAuth(), ctl.Review.CreateReview)
		reviews.PUT("/:id", middleware.JWTAuth(), ctl.Review.UpdateReview)
		reviews.DELETE("/:id", middleware.JWTAuth(), ctl.Review.DeleteReview)
	}

	// 博客
	blog := api.Group("/blog")
	{
		posts := blog.Group("/posts")
		{
			posts.GET("", ctl.BlogPost.ListPosts)
			posts.GET("/slug/:slug", ctl.BlogPost.GetPostBySlug)
			posts.GET("/:id", ctl.BlogPost.GetPost)
			posts.POST("", append(adminOnly, ctl.BlogPost.CreatePost)...)
			posts.PUT("/:id", append(adminOnly, ctl.BlogPost.UpdatePost)...)
			posts.DELETE("/:id", append(adminOnly, ctl.BlogPost.DeletePost)...)

			// 评论挂在文章下，匿名可发
			posts.GET("/:id/comments", pathAlias("id", "postId"), ctl.BlogComment.ListComments)
			posts.POST("/:id/comments",
				pathAlias("id", "postId"),
				middleware.ThrottleBySession("comment", 10*time.Second),
				ctl.BlogComment.CreateComment)
		}

		blogCategories := blog.Group("/categories")
		{
			blogCategories.GET("", ctl.BlogTaxonomy.ListBlogCategories)
			blogCategories.GET("/:id", ctl.BlogTaxonomy.GetBlogCategory)
			blogCategories.POST("", append(adminOnly, ctl.BlogTaxonomy.CreateBlogCategory)...)
			blogCategories.PUT("/:id", append(adminOnly, ctl.BlogTaxonomy.UpdateBlogCategory)...)
			blogCategories.DELETE("/:id", append(adminOnly, ctl.BlogTaxonomy.DeleteBlogCategory)...)
		}

		blogTags := blog.Group("/tags")
		{
			blogTags.GET("", ctl.BlogTaxonomy.ListBlogTags)
			blogTags.GET("/:id", ctl.BlogTaxonomy.GetBlogTag)
			blogTags.POST("", append(adminOnly, ctl.BlogTaxonomy.CreateBlogTag)...)
			blogTags.PUT("/:id", append(adminOnly, ctl.BlogTaxonomy.UpdateBlogTag)...)
			blogTags.DELETE("/:id", append(adminOnly, ctl.BlogTaxonomy.DeleteBlogTag)...)
		}

		comments := blog.Group("/comments")
		{
			comments.PUT("/:id", middleware.JWTAuth(), ctl.BlogComment.UpdateComment)
			comments.POST("/:id/moderate", append(adminOnly, ctl.BlogComment.ModerateComment)...)
			comments.DELETE("/:id", middleware.JWTAuth(), ctl.BlogComment.DeleteComment)
		}

		analytics := blog.Group("/analytics")
		{
			analytics.POST("/events",
				middleware.ThrottleBySession("analytics", time.Second),
				ctl.Analytics.RecordEvent)
			analytics.GET("/events", append(adminOnly, ctl.Analytics.ListEvents)...)
			analytics.GET("/posts/:postId/summary", ctl.Analytics.GetSummary)
		}
	}
}

// pathAlias 把路径参数改名后传给 handler
// 同一前缀下 gin 不允许 :id 和 :postId 混用
func pathAlias(from, to string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Params = append(c.Params, gin.Param{Key: to, Value: c.Param(from)})
		c.Next()
	}
}
