package routers

import (
	"Storefront/config"
	"Storefront/handlers"
	"Storefront/middleware"
	"Storefront/notify"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func SetupRouters(db *gorm.DB, rdb *redis.Client, mailer notify.EmailSender, wa notify.WhatsAppSender, cfg config.Config) *gin.Engine {
	//建立Gin路由器
	router := gin.Default()
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Authorization")
		c.Next()
	})
	//為每個請求附上識別碼方便追查
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("X-Request-Id", uuid.New().String())
		c.Next()
	})
	err := router.SetTrustedProxies(nil)
	if err != nil {
		return nil
	}

	//設定商品圖片靜態資源路徑
	router.Static("/images", "./public/images")

	router.OPTIONS("/*path", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	////帳號相關
	//註冊帳號
	router.POST("/api/register", func(context *gin.Context) {
		handlers.RegisterHandler(context, db, mailer)
	})
	//登入帳號
	router.POST("/api/login", func(context *gin.Context) {
		handlers.LoginHandler(context, db, mailer)
	})
	//Google帳號登入
	router.POST("/api/google-login", func(context *gin.Context) {
		handlers.GoogleLoginHandler(context, db, mailer)
	})
	//登出（需要Bearer Token）
	router.POST("/api/logout", middleware.AuthMiddleware(db), func(context *gin.Context) {
		handlers.LogOutHandler(context, db, mailer)
	})
	//申請重設密碼
	router.POST("/api/forgot-password", func(context *gin.Context) {
		handlers.ForgotPasswordHandler(context, db, mailer, cfg.App.FrontendBaseURL)
	})
	//以Token重設密碼
	router.POST("/api/reset-password/:token", func(context *gin.Context) {
		handlers.ResetPasswordHandler(context, db)
	})
	//檢查重設Token是否有效
	router.GET("/api/verify-token/:token", func(context *gin.Context) {
		handlers.VerifyResetTokenHandler(context, db)
	})

	////商品相關
	//查詢商品列表
	router.GET("/api/products", func(context *gin.Context) {
		handlers.GetProductListHandler(context, db, rdb)
	})
	//查詢商品詳細資料
	router.GET("/api/products/:id", func(context *gin.Context) {
		handlers.GetProductDataHandler(context, db)
	})
	//查詢商品庫存
	router.GET("/api/product-stock/:productId", func(context *gin.Context) {
		handlers.GetProductStockHandler(context, db)
	})

	////購物車相關
	//新增商品至購物車
	router.POST("/api/add-to-cart", func(context *gin.Context) {
		handlers.AddToCartHandler(context, db)
	})
	//查詢購物車商品
	router.GET("/api/cart/:userId", func(context *gin.Context) {
		handlers.GetCartHandler(context, db)
	})
	//刪除購物車商品
	router.DELETE("/api/remove-item", func(context *gin.Context) {
		handlers.RemoveCartItemHandler(context, db)
	})
	//更新購物車商品數量
	router.PUT("/api/update-cart-item", func(context *gin.Context) {
		handlers.UpdateCartItemHandler(context, db)
	})

	////訂單相關
	//送出訂單並清空購物車
	router.POST("/api/place-order", func(context *gin.Context) {
		handlers.PlaceOrderHandler(context, db)
	})
	//查詢訂單列表
	router.GET("/api/orders/:userId", func(context *gin.Context) {
		handlers.GetOrdersHandler(context, db)
	})
	//取消訂單
	router.PATCH("/api/orders/cancel/:orderId", func(context *gin.Context) {
		handlers.CancelOrderHandler(context, db)
	})

	////聯絡與通知相關
	//聯絡表單
	router.POST("/api/contact", func(context *gin.Context) {
		handlers.ContactHandler(context, db)
	})
	//服務諮詢表單
	router.POST("/api/service", func(context *gin.Context) {
		handlers.ServiceInquiryHandler(context, db)
	})
	//寄送WhatsApp訂單摘要
	router.POST("/api/send-whatsapp", func(context *gin.Context) {
		handlers.SendWhatsAppHandler(context, wa)
	})

	return router
}
