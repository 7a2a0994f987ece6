package wallet

import (
	"eventvenue/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupWalletRoutes(rg *gin.RouterGroup, controller *Controller) {
	routes := rg.Group("/wallet")
	routes.Use(middleware.JWTAuth())
	{
		routes.GET("/balance", controller.GetBalance)        // GET /api/v1/wallet/balance
		routes.GET("/transactions", controller.GetHistory)   // GET /api/v1/wallet/transactions
		routes.POST("/purchase", controller.PurchasePoints)  // POST /api/v1/wallet/purchase
	}
}
