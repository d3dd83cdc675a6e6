package handlers

import (
	"Storefront/models"
	"Storefront/notify"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// 儲存聯絡表單
func ContactHandler(c *gin.Context, db *gorm.DB) {
	var contactReq struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		Message   string `json:"message"`
	}
	if err := c.BindJSON(&contactReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "綁定請求資料錯誤",
			"error":   err.Error(),
		})
		return
	}

	contact := models.Contact{
		FirstName: contactReq.FirstName,
		LastName:  contactReq.LastName,
		Email:     contactReq.Email,
		Message:   contactReq.Message,
	}
	if err := db.Create(&contact).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "訊息送出失敗，請稍後再試",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "訊息已送出",
	})
}

// 儲存服務諮詢表單
func ServiceInquiryHandler(c *gin.Context, db *gorm.DB) {
	var serviceReq struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		Mobile    string `json:"mobile"`
		Gender    string `json:"gender"`
		City      string `json:"city"`
		State     string `json:"state"`
		Address   string `json:"address"`
		Inquiry   string `json:"inquiry"`
	}
	if err := c.BindJSON(&serviceReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "綁定請求資料錯誤",
			"error":   err.Error(),
		})
		return
	}

	inquiry := models.ServiceInquiry{
		FirstName: serviceReq.FirstName,
		LastName:  serviceReq.LastName,
		Email:     serviceReq.Email,
		Mobile:    serviceReq.Mobile,
		Gender:    serviceReq.Gender,
		City:      serviceReq.City,
		State:     serviceReq.State,
		Address:   serviceReq.Address,
		Inquiry:   serviceReq.Inquiry,
	}
	if err := db.Create(&inquiry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "諮詢送出失敗，請稍後再試",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "諮詢已送出",
	})
}

// 寄送WhatsApp訂單摘要，此端點的寄送失敗會直接回報給呼叫端
func SendWhatsAppHandler(c *gin.Context, wa notify.WhatsAppSender) {
	var whatsAppReq struct {
		Mobile       string               `json:"mobile"`
		CustomerName string               `json:"customerName"`
		OrderDetails []notify.OrderDetail `json:"orderDetails"`
	}
	if err := c.BindJSON(&whatsAppReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "綁定請求資料錯誤",
			"error":   err.Error(),
		})
		return
	}

	if whatsAppReq.Mobile == "" || whatsAppReq.CustomerName == "" || len(whatsAppReq.OrderDetails) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "缺少必要欄位，請提供完整的訂單資料",
		})
		return
	}

	err := wa.SendOrderSummary(whatsAppReq.Mobile, whatsAppReq.CustomerName, whatsAppReq.OrderDetails)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "WhatsApp訊息寄送失敗",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "WhatsApp訊息已送出",
	})
}
