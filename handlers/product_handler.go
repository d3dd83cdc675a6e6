package handlers

import (
	"Storefront/models"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const productCacheKey = "products"

type productData struct {
	ID          uint   `json:"product_id"`
	Name        string `json:"product_name"`
	Price       uint   `json:"price"`
	Stock       uint   `json:"stock"`
	Description string `json:"description"`
	ImageURL    string `json:"image"`
}

func toProductData(product models.Product) productData {
	return productData{
		ID:          product.ID,
		Name:        product.Name,
		Price:       product.Price,
		Stock:       product.Stock,
		Description: product.Description,
		ImageURL:    product.ImageURL,
	}
}

// 以商品ID為分數將商品列表寫入Redis，失敗只記錄不影響請求
func refreshProductCache(c *gin.Context, rdb *redis.Client, products []models.Product) {
	if err := rdb.Del(c, productCacheKey).Err(); err != nil {
		log.Printf("無法清除Redis商品快取: %v", err)
		return
	}

	for _, product := range products {
		productJSON, err := json.Marshal(product)
		if err != nil {
			log.Printf("無法序列化商品資料: %v", err)
			continue
		}

		err = rdb.ZAdd(c, productCacheKey, redis.Z{
			Score:  float64(product.ID),
			Member: productJSON,
		}).Err()
		if err != nil {
			log.Printf("無法將商品資料加入Redis: %v", err)
			continue
		}
	}
}

// 查詢商品列表，優先讀取Redis快取，快取失效則改讀資料庫並回填
func GetProductListHandler(c *gin.Context, db *gorm.DB, rdb *redis.Client) {
	redisProducts, err := rdb.ZRange(c, productCacheKey, 0, -1).Result()
	if err != nil || len(redisProducts) == 0 {
		var products []models.Product
		if err := db.Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "無法讀取商品列表",
				"error":   err.Error(),
			})
			return
		}

		refreshProductCache(c, rdb, products)

		productsData := make([]productData, len(products))
		for i, product := range products {
			productsData[i] = toProductData(product)
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"products": productsData,
		})
		return
	}

	productsData := make([]productData, 0, len(redisProducts))
	for _, redisProduct := range redisProducts {
		var product models.Product
		if err := json.Unmarshal([]byte(redisProduct), &product); err != nil {
			log.Printf("無法反序列化商品資料: %v", err)
			continue
		}
		productsData = append(productsData, toProductData(product))
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"products": productsData,
	})
}

// 查詢單一商品詳細資料
func GetProductDataHandler(c *gin.Context, db *gorm.DB) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "商品ID格式錯誤",
		})
		return
	}

	var product models.Product
	err = db.First(&product, productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "找不到商品",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "查詢商品資料失敗",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"product": toProductData(product),
	})
}

// 查詢商品庫存數量
func GetProductStockHandler(c *gin.Context, db *gorm.DB) {
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "商品ID格式錯誤",
		})
		return
	}

	var product models.Product
	err = db.Select("stock").First(&product, productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "找不到商品",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "查詢商品庫存錯誤",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stock":   product.Stock,
	})
}
