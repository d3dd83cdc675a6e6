package handlers

import (
	"Storefront/jwt"
	"Storefront/models"
	"Storefront/notify"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 由姓名產生使用者名稱，例如 John Doe -> john_doe
func deriveUsername(firstName string, lastName string) string {
	return strings.ToLower(firstName) + "_" + strings.ToLower(lastName)
}

// 將完整姓名拆成名與姓，第一個字為名、其餘為姓
func splitFullName(fullName string) (string, string) {
	parts := strings.Fields(strings.TrimSpace(fullName))
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// 通知信為盡力寄送，失敗只記錄不影響請求
func sendEmailBestEffort(mailer notify.EmailSender, to string, subject string, body string) {
	if err := mailer.Send(to, subject, body); err != nil {
		log.Printf("寄送通知信失敗: %v", err)
	}
}

// 註冊帳號
func RegisterHandler(c *gin.Context, db *gorm.DB, mailer notify.EmailSender) {
	var registerReq struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		Password  string `json:"password"`
	}
	if err := c.BindJSON(&registerReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "綁定請求資料錯誤",
			"error":   err.Error(),
		})
		return
	}

	if registerReq.FirstName == "" || registerReq.LastName == "" ||
		registerReq.Email == "" || registerReq.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "所有欄位皆為必填",
		})
		return
	}

	//檢查信箱是否已註冊
	var existing models.User
	err := db.Where("email = ?", registerReq.Email).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "此信箱已被註冊，請直接登入",
		})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "資料庫錯誤",
			"error":   err.Error(),
		})
		return
	}

	//將密碼Hash後儲存，絕不儲存明文
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(registerReq.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "無法生成Hashed密碼",
			"error":   err.Error(),
		})
		return
	}

	newUser := models.User{
		Username:  deriveUsername(registerReq.FirstName, registerReq.LastName),
		FirstName: registerReq.FirstName,
		LastName:  registerReq.LastName,
		Email:     registerReq.Email,
		Password:  string(hashedPassword),
	}
	if err := db.Create(&newUser).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "無法儲存使用者資料至資料庫",
			"error":   err.Error(),
		})
		return
	}

	subject, body := notify.WelcomeEmail(registerReq.FirstName)
	sendEmailBestEffort(mailer, registerReq.Email, subject, body)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "註冊成功，請登入",
	})
}

// 密碼登入，Google帳號不適用此路徑
func LoginHandler(c *gin.Context, db *gorm.DB, mailer notify.EmailSender) {
	var loginReq struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BindJSON(&loginReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "綁定請求資料錯誤",
			"error":   err.Error(),
		})
		return
	}

	//檢查是否有此帳號（排除Google帳號）
	var user models.User
	err := db.Where("email = ? AND google_id IS NULL", loginReq.Email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "找不到此帳號，請先註冊",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "資料庫錯誤",
			"error":   err.Error(),
		})
		return
	}

	//檢查密碼是否正確
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(loginReq.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "密碼錯誤",
		})
		return
	}

	//生成有效期1小時的JWT Token
	name := user.FirstName + " " + user.LastName
	token, err := jwt.GenerateToken(user.ID, name, user.Email, time.Now().Add(time.Hour).Unix())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "生成JWT Token錯誤",
			"error":   err.Error(),
		})
		return
	}

	subject, body := notify.LoginAlertEmail(user.FirstName)
	sendEmailBestEffort(mailer, user.Email, subject, body)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "成功登入",
		"token":   token,
		"userId":  user.ID,
		"name":    name,
		"email":   user.Email,
	})
}

// Google帳號登入，無帳號時自動註冊，不檢查密碼
func GoogleLoginHandler(c *gin.Context, db *gorm.DB, mailer notify.EmailSender) {
	var googleReq struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		GoogleID string `json:"googleId"`
	}
	if err := c.BindJSON(&googleReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "綁定請求資料錯誤",
			"error":   err.Error(),
		})
		return
	}

	if googleReq.Name == "" || googleReq.Email == "" || googleReq.GoogleID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Google登入需要提供所有欄位",
		})
		return
	}

	//查詢與建立包在同一個事務，避免併發請求重複建立帳號
	var user models.User
	isNewUser := false
	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("google_id = ? OR email = ?", googleReq.GoogleID, googleReq.Email).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			firstName, lastName := splitFullName(googleReq.Name)
			user = models.User{
				FirstName: firstName,
				LastName:  lastName,
				Email:     googleReq.Email,
				GoogleID:  &googleReq.GoogleID,
				Password:  models.GoogleUserPassword,
			}
			isNewUser = true
			return tx.Create(&user).Error
		}
		if err != nil {
			return err
		}

		//帳號已存在但尚未連結Google ID
		if user.GoogleID == nil {
			user.GoogleID = &googleReq.GoogleID
			return tx.Model(&user).Update("google_id", googleReq.GoogleID).Error
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Google登入失敗",
			"error":   err.Error(),
		})
		return
	}

	//Google登入核發有效期7天的Token
	token, err := jwt.GenerateToken(user.ID, googleReq.Name, user.Email, time.Now().Add(7*24*time.Hour).Unix())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "生成JWT Token錯誤",
			"error":   err.Error(),
		})
		return
	}

	subject, body := notify.GoogleLoginEmail(user.FirstName, isNewUser)
	sendEmailBestEffort(mailer, user.Email, subject, body)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Google登入成功",
		"token":   token,
		"userId":  user.ID,
		"name":    googleReq.Name,
		"email":   user.Email,
	})
}

// 登出並將Token加入黑名單，Token驗證由AuthMiddleware處理
func LogOutHandler(c *gin.Context, db *gorm.DB, mailer notify.EmailSender) {
	token := c.GetString("Token")
	name := c.GetString("UserName")
	email := c.GetString("UserEmail")

	if err := db.Create(&models.BlacklistToken{Token: token}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "無法將Token加入黑名單",
			"error":   err.Error(),
		})
		return
	}

	subject, body := notify.LogoutAlertEmail(name)
	sendEmailBestEffort(mailer, email, subject, body)

	c.Header("Authorization", "")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "成功登出",
	})
}

// 申請重設密碼，產生32位元組的隨機Token並寄送連結
func ForgotPasswordHandler(c *gin.Context, db *gorm.DB, mailer notify.EmailSender, frontendBaseURL string) {
	var forgotReq struct {
		Email string `json:"email"`
	}
	if err := c.BindJSON(&forgotReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "綁定請求資料錯誤",
			"error":   err.Error(),
		})
		return
	}

	var user models.User
	err := db.Where("email = ?", forgotReq.Email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "找不到使用此信箱的帳號",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "資料庫錯誤",
			"error":   err.Error(),
		})
		return
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "無法生成重設密碼Token",
			"error":   err.Error(),
		})
		return
	}
	resetToken := hex.EncodeToString(tokenBytes)
	resetTokenExpire := time.Now().Add(time.Hour)

	err = db.Model(&user).Updates(map[string]interface{}{
		"reset_token":        resetToken,
		"reset_token_expire": resetTokenExpire,
	}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "無法儲存重設密碼Token",
			"error":   err.Error(),
		})
		return
	}

	//重設密碼信寄送失敗時整個請求視為失敗
	resetURL := fmt.Sprintf("%s/reset-password/%s", frontendBaseURL, resetToken)
	subject, html := notify.ResetPasswordEmail(user.FirstName, resetURL)
	if err := mailer.SendHTML(user.Email, subject, html); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "寄送重設密碼信失敗，請稍後再試",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "重設密碼連結已寄至您的信箱",
	})
}

// 以重設Token設定新密碼，Token用過即失效
func ResetPasswordHandler(c *gin.Context, db *gorm.DB) {
	token := c.Param("token")

	var resetReq struct {
		Password string `json:"password"`
	}
	if err := c.BindJSON(&resetReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "綁定請求資料錯誤",
			"error":   err.Error(),
		})
		return
	}
	if resetReq.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "請提供新密碼",
		})
		return
	}

	var user models.User
	err := db.Where("reset_token = ? AND reset_token_expire > ?", token, time.Now()).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "無效或過期的Token",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "資料庫錯誤",
			"error":   err.Error(),
		})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(resetReq.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "無法生成Hashed密碼",
			"error":   err.Error(),
		})
		return
	}

	//更新密碼並清除Token與期限
	err = db.Model(&user).Updates(map[string]interface{}{
		"password":           string(hashedPassword),
		"reset_token":        nil,
		"reset_token_expire": nil,
	}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "無法更新密碼",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "密碼重設成功，請重新登入",
	})
}

// 檢查重設Token是否仍有效，唯讀不變更任何資料
func VerifyResetTokenHandler(c *gin.Context, db *gorm.DB) {
	token := c.Param("token")

	var user models.User
	err := db.Where("reset_token = ? AND reset_token_expire > ?", token, time.Now()).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "無效或過期的Token",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "資料庫錯誤",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}
