package jwt

import (
	"Storefront/models"
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

var secretKey []byte

var ErrTokenBlacklisted = errors.New("token已加入黑名單")

// 設定簽章密鑰，啟動時呼叫一次
func Init(secret string) {
	secretKey = []byte(secret)
}

// 生成JWT Token
func GenerateToken(userID uint, name string, email string, expTime int64) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["userID"] = userID
	claims["name"] = name
	claims["email"] = email
	claims["exp"] = expTime

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// 驗證JWT Token並回傳UserID、名稱與信箱
func VerifyToken(tokenString *string, db *gorm.DB) (uint, string, string, error) {
	token, err := jwt.Parse(*tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secretKey, nil
	})
	if err != nil {
		return 0, "", "", err
	}

	if !token.Valid {
		return 0, "", "", jwt.ErrTokenSignatureInvalid
	}

	//檢查Token是否已因登出加入黑名單
	var blacklisted models.BlacklistToken
	err = db.Where("token = ?", *tokenString).First(&blacklisted).Error
	if err == nil {
		return 0, "", "", ErrTokenBlacklisted
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, "", "", err
	}

	claims := token.Claims.(jwt.MapClaims)
	userID := uint(claims["userID"].(float64))
	name := claims["name"].(string)
	email := claims["email"].(string)

	return userID, name, email, nil
}
