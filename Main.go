package main

import (
	"Storefront/config"
	"Storefront/jwt"
	"Storefront/notify"
	"Storefront/routers"
)

func main() {
	cfg, err := config.LoadConfig("config/config.yaml")
	if err != nil {
		panic("無法讀取設定檔")
	}

	db, err := config.SetupMySQLConnection(cfg)
	if err != nil {
		panic("無法連接到資料庫")
	}
	defer func() {
		dbInstance, _ := db.DB()
		_ = dbInstance.Close()
	}()

	rdb, err := config.SetupRedisConnection(cfg)
	if err != nil {
		panic("無法連接到Redis")
	}
	defer rdb.Close()

	jwt.Init(cfg.JWT.Secret)

	mailer := notify.NewMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
	wa := notify.NewWhatsAppClient(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.WhatsAppFrom)

	router := routers.SetupRouters(db, rdb, mailer, wa, cfg)
	router.Run(":" + cfg.App.Port)
}
