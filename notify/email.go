package notify

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// 寄送通知信的介面，方便測試時替換
type EmailSender interface {
	Send(to string, subject string, body string) error
	SendHTML(to string, subject string, html string) error
}

type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(host string, port int, username string, password string, from string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *Mailer) Send(to string, subject string, body string) error {
	return m.send(to, subject, "text/plain", body)
}

func (m *Mailer) SendHTML(to string, subject string, html string) error {
	return m.send(to, subject, "text/html", html)
}

func (m *Mailer) send(to string, subject string, contentType string, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody(contentType, body)

	return m.dialer.DialAndSend(msg)
}

// 註冊成功通知信
func WelcomeEmail(firstName string) (string, string) {
	subject := "歡迎加入我們的平台！"
	body := fmt.Sprintf("%s 您好，\n\n感謝您完成註冊，現在可以登入您的帳號開始購物了。\n\n客服團隊敬上", firstName)
	return subject, body
}

// 登入通知信
func LoginAlertEmail(firstName string) (string, string) {
	subject := "登入成功通知"
	body := fmt.Sprintf("%s 您好，\n\n您的帳號剛剛成功登入。如果這不是您本人的操作，請立即修改密碼。\n\n客服團隊敬上", firstName)
	return subject, body
}

// Google登入通知信，新舊帳號文案不同
func GoogleLoginEmail(firstName string, isNewUser bool) (string, string) {
	action := "登入"
	if isNewUser {
		action = "註冊並登入"
	}
	subject := fmt.Sprintf("登入通知：您剛剛透過Google%s本網站", action)
	body := fmt.Sprintf("%s 您好，\n\n您已成功透過Google帳號%s本網站。如果這不是您本人的操作，請立即重設密碼。\n\n客服團隊敬上", firstName, action)
	return subject, body
}

// 登出通知信
func LogoutAlertEmail(name string) (string, string) {
	subject := "登出通知"
	body := fmt.Sprintf("%s 您好，\n\n您已成功登出。如果這不是您本人的操作，請立即修改密碼。\n\n客服團隊敬上", name)
	return subject, body
}

// 重設密碼信，連結有效時間為1小時
func ResetPasswordEmail(firstName string, resetURL string) (string, string) {
	subject := "密碼重設請求"
	html := fmt.Sprintf(
		"<p>%s 您好，</p><p>請點擊以下連結重設您的密碼：</p><a href=\"%s\" target=\"_blank\">%s</a><p>此連結有效時間為1小時。</p>",
		firstName, resetURL, resetURL,
	)
	return subject, html
}
