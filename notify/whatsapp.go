package notify

import (
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// 訂單摘要的單一品項，欄位名稱對應前端送來的格式
type OrderDetail struct {
	ProductName string `json:"product_name"`
	Quantity    uint   `json:"order_quantity"`
	Price       uint   `json:"order_price"`
}

// 寄送WhatsApp訊息的介面，方便測試時替換
type WhatsAppSender interface {
	SendOrderSummary(mobile string, customerName string, details []OrderDetail) error
}

type WhatsAppClient struct {
	client *twilio.RestClient
	from   string
}

func NewWhatsAppClient(accountSID string, authToken string, from string) *WhatsAppClient {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &WhatsAppClient{
		client: client,
		from:   from,
	}
}

func (w *WhatsAppClient) SendOrderSummary(mobile string, customerName string, details []OrderDetail) error {
	params := &openapi.CreateMessageParams{}
	params.SetFrom(w.from)
	params.SetTo("whatsapp:" + mobile)
	params.SetBody(formatOrderSummary(customerName, details))

	_, err := w.client.Api.CreateMessage(params)
	return err
}

func formatOrderSummary(customerName string, details []OrderDetail) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s 您好，\n感謝您的訂購！以下是您的訂單摘要：\n", customerName))
	for _, detail := range details {
		sb.WriteString(fmt.Sprintf("👉 %s - 數量：%d，價格：%d\n", detail.ProductName, detail.Quantity, detail.Price))
	}
	sb.WriteString("出貨時我們會再通知您！")
	return sb.String()
}
