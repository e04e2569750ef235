package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// ==================== 支付网关客户端 ====================

// Config 网关配置
type Config struct {
	BaseURL   string // 网关接口地址
	APIKey    string
	APISecret string // 验签用
	Timeout   time.Duration
}

// Client 支付网关 HTTP 客户端
type Client struct {
	http   *resty.Client
	secret string
}

// NewClient 创建网关客户端
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	http := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetHeader("Authorization", "Bearer "+cfg.APIKey).
		SetHeader("User-Agent", "GlowSkin-Go-App/1.0")

	return &Client{http: http, secret: cfg.APISecret}
}

// createOrderResp 网关下单响应
type createOrderResp struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// CreateOrder 向网关登记一笔待支付订单
func (c *Client) CreateOrder(ctx context.Context, orderNumber string, amount int64, currency string) (string, error) {
	var result createOrderResp

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{
			"receipt":  orderNumber,
			"amount":   amount, // 分
			"currency": currency,
		}).
		SetResult(&result).
		Post("/v1/orders")
	if err != nil {
		return "", fmt.Errorf("gateway create order: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("gateway create order: status %d", resp.StatusCode())
	}
	return result.ID, nil
}

// VerifySignature 校验支付回执签名
// 签名算法：HMAC-SHA256(gatewayOrderID + "|" + gatewayPaymentID, secret)
func (c *Client) VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(c.secret))
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// Sign 生成签名，测试和本地联调用
func (c *Client) Sign(gatewayOrderID, gatewayPaymentID string) string {
	mac := hmac.New(sha256.New, []byte(c.secret))
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
