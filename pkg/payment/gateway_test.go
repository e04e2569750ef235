package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_CreateOrder(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"id": "gw_order_abc", "status": "created"})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, APIKey: "test-key", APISecret: "test-secret"})

	id, err := client.CreateOrder(context.Background(), "GS-20260101-0001", 4500, "USD")
	if err != nil {
		t.Fatalf("网关下单失败: %v", err)
	}
	if id != "gw_order_abc" {
		t.Errorf("id = %s, want gw_order_abc", id)
	}
	if gotPath != "/v1/orders" {
		t.Errorf("path = %s", gotPath)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("authorization = %s", gotAuth)
	}
	if gotBody["receipt"] != "GS-20260101-0001" || gotBody["amount"] != float64(4500) {
		t.Errorf("body = %+v", gotBody)
	}
}

func TestClient_CreateOrder_GatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, APIKey: "test-key"})
	if _, err := client.CreateOrder(context.Background(), "GS-1", 100, "USD"); err == nil {
		t.Error("网关 5xx 应返回错误")
	}
}

func TestClient_VerifySignature(t *testing.T) {
	client := NewClient(Config{APISecret: "test-secret"})

	sig := client.Sign("gw_order_abc", "gw_pay_xyz")
	if !client.VerifySignature("gw_order_abc", "gw_pay_xyz", sig) {
		t.Error("合法签名应通过校验")
	}
	if client.VerifySignature("gw_order_abc", "gw_pay_xyz", "forged") {
		t.Error("伪造签名不应通过")
	}
	if client.VerifySignature("gw_order_other", "gw_pay_xyz", sig) {
		t.Error("换单号后签名不应复用")
	}

	// 密钥不同则互不相认
	other := NewClient(Config{APISecret: "other-secret"})
	if other.VerifySignature("gw_order_abc", "gw_pay_xyz", sig) {
		t.Error("不同密钥的签名不应通过")
	}
}
