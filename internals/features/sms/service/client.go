package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"coachingku_backend/internals/configs"
	settingsService "coachingku_backend/internals/features/settings/service"
)

const (
	providerSendURL    = "http://bulksmsbd.net/api/smsapi"
	providerBalanceURL = "http://bulksmsbd.net/api/getBalanceApi"
	sendTimeout        = 15 * time.Second
)

var httpClient = &http.Client{Timeout: sendTimeout}

// Config is the resolved SMS provider configuration. Env vars override the
// values stored in site settings.
type Config struct {
	Enabled  bool
	ApiKey   string
	SenderId string
	Template string
	Website  string
}

// ResolveConfig merges env overrides onto the settings snapshot.
func ResolveConfig() Config {
	cfg := Config{Template: settingsService.DefaultResultSmsTemplate}
	if snap, ok := settingsService.Get(); ok {
		cfg.Enabled = snap.SmsEnabled
		cfg.ApiKey = snap.SmsApiKey
		cfg.SenderId = snap.SmsSenderId
		cfg.Template = snap.ResultSmsTemplate
		cfg.Website = snap.WebsiteUrl
	}
	if v := configs.GetEnv("BULKSMSBD_API_KEY"); v != "" {
		cfg.ApiKey = v
	}
	if v := configs.GetEnv("BULKSMSBD_SENDER_ID"); v != "" {
		cfg.SenderId = v
	}
	if configs.GetEnvBool("BULKSMSBD_ENABLED", false) {
		cfg.Enabled = true
	}
	return cfg
}

// Ready reports whether sends may run at all: the service must be enabled
// and both credentials present.
func (c Config) Ready() bool {
	return c.Enabled && c.ApiKey != "" && c.SenderId != ""
}

// sendViaProvider performs one provider call. Success is response_code 202,
// or HTTP 200 with success:true.
func sendViaProvider(ctx context.Context, cfg Config, phone, message string) (map[string]interface{}, error) {
	q := url.Values{}
	q.Set("api_key", cfg.ApiKey)
	q.Set("type", "text")
	q.Set("number", phone)
	q.Set("senderid", cfg.SenderId)
	q.Set("message", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, providerSendURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	body := map[string]interface{}{}
	if err := json.Unmarshal(raw, &body); err != nil {
		body = map[string]interface{}{"raw": string(raw)}
	}
	body["http_status"] = resp.StatusCode

	if code, ok := body["response_code"].(float64); ok && int(code) == 202 {
		return body, nil
	}
	if success, ok := body["success"].(bool); ok && success && resp.StatusCode == http.StatusOK {
		return body, nil
	}
	return body, fmt.Errorf("provider rejected send (http %d)", resp.StatusCode)
}

// CheckBalance proxies the provider balance endpoint.
func CheckBalance(ctx context.Context) (map[string]interface{}, error) {
	cfg := ResolveConfig()
	if cfg.ApiKey == "" {
		return nil, fmt.Errorf("SMS API key not configured")
	}

	q := url.Values{}
	q.Set("api_key", cfg.ApiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, providerBalanceURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	body := map[string]interface{}{}
	if err := json.Unmarshal(raw, &body); err != nil {
		body = map[string]interface{}{"raw": string(raw)}
	}
	return body, nil
}
