package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const TurnstileVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

type turnstileResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
	Hostname   string   `json:"hostname"`
}

type TurnstileClient struct {
	verifyURL  string
	secret     string
	httpClient *http.Client
}

func NewTurnstileClient(verifyURL, secret string, timeout time.Duration) *TurnstileClient {
	if verifyURL == "" {
		verifyURL = TurnstileVerifyURL
	}
	return &TurnstileClient{
		verifyURL:  verifyURL,
		secret:     secret,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *TurnstileClient) Verify(ctx context.Context, token, remoteIP string) (bool, error) {
	form := url.Values{}
	form.Set("secret", c.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("turnstile returned status %d", resp.StatusCode)
	}
	var out turnstileResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, err
	}
	if !out.Success {
		log.Printf("turnstile rejected token: %v", out.ErrorCodes)
	}
	return out.Success, nil
}
