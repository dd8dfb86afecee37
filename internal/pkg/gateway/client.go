package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/policydraft/backend/config"
	"k8s.io/klog/v2"
)

// Client 智能体网关客户端
// 网关负责运行多代理编排（制度起草、合规检查等子代理），
// 本服务只消费 success/response/error 三元组，对传输之外的细节不做假设
type Client struct {
	BaseURL string
	APIKey  string
	AgentID string
	Client  *http.Client
}

// NewClient 创建新的网关客户端
func NewClient(cfg *config.Config) *Client {
	timeout := cfg.Gateway.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &Client{
		BaseURL: cfg.Gateway.BaseURL,
		APIKey:  cfg.Gateway.APIKey,
		AgentID: cfg.Gateway.AgentID,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Invoke 提交一次编排请求并等待结果
// 网络异常、非 2xx 状态码、响应解析失败都作为错误返回，由控制器归类处理；
// 网关自身报告的失败（success=false）不算错误，原样返回给上层
func (c *Client) Invoke(ctx context.Context, prompt string) (*InvokeResult, error) {
	url := c.BaseURL + "/invoke"
	klog.V(6).Infof("[gateway.Invoke] 发送编排请求: url=%s, agentID=%s, promptLen=%d", url, c.AgentID, len(prompt))

	jsonData, err := json.Marshal(InvokeRequest{
		AgentID: c.AgentID,
		Prompt:  prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var result InvokeResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	klog.V(6).Infof("[gateway.Invoke] 编排请求完成: success=%v, responseLen=%d", result.Success, len(result.Response))
	return &result, nil
}
