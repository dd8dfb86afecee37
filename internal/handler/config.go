package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/policydraft/backend/config"
)

type ConfigHandler struct {
	cfg *config.Config
}

func NewConfigHandler(cfg *config.Config) *ConfigHandler {
	return &ConfigHandler{cfg: cfg}
}

type ConfigResponse struct {
	Gateway GatewayConfigResponse `json:"gateway"`
}

type GatewayConfigResponse struct {
	BaseURL string `json:"base_url"`
	APIKey  string `json:"api_key"`
	AgentID string `json:"agent_id"`
}

// Get 返回脱敏后的运行配置
func (h *ConfigHandler) Get(c *gin.Context) {
	resp := ConfigResponse{
		Gateway: GatewayConfigResponse{
			BaseURL: h.cfg.Gateway.BaseURL,
			APIKey:  maskKey(h.cfg.Gateway.APIKey),
			AgentID: h.cfg.Gateway.AgentID,
		},
	}

	c.JSON(http.StatusOK, resp)
}

// maskKey 密钥脱敏：保留前后各 4 位
func maskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "****" + key[len(key)-4:]
}
