package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/policydraft/backend/config"
	"github.com/policydraft/backend/internal/eventbus"
	"github.com/policydraft/backend/internal/model"
	"github.com/policydraft/backend/internal/pkg/gateway"
	"github.com/policydraft/backend/internal/pkg/sessionstore"
	"github.com/policydraft/backend/internal/repository"
	"github.com/policydraft/backend/internal/service"
	"gorm.io/gorm"
)

type stubGateway struct {
	result *gateway.InvokeResult
}

func (s *stubGateway) Invoke(ctx context.Context, prompt string) (*gateway.InvokeResult, error) {
	return s.result, nil
}

func newTestRouter(t *testing.T, gw service.GatewayInvoker) (*gin.Engine, *service.ChatService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db error: %v", err)
	}
	if err := db.AutoMigrate(&model.Session{}, &model.Message{}); err != nil {
		t.Fatalf("migrate error: %v", err)
	}

	chatService := service.NewChatService(
		&config.Config{},
		repository.NewSessionRepository(db),
		repository.NewMessageRepository(db),
		sessionstore.NewStore(time.Minute, time.Minute),
		gw,
		eventbus.NewBus(),
	)
	h := NewChatHandler(chatService)

	r := gin.New()
	r.POST("/api/sessions", h.CreateSession)
	r.GET("/api/sessions/:key", h.GetSession)
	r.GET("/api/sessions/:key/messages", h.GetMessages)
	r.POST("/api/sessions/:key/messages", h.Submit)
	r.GET("/api/sessions/:key/preview", h.GetPreview)
	r.GET("/api/sessions/:key/preview/render", h.GetPreviewRender)
	return r, chatService
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createSession(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doRequest(r, "POST", "/api/sessions", `{}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create session status = %d", w.Code)
	}
	var session model.Session
	if err := json.Unmarshal(w.Body.Bytes(), &session); err != nil {
		t.Fatalf("decode session error: %v", err)
	}
	return session.SessionKey
}

func TestSubmitEndpoint(t *testing.T) {
	gw := &stubGateway{result: &gateway.InvokeResult{
		Success: true,
		Response: json.RawMessage(`{
			"result": {
				"summary": "Done",
				"sub_agent_results": [
					{"agent_name": "Policy Drafting Agent", "output": {"policy_title": "Remote Work Policy"}}
				]
			}
		}`),
	}}
	r, _ := newTestRouter(t, gw)
	key := createSession(t, r)

	w := doRequest(r, "POST", "/api/sessions/"+key+"/messages", `{"content": "Create a remote work policy"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("submit status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Message model.Message            `json:"message"`
		Preview sessionstore.PreviewState `json:"preview"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response error: %v", err)
	}
	if resp.Message.Content != "Done" {
		t.Fatalf("unexpected reply: %+v", resp.Message)
	}
	if resp.Preview.Policy == nil || resp.Preview.Policy.PolicyTitle != "Remote Work Policy" {
		t.Fatalf("unexpected preview: %+v", resp.Preview)
	}

	// 消息按追加顺序可查
	w = doRequest(r, "GET", "/api/sessions/"+key+"/messages", "")
	if w.Code != http.StatusOK {
		t.Fatalf("messages status = %d", w.Code)
	}
	var messages []model.Message
	if err := json.Unmarshal(w.Body.Bytes(), &messages); err != nil {
		t.Fatalf("decode messages error: %v", err)
	}
	if len(messages) != 2 || messages[0].Role != model.RoleUser || messages[1].Role != model.RoleAssistant {
		t.Fatalf("unexpected transcript: %+v", messages)
	}
}

func TestSubmitEndpointEmptyPrompt(t *testing.T) {
	r, _ := newTestRouter(t, &stubGateway{result: &gateway.InvokeResult{Success: true}})
	key := createSession(t, r)

	w := doRequest(r, "POST", "/api/sessions/"+key+"/messages", `{"content": "  "}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestSubmitEndpointUnknownSession(t *testing.T) {
	r, _ := newTestRouter(t, &stubGateway{result: &gateway.InvokeResult{Success: true}})

	w := doRequest(r, "POST", "/api/sessions/missing/messages", `{"content": "x"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestPreviewRenderEndpoint(t *testing.T) {
	gw := &stubGateway{result: &gateway.InvokeResult{
		Success: true,
		Response: json.RawMessage(`{
			"sub_agent_results": [
				{"agent_name": "Compliance Checker", "output": {"overall_score": 85}}
			]
		}`),
	}}
	r, _ := newTestRouter(t, gw)
	key := createSession(t, r)

	// 初始状态：什么都不渲染
	w := doRequest(r, "GET", "/api/sessions/"+key+"/preview/render", "")
	if w.Code != http.StatusOK {
		t.Fatalf("render status = %d", w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != "null" {
		t.Fatalf("expected null render before submit, got %s", w.Body.String())
	}

	doRequest(r, "POST", "/api/sessions/"+key+"/messages", `{"content": "check"}`)

	w = doRequest(r, "GET", "/api/sessions/"+key+"/preview/render", "")
	var rendered struct {
		Compliance *struct {
			Score struct {
				Value    int    `json:"value"`
				Color    string `json:"color"`
				BarWidth int    `json:"bar_width"`
			} `json:"score"`
		} `json:"compliance"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &rendered); err != nil {
		t.Fatalf("decode render error: %v", err)
	}
	if rendered.Compliance == nil {
		t.Fatal("expected compliance render")
	}
	if rendered.Compliance.Score.Color != "green" || rendered.Compliance.Score.BarWidth != 85 {
		t.Fatalf("unexpected score render: %+v", rendered.Compliance.Score)
	}
}

func TestGetSessionEndpoint(t *testing.T) {
	r, _ := newTestRouter(t, &stubGateway{result: &gateway.InvokeResult{Success: true}})
	key := createSession(t, r)

	w := doRequest(r, "GET", "/api/sessions/"+key, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get session status = %d", w.Code)
	}
	var resp struct {
		Session  model.Session `json:"session"`
		Awaiting bool          `json:"awaiting"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if resp.Session.SessionKey != key || resp.Awaiting {
		t.Fatalf("unexpected session response: %+v", resp)
	}

	if w := doRequest(r, "GET", "/api/sessions/missing", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
