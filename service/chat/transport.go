package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"hotel-concierge-backend/config"
	"hotel-concierge-backend/utils"

	"github.com/avast/retry-go/v4"
	"github.com/tmc/langchaingo/llms"
)

const (
	// 流式输出耗时较长，单独配置 300s 超时
	streamTimeout = 300 * time.Second

	openStreamAttempts = 3
	defaultMaxTokens   = 1024
)

var ErrServiceUnavailable = errors.New("model service unavailable")

// 流式输出专用的长超时客户端
var transportHTTPClient = utils.NewHTTPClient(
	utils.WithTimeout(streamTimeout),
)

// HTTPError 上游返回非 2xx 时的错误，保留状态码用于区分可重试与否
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("model provider returned status %d: %s", e.StatusCode, e.Body)
}

// IsRetryable 仅限流可重试，配额/鉴权/服务端错误直接失败
func IsRetryable(err error) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusTooManyRequests
	}
	return false
}

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type wireFunction struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

type wireTool struct {
	Type     string       `json:"type"`
	Function wireFunction `json:"function"`
}

type chatCompletionRequest struct {
	Model      string        `json:"model"`
	Messages   []wireMessage `json:"messages"`
	Tools      []wireTool    `json:"tools,omitempty"`
	ToolChoice string        `json:"tool_choice,omitempty"`
	MaxTokens  int           `json:"max_tokens,omitempty"`
	Stream     bool          `json:"stream"`
}

// Transport 只负责打开到模型服务的 token 流，不解析任何事件
type Transport struct {
	baseURL   string
	apiKey    string
	model     string
	maxTokens int
	client    *http.Client
}

func NewTransport() *Transport {
	maxTokens := config.Cfg.Model.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &Transport{
		baseURL:   config.Cfg.Model.BaseURL,
		apiKey:    config.Cfg.Model.APIKey,
		model:     config.Cfg.Model.Name,
		maxTokens: maxTokens,
		client:    transportHTTPClient,
	}
}

func wireTools() []wireTool {
	specs := ToolSpecs()
	tools := make([]wireTool, 0, len(specs))
	for _, spec := range specs {
		tools = append(tools, wireTool{
			Type: "function",
			Function: wireFunction{
				Name:        spec.Name,
				Description: spec.Description,
				Parameters: map[string]any{
					"type":       "object",
					"properties": spec.Parameters,
					"required":   spec.Required,
				},
			},
		})
	}
	return tools
}

// OpenStream 发起一次开启工具调用的流式请求，返回未解析的事件流。
// 429 按退避重试，其余失败立即以 ErrServiceUnavailable 上抛
func (t *Transport) OpenStream(ctx context.Context, system string, history []llms.ChatMessage, query string) (io.ReadCloser, error) {
	messages := make([]wireMessage, 0, len(history)+2)
	messages = append(messages, wireMessage{Role: "system", Content: system})
	for _, msg := range history {
		var role string
		switch msg.GetType() {
		case llms.ChatMessageTypeAI:
			role = "assistant"
		case llms.ChatMessageTypeHuman:
			role = "user"
		default:
			continue
		}
		messages = append(messages, wireMessage{Role: role, Content: msg.GetContent()})
	}
	messages = append(messages, wireMessage{Role: "user", Content: query})

	body := chatCompletionRequest{
		Model:      t.model,
		Messages:   messages,
		Tools:      wireTools(),
		ToolChoice: "auto",
		MaxTokens:  t.maxTokens,
		Stream:     true,
	}

	var stream io.ReadCloser
	err := retry.Do(
		func() error {
			rc, err := t.open(ctx, body)
			if err != nil {
				return err
			}
			stream = rc
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(openStreamAttempts),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(IsRetryable),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Warn("Retrying to open model stream",
				"attempt", n+1,
				"err", err)
		}),
	)
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode != http.StatusTooManyRequests {
			return nil, fmt.Errorf("%w: status %d", ErrServiceUnavailable, httpErr.StatusCode)
		}
		return nil, err
	}
	return stream, nil
}

func (t *Transport) open(ctx context.Context, body chatCompletionRequest) (io.ReadCloser, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/chat/completions", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+t.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return resp.Body, nil
}
