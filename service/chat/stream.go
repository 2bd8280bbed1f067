package chat

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"hotel-concierge-backend/model"
)

const (
	// 上游事件流的帧格式：每行 "data: " 前缀 + JSON，终止哨兵为 [DONE]
	streamDataPrefix      = "data: "
	streamDoneSentinel    = "[DONE]"
	finishReasonToolCalls = "tool_calls"

	maxStreamLineSize = 1 << 20
)

type toolCallDelta struct {
	Index    int    `json:"index"`
	ID       string `json:"id"`
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}

type streamEvent struct {
	Choices []struct {
		Delta struct {
			Content   string          `json:"content"`
			ToolCalls []toolCallDelta `json:"tool_calls"`
		} `json:"delta"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// fragment 一次在途响应里按 index 累积的工具调用片段。
// arguments 在完成标记到来前是不完整的 JSON 文本，不允许提前解析
type fragment struct {
	index     int
	id        string
	name      string
	arguments strings.Builder
}

// TurnCallbacks 增量输出回调，供调用方实时渲染
type TurnCallbacks struct {
	OnAssistantText func(delta string)
	OnToolResult    func(res Result)
}

// Reassembler 单轮模型响应的重组器：逐事件拼接助手文本、
// 按 index 累积工具调用片段，并在完成标记处恰好一次地执行工具。
// 一个实例只服务一轮响应，不得跨轮复用
type Reassembler struct {
	// Run 默认为 ExecuteTool，测试中可替换
	Run func(ctx context.Context, inv ToolInvocation, ec ExecContext) Result

	execCtx   ExecContext
	callbacks TurnCallbacks

	text      strings.Builder
	fragments []*fragment
	results   []model.ToolCallResult
	executed  bool
}

func NewReassembler(ec ExecContext, cb TurnCallbacks) *Reassembler {
	return &Reassembler{
		Run:       ExecuteTool,
		execCtx:   ec,
		callbacks: cb,
	}
}

func (r *Reassembler) AssistantText() string {
	return r.text.String()
}

func (r *Reassembler) ToolCallResults() []model.ToolCallResult {
	return r.results
}

// Consume 读完整个事件流。只按完整行切分；解析不了的行当作
// 帧噪声跳过，绝不因此停住对后续已到达行的处理。
// ctx 取消后立即停止消费，未完成的工具调用不会被执行
func (r *Reassembler) Consume(ctx context.Context, stream io.Reader) error {
	scanner := bufio.NewScanner(stream)
	scanner.Buffer(make([]byte, 0, 64*1024), maxStreamLineSize)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := strings.TrimRight(scanner.Text(), "\r")
		if !strings.HasPrefix(line, streamDataPrefix) {
			continue
		}

		payload := strings.TrimSpace(line[len(streamDataPrefix):])
		if payload == streamDoneSentinel {
			break
		}

		var event streamEvent
		if err := json.Unmarshal([]byte(payload), &event); err != nil {
			slog.Debug("Skipping undecodable stream line", "err", err)
			continue
		}

		if err := r.apply(ctx, event); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read model stream: %w", err)
	}
	return nil
}

func (r *Reassembler) apply(ctx context.Context, event streamEvent) error {
	for _, choice := range event.Choices {
		if choice.Delta.Content != "" {
			r.text.WriteString(choice.Delta.Content)
			if r.callbacks.OnAssistantText != nil {
				r.callbacks.OnAssistantText(choice.Delta.Content)
			}
		}

		for _, delta := range choice.Delta.ToolCalls {
			f := r.fragmentAt(delta.Index)
			if delta.ID != "" {
				f.id = delta.ID
			}
			if delta.Function.Name != "" {
				f.name = delta.Function.Name
			}
			// 参数只能追加：单个 JSON token 也可能被切到两个 chunk 里
			if delta.Function.Arguments != "" {
				f.arguments.WriteString(delta.Function.Arguments)
			}
		}

		if choice.FinishReason == finishReasonToolCalls {
			if err := r.completeToolCalls(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

// fragmentAt 按 index 惰性创建片段
func (r *Reassembler) fragmentAt(index int) *fragment {
	for index >= len(r.fragments) {
		r.fragments = append(r.fragments, nil)
	}
	if r.fragments[index] == nil {
		r.fragments[index] = &fragment{index: index}
	}
	return r.fragments[index]
}

// completeToolCalls 按片段 index 顺序解析并执行全部完成的工具调用。
// 完成标记每轮只生效一次；单个片段解析失败只跳过该片段
func (r *Reassembler) completeToolCalls(ctx context.Context) error {
	if r.executed {
		return nil
	}
	r.executed = true

	for _, f := range r.fragments {
		if f == nil || f.name == "" {
			continue
		}

		inv, err := ParseInvocation(f.index, f.id, f.name, json.RawMessage(f.arguments.String()))
		if err != nil {
			slog.Warn("Discarding tool call with malformed arguments",
				"tool", f.name,
				"index", f.index,
				"err", err)
			continue
		}

		res := r.Run(ctx, inv, r.execCtx)
		r.results = append(r.results, model.ToolCallResult{
			Name:    f.name,
			Success: res.Success,
			Message: res.Message,
		})
		if r.callbacks.OnToolResult != nil {
			r.callbacks.OnToolResult(res)
		}

		if res.Success {
			if r.text.Len() > 0 {
				r.text.WriteString("\n\n")
			}
			r.text.WriteString(res.Message)
			if r.callbacks.OnAssistantText != nil {
				r.callbacks.OnAssistantText(res.Message)
			}
		}
	}
	return nil
}
