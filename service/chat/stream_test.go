package chat

import (
	"context"
	"strings"
	"testing"

	"hotel-concierge-backend/dao"
	"hotel-concierge-backend/model"
)

// sseStream 把事件体拼成 "data: " 前缀的行帧
func sseStream(payloads ...string) *strings.Reader {
	var b strings.Builder
	for _, p := range payloads {
		b.WriteString("data: ")
		b.WriteString(p)
		b.WriteString("\n")
	}
	b.WriteString("data: [DONE]\n")
	return strings.NewReader(b.String())
}

func contentEvent(text string) string {
	return `{"choices":[{"delta":{"content":` + jsonString(text) + `}}]}`
}

func jsonString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func TestReassembleSplitArguments(t *testing.T) {
	var got []ToolInvocation
	r := NewReassembler(ExecContext{SessionID: "s1", HotelID: 1}, TurnCallbacks{})
	r.Run = func(ctx context.Context, inv ToolInvocation, ec ExecContext) Result {
		got = append(got, inv)
		return Result{Success: true, Message: "ok"}
	}

	// 参数 JSON 被切成 4 段，其中引号内部也有切点
	stream := sseStream(
		`{"choices":[{"delta":{"tool_calls":[{"index":0,"id":"call_1","function":{"name":"create_service_request","arguments":""}}]}}]}`,
		`{"choices":[{"delta":{"tool_calls":[{"index":0,"function":{"arguments":"{\"requestTy"}}]}}]}`,
		`{"choices":[{"delta":{"tool_calls":[{"index":0,"function":{"arguments":"pe\":\"extra towels\",\"deta"}}]}}]}`,
		`{"choices":[{"delta":{"tool_calls":[{"index":0,"function":{"arguments":"ils\":\"two please\"}"}}]}}]}`,
		`{"choices":[{"delta":{},"finish_reason":"tool_calls"}]}`,
	)

	if err := r.Consume(context.Background(), stream); err != nil {
		t.Fatalf("Consume: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("expected 1 invocation, got %d", len(got))
	}
	inv := got[0]
	if inv.Name != ToolCreateServiceRequest || inv.ID != "call_1" {
		t.Fatalf("unexpected invocation: %+v", inv)
	}
	if inv.CreateRequest == nil {
		t.Fatal("CreateRequest args not parsed")
	}
	if inv.CreateRequest.RequestType != "extra towels" || inv.CreateRequest.Details != "two please" {
		t.Fatalf("arguments reassembled wrong: %+v", inv.CreateRequest)
	}
}

func TestContentAndToolInterleaving(t *testing.T) {
	var emitted []string
	r := NewReassembler(ExecContext{}, TurnCallbacks{
		OnAssistantText: func(delta string) { emitted = append(emitted, delta) },
	})
	r.Run = func(ctx context.Context, inv ToolInvocation, ec ExecContext) Result {
		return Result{Success: true, Message: "Request sent."}
	}

	stream := sseStream(
		contentEvent("Of course"),
		`{"choices":[{"delta":{"tool_calls":[{"index":0,"function":{"name":"create_service_request","arguments":"{\"requestType\":\"extra towels\"}"}}]}}]}`,
		contentEvent(", one moment."),
		`{"choices":[{"delta":{},"finish_reason":"tool_calls"}]}`,
	)

	if err := r.Consume(context.Background(), stream); err != nil {
		t.Fatalf("Consume: %v", err)
	}

	want := "Of course, one moment.\n\nRequest sent."
	if r.AssistantText() != want {
		t.Fatalf("assistant text = %q, want %q", r.AssistantText(), want)
	}
	if len(emitted) != 3 || emitted[0] != "Of course" || emitted[1] != ", one moment." || emitted[2] != "Request sent." {
		t.Fatalf("emission order wrong: %q", emitted)
	}
}

func TestToolCallsExecuteExactlyOnce(t *testing.T) {
	runs := 0
	r := NewReassembler(ExecContext{}, TurnCallbacks{})
	r.Run = func(ctx context.Context, inv ToolInvocation, ec ExecContext) Result {
		runs++
		return Result{Success: true, Message: "ok"}
	}

	// 完成标记之后还有空尾 delta 和重复的完成标记
	stream := sseStream(
		`{"choices":[{"delta":{"tool_calls":[{"index":0,"function":{"name":"add_to_itinerary","arguments":"{\"title\":\"Beach walk\"}"}}]}}]}`,
		`{"choices":[{"delta":{},"finish_reason":"tool_calls"}]}`,
		`{"choices":[{"delta":{"tool_calls":[{"index":0,"function":{"arguments":""}}]}}]}`,
		`{"choices":[{"delta":{},"finish_reason":"tool_calls"}]}`,
	)

	if err := r.Consume(context.Background(), stream); err != nil {
		t.Fatalf("Consume: %v", err)
	}
	if runs != 1 {
		t.Fatalf("tool executed %d times, want exactly once", runs)
	}
}

func TestMalformedFragmentSkipped(t *testing.T) {
	var names []string
	r := NewReassembler(ExecContext{}, TurnCallbacks{})
	r.Run = func(ctx context.Context, inv ToolInvocation, ec ExecContext) Result {
		names = append(names, inv.Name)
		return Result{Success: true, Message: "ok"}
	}

	stream := sseStream(
		`{"choices":[{"delta":{"tool_calls":[{"index":0,"function":{"name":"create_service_request","arguments":"{\"requestType\":"}}]}}]}`,
		`{"choices":[{"delta":{"tool_calls":[{"index":1,"function":{"name":"add_to_itinerary","arguments":"{\"title\":\"Museum\"}"}}]}}]}`,
		`{"choices":[{"delta":{},"finish_reason":"tool_calls"}]}`,
	)

	if err := r.Consume(context.Background(), stream); err != nil {
		t.Fatalf("malformed fragment must not fail the turn: %v", err)
	}
	if len(names) != 1 || names[0] != ToolAddToItinerary {
		t.Fatalf("expected only the valid fragment to run, got %q", names)
	}
}

func TestNoiseLinesSkipped(t *testing.T) {
	r := NewReassembler(ExecContext{}, TurnCallbacks{})

	raw := strings.Join([]string{
		": keep-alive comment",
		"",
		"event: message",
		"data: this is not json",
		"data: " + contentEvent("Hello"),
		"data: [DONE]",
		"",
	}, "\n")

	if err := r.Consume(context.Background(), strings.NewReader(raw)); err != nil {
		t.Fatalf("Consume: %v", err)
	}
	if r.AssistantText() != "Hello" {
		t.Fatalf("assistant text = %q, want %q", r.AssistantText(), "Hello")
	}
}

func TestConsumeStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewReassembler(ExecContext{}, TurnCallbacks{})
	err := r.Consume(ctx, sseStream(contentEvent("never seen")))
	if err == nil {
		t.Fatal("expected context error")
	}
	if r.AssistantText() != "" {
		t.Fatalf("no text should accumulate after cancel, got %q", r.AssistantText())
	}
}

// 三段式毛巾场景：真实执行器 + sqlite，验证从流到落库的整条链路
func TestExtraTowelsScenarioEndToEnd(t *testing.T) {
	setupTestDB(t)

	hotel := model.Hotel{Name: "Mar Azul", City: "Lisbon", Country: "Portugal", DefaultLanguage: "en"}
	if err := dao.DB.Create(&hotel).Error; err != nil {
		t.Fatal(err)
	}
	st := model.ServiceType{HotelID: hotel.ID, Name: "extra towels", Language: "en", Active: true}
	if err := dao.DB.Create(&st).Error; err != nil {
		t.Fatal(err)
	}

	roomID := uint(7)
	ec := ExecContext{SessionID: "sess-1", HotelID: hotel.ID, RoomID: &roomID, Language: "en"}
	r := NewReassembler(ec, TurnCallbacks{})

	stream := sseStream(
		contentEvent("Sure thing!"),
		`{"choices":[{"delta":{"tool_calls":[{"index":0,"id":"call_t","function":{"name":"create_service_request","arguments":"{\"requestType\""}}]}}]}`,
		`{"choices":[{"delta":{"tool_calls":[{"index":0,"function":{"arguments":":\"extra towels\",\"details\":"}}]}}]}`,
		`{"choices":[{"delta":{"tool_calls":[{"index":0,"function":{"arguments":"\"room 101\"}"}}]}}]}`,
		`{"choices":[{"delta":{},"finish_reason":"tool_calls"}]}`,
	)

	if err := r.Consume(context.Background(), stream); err != nil {
		t.Fatalf("Consume: %v", err)
	}

	var reqs []model.ServiceRequest
	if err := dao.DB.Find(&reqs).Error; err != nil {
		t.Fatal(err)
	}
	if len(reqs) != 1 {
		t.Fatalf("expected 1 service request, got %d", len(reqs))
	}
	req := reqs[0]
	if req.RequestType != "extra towels" || req.Status != model.StatusPending {
		t.Fatalf("unexpected request row: %+v", req)
	}
	if req.ServiceTypeID == nil || *req.ServiceTypeID != st.ID {
		t.Fatalf("service type not resolved: %+v", req.ServiceTypeID)
	}
	if req.RoomID == nil || *req.RoomID != roomID {
		t.Fatalf("room not recorded: %+v", req.RoomID)
	}

	results := r.ToolCallResults()
	if len(results) != 1 || !results[0].Success || results[0].Name != ToolCreateServiceRequest {
		t.Fatalf("unexpected tool call results: %+v", results)
	}
	if !strings.HasPrefix(r.AssistantText(), "Sure thing!") || !strings.Contains(r.AssistantText(), "extra towels") {
		t.Fatalf("assistant text = %q", r.AssistantText())
	}
}
