package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"hotel-concierge-backend/dao"
	"hotel-concierge-backend/model"
)

// ExecContext 执行工具时的会话上下文
type ExecContext struct {
	SessionID string
	HotelID   uint
	RoomID    *uint
	Language  string
}

// Result 工具执行结果，成功的 Message 会并入助手可见回复
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type CreateServiceRequestArgs struct {
	RequestType string `json:"requestType"`
	Details     string `json:"details"`
}

type AddToItineraryArgs struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
}

// ToolInvocation 片段累积完成后解析得到的可执行单元，按工具名打标签，
// 只在完成时解析一次，不携带松散的字典
type ToolInvocation struct {
	Index int
	ID    string
	Name  string

	CreateRequest *CreateServiceRequestArgs
	Itinerary     *AddToItineraryArgs
}

// ParseInvocation 将累积完成的参数 JSON 解析为类型化的调用。
// 解析失败只影响这一个工具调用
func ParseInvocation(index int, id, name string, raw json.RawMessage) (ToolInvocation, error) {
	inv := ToolInvocation{Index: index, ID: id, Name: name}

	switch name {
	case ToolCreateServiceRequest:
		var args CreateServiceRequestArgs
		if err := json.Unmarshal(raw, &args); err != nil {
			return inv, fmt.Errorf("failed to parse %s arguments: %v", name, err)
		}
		inv.CreateRequest = &args
	case ToolAddToItinerary:
		var args AddToItineraryArgs
		if err := json.Unmarshal(raw, &args); err != nil {
			return inv, fmt.Errorf("failed to parse %s arguments: %v", name, err)
		}
		inv.Itinerary = &args
	default:
		// 未注册的工具名也要求参数是合法 JSON，交给执行器统一报 Unknown tool
		var args map[string]any
		if err := json.Unmarshal(raw, &args); err != nil {
			return inv, fmt.Errorf("failed to parse %s arguments: %v", name, err)
		}
	}

	return inv, nil
}

var createRequestMessages = map[string]string{
	"en": "Your request for %s has been sent to our team. We'll take care of it shortly!",
	"pt": "Seu pedido de %s foi enviado à nossa equipe. Cuidaremos disso em breve!",
	"es": "Tu solicitud de %s ha sido enviada a nuestro equipo. ¡Nos encargaremos de ello en breve!",
}

var addItineraryMessages = map[string]string{
	"en": "\"%s\" has been added to your itinerary.",
	"pt": "\"%s\" foi adicionado ao seu roteiro.",
	"es": "\"%s\" ha sido añadido a tu itinerario.",
}

// localize 未识别的语言代码回退到英文
func localize(messages map[string]string, language string) string {
	code := strings.ToLower(language)
	if len(code) > 2 {
		code = code[:2]
	}
	if msg, ok := messages[code]; ok {
		return msg
	}
	return messages["en"]
}

// ExecuteTool 先校验后写库，每次成功调用恰好一次写入。
// 聊天流和 UI 直连入口走的都是这一个函数
func ExecuteTool(ctx context.Context, inv ToolInvocation, ec ExecContext) Result {
	if _, ok := LookupTool(inv.Name); !ok {
		return Result{Message: "Unknown tool"}
	}

	switch inv.Name {
	case ToolCreateServiceRequest:
		return execCreateServiceRequest(ctx, inv.CreateRequest, ec)
	case ToolAddToItinerary:
		return execAddToItinerary(ctx, inv.Itinerary, ec)
	}
	return Result{Message: "Unknown tool"}
}

func execCreateServiceRequest(ctx context.Context, args *CreateServiceRequestArgs, ec ExecContext) Result {
	if args == nil || strings.TrimSpace(args.RequestType) == "" {
		return Result{Message: "Missing required field: requestType"}
	}

	// 归一化服务名：去掉首尾与连续空白
	requestType := strings.Join(strings.Fields(args.RequestType), " ")

	var serviceTypeID *uint
	if st, err := dao.FindServiceTypeByName(ec.HotelID, requestType); err == nil {
		serviceTypeID = &st.ID
	}

	req := model.ServiceRequest{
		HotelID:       ec.HotelID,
		RoomID:        ec.RoomID,
		ServiceTypeID: serviceTypeID,
		RequestType:   requestType,
		Details:       strings.TrimSpace(args.Details),
		Status:        model.StatusPending,
		GuestLanguage: ec.Language,
	}
	if err := dao.CreateServiceRequest(ctx, &req); err != nil {
		slog.Error("Failed to create service request",
			"session_id", ec.SessionID,
			"request_type", requestType,
			"err", err)
		return Result{Message: "Sorry, something went wrong. Please try again."}
	}

	return Result{
		Success: true,
		Message: fmt.Sprintf(localize(createRequestMessages, ec.Language), requestType),
		Data:    map[string]any{"request_id": req.ID},
	}
}

func execAddToItinerary(ctx context.Context, args *AddToItineraryArgs, ec ExecContext) Result {
	if args == nil || strings.TrimSpace(args.Title) == "" {
		return Result{Message: "Missing required field: title"}
	}

	item := model.ItineraryItem{
		SessionID:   ec.SessionID,
		HotelID:     ec.HotelID,
		Title:       strings.TrimSpace(args.Title),
		Description: strings.TrimSpace(args.Description),
		Location:    strings.TrimSpace(args.Location),
		Category:    model.NormalizeCategory(args.Category),
		StartTime:   ParseItineraryTime(args.StartTime),
		EndTime:     ParseItineraryTime(args.EndTime),
	}
	if err := dao.CreateItineraryItem(ctx, &item); err != nil {
		slog.Error("Failed to create itinerary item",
			"session_id", ec.SessionID,
			"title", item.Title,
			"err", err)
		return Result{Message: "Sorry, something went wrong. Please try again."}
	}

	return Result{
		Success: true,
		Message: fmt.Sprintf(localize(addItineraryMessages, ec.Language), item.Title),
		Data:    map[string]any{"item_id": item.ID},
	}
}

// ParseItineraryTime 宽松解析行程时间，解析不了返回 nil 而不是报错
func ParseItineraryTime(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	slog.Warn("Ignoring unparseable itinerary time", "value", raw)
	return nil
}
