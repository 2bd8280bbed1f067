package chat

// 工具注册表是静态配置：Prompt 构造和参数校验共用同一份定义
const (
	ToolCreateServiceRequest = "create_service_request"
	ToolAddToItinerary       = "add_to_itinerary"
)

type ToolSpec struct {
	Name        string
	Description string

	// Parameters 属性名 -> JSON Schema 片段
	Parameters map[string]any
	Required   []string
}

var toolRegistry = map[string]ToolSpec{
	ToolCreateServiceRequest: {
		Name:        ToolCreateServiceRequest,
		Description: "Create a service request for the guest's room, e.g. towels, cleaning or room service. The requestType must be copied exactly from the list of available services.",
		Parameters: map[string]any{
			"requestType": map[string]any{
				"type":        "string",
				"description": "The exact name of the requested service, copied from the available services list",
			},
			"details": map[string]any{
				"type":        "string",
				"description": "Optional free-text details supplied by the guest",
			},
		},
		Required: []string{"requestType"},
	},
	ToolAddToItinerary: {
		Name:        ToolAddToItinerary,
		Description: "Add a planned activity to the guest's travel itinerary.",
		Parameters: map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Short title of the activity",
			},
			"description": map[string]any{
				"type":        "string",
				"description": "Optional longer description",
			},
			"location": map[string]any{
				"type":        "string",
				"description": "Optional location name or address",
			},
			"category": map[string]any{
				"type": "string",
				"enum": []string{"restaurant", "attraction", "beach", "nightlife", "shopping", "tour", "other"},
			},
			"startTime": map[string]any{
				"type":        "string",
				"description": "Planned start, ISO 8601 datetime",
			},
			"endTime": map[string]any{
				"type":        "string",
				"description": "Planned end, ISO 8601 datetime",
			},
		},
		Required: []string{"title"},
	},
}

// toolOrder 固定工具在请求里的顺序
var toolOrder = []string{ToolCreateServiceRequest, ToolAddToItinerary}

func LookupTool(name string) (ToolSpec, bool) {
	spec, ok := toolRegistry[name]
	return spec, ok
}

func ToolSpecs() []ToolSpec {
	specs := make([]ToolSpec, 0, len(toolOrder))
	for _, name := range toolOrder {
		specs = append(specs, toolRegistry[name])
	}
	return specs
}
