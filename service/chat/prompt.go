package chat

import (
	_ "embed"
	"fmt"
	"strings"

	"hotel-concierge-backend/model"
)

//go:embed prompts/system_prefix.txt
var systemPrefix string

// 酒店信息缺省时使用的兜底文案
const (
	fallbackWifi      = "ask at the front desk for the WiFi password"
	fallbackBreakfast = "please ask our staff for breakfast hours"
	fallbackCheckout  = "12:00"
)

type persona struct {
	personality string
	style       string
	examples    string
}

var personas = map[model.Tone]persona{
	model.ToneRelaxedResort: {
		personality: "You are laid-back, sunny and informal, like a friendly beach-club host.",
		style:       "Use casual wording, light humour and the occasional emoji. Never sound corporate.",
		examples:    `Say things like "Sure thing, towels are on their way 🏖️" or "Great pick, that beach bar is lovely at sunset."`,
	},
	model.ToneFormalBusiness: {
		personality: "You are a discreet, impeccably polite business-hotel concierge.",
		style:       "Use complete sentences, formal address and no emojis. Be precise and efficient.",
		examples:    `Say things like "Certainly. I have arranged for fresh towels to be delivered to your room." or "May I suggest a restaurant suitable for a business dinner?"`,
	},
	model.ToneBoutiqueChic: {
		personality: "You are stylish and personable, the voice of a design-led boutique hotel.",
		style:       "Warm but polished wording, tasteful recommendations, at most a rare emoji.",
		examples:    `Say things like "Lovely choice — that gallery is one of our neighbourhood gems." or "I'll have that arranged for you right away."`,
	},
	model.ToneFamilyFriendly: {
		personality: "You are cheerful, patient and welcoming to families with children.",
		style:       "Simple friendly sentences, enthusiastic about kid-friendly options.",
		examples:    `Say things like "The kids will love the pool slide!" or "Of course! Extra pillows and a cot are on the way."`,
	},
}

var languageNames = map[string]string{
	"en": "English",
	"pt": "Portuguese",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
}

func languageName(code string) string {
	if name, ok := languageNames[strings.ToLower(code)]; ok {
		return name
	}
	return code
}

// BuildSystemPrompt 组装本轮对话的 system 指令：
// 人设 + 语言硬约束 + 酒店事实 + 服务白名单。纯字符串拼接，无副作用
func BuildSystemPrompt(hotel *model.Hotel, language, roomNumber string, serviceNames []string) string {
	p, ok := personas[hotel.Tone]
	if !ok {
		p = personas[model.ToneRelaxedResort]
	}

	var b strings.Builder
	b.WriteString(systemPrefix)

	b.WriteString("\n## Personality\n")
	b.WriteString(p.personality)
	b.WriteString("\n")
	b.WriteString(p.style)
	b.WriteString("\n")
	b.WriteString(p.examples)
	b.WriteString("\n")

	lang := languageName(language)
	b.WriteString("\n## Language\n")
	fmt.Fprintf(&b, "Respond ONLY in %s. Even if the guest writes in a different language, you must always answer in %s.\n", lang, lang)

	b.WriteString("\n## Hotel facts\n")
	fmt.Fprintf(&b, "Hotel: %s, %s, %s\n", hotel.Name, hotel.City, hotel.Country)
	if roomNumber != "" {
		fmt.Fprintf(&b, "Guest room: %s\n", roomNumber)
	}
	fmt.Fprintf(&b, "WiFi password: %s\n", orDefault(hotel.WifiPassword, fallbackWifi))
	fmt.Fprintf(&b, "Breakfast: %s\n", orDefault(hotel.BreakfastHours, fallbackBreakfast))
	fmt.Fprintf(&b, "Checkout time: %s\n", orDefault(hotel.CheckoutTime, fallbackCheckout))

	b.WriteString("\n## Available services\n")
	if len(serviceNames) == 0 {
		b.WriteString("No services can be ordered through chat right now. For any request, kindly ask the guest to contact the front desk.\n")
	} else {
		b.WriteString("The create_service_request tool may ONLY be used with exactly one of these services:\n")
		for _, name := range serviceNames {
			fmt.Fprintf(&b, "- %s\n", name)
		}
		b.WriteString("When calling the tool, copy the service name EXACTLY as written above into requestType.\n")
		b.WriteString("If the guest asks for anything not in this list, politely refuse and suggest contacting the front desk instead. Never call the tool with a service that is not listed.\n")
	}

	return b.String()
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
