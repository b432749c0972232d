// Package i18n negotiates the display language and localizes the labels the
// core serves as display-ready values (risk bands, action statuses, export
// headers).
package i18n

import (
	"golang.org/x/text/language"

	"github.com/waichung/safetyhub"
)

// matcher negotiates between the two languages the product ships with.
// Traditional Chinese first: it is the factory's working language.
var matcher = language.NewMatcher([]language.Tag{
	language.TraditionalChinese,
	language.English,
})

// Negotiate resolves the display language from an explicit override (query
// parameter) and an Accept-Language header, in that priority order.
func Negotiate(override, acceptLanguage string) safetyhub.Language {
	if lang := safetyhub.Language(override); lang.IsValid() {
		return lang
	}
	if acceptLanguage == "" {
		return safetyhub.DefaultLanguage
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return safetyhub.DefaultLanguage
	}
	tag, _, _ := matcher.Match(tags...)
	base, _ := tag.Base()
	if base.String() == "zh" {
		return safetyhub.LangChinese
	}
	return safetyhub.LangEnglish
}

// RiskLevelLabel returns the localized display label for a risk band.
func RiskLevelLabel(level safetyhub.RiskLevel, lang safetyhub.Language) string {
	if lang != safetyhub.LangChinese {
		return string(level)
	}
	switch level {
	case safetyhub.RiskLevelLow:
		return "低"
	case safetyhub.RiskLevelMedium:
		return "中"
	case safetyhub.RiskLevelHigh:
		return "高"
	case safetyhub.RiskLevelExtreme:
		return "極高"
	default:
		return string(level)
	}
}

// ActionStatusLabel returns the localized display label for an action status.
func ActionStatusLabel(status safetyhub.ActionStatus, lang safetyhub.Language) string {
	if lang != safetyhub.LangChinese {
		return string(status)
	}
	switch status {
	case safetyhub.ActionPending:
		return "待處理"
	case safetyhub.ActionFollowUp:
		return "跟進中"
	case safetyhub.ActionCompleted:
		return "已完成"
	default:
		return string(status)
	}
}

// CSVHeaders returns the localized column headers for the follow-up export,
// in column order.
func CSVHeaders(lang safetyhub.Language) []string {
	if lang == safetyhub.LangChinese {
		return []string{"日期", "地點", "類別", "發現事項", "風險等級", "補救措施", "目標完成日期", "狀態", "巡查員", "照片連結"}
	}
	return []string{"Date", "Location", "Category", "Observation", "Risk Level", "Remedial Action", "Target Date", "Status", "Inspector", "Photo URL"}
}

// EmbeddedPhotoLabel stands in for an embedded photo payload in exports,
// where a multi-kilobyte base64 string would wreck the spreadsheet.
func EmbeddedPhotoLabel(lang safetyhub.Language) string {
	if lang == safetyhub.LangChinese {
		return "[已上傳照片數據]"
	}
	return "[Image Data Uploaded]"
}
