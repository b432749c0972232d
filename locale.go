package safetyhub

// Language selects the display language for generated text, labels, and
// exports. The application ships with English and Traditional Chinese.
type Language string

const (
	LangEnglish Language = "en"
	LangChinese Language = "zh"
)

// IsValid returns true if the language is a recognized value.
func (l Language) IsValid() bool {
	return l == LangEnglish || l == LangChinese
}

// DefaultLanguage is used when a request carries no usable language hint.
const DefaultLanguage = LangChinese
