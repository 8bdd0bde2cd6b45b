package config

// Language codes the pipeline can detect and translate between.
var supportedLangs = map[string]bool{
	"ko": true,
	"ja": true,
	"zh": true,
	"en": true,
}

// Display names for the translated-script document heading.
var langNames = map[string]string{
	"ko": "한국어",
	"ja": "日本語",
	"zh": "中文",
	"en": "English",
}

// IsSupportedLang reports whether the code is one of ko, ja, zh, en.
func IsSupportedLang(code string) bool {
	return supportedLangs[code]
}

// LangName returns the display name for a language code, falling back to the
// code itself.
func LangName(code string) string {
	if name, ok := langNames[code]; ok {
		return name
	}
	return code
}
