package ui

import "sort"

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle         = "app_title"
	KeyAppTagline       = "app_tagline"
	KeySameOriginNote   = "same_origin_note"
	KeyInputPlaceholder = "input_placeholder"
	KeyDownload         = "download"
	KeySettings         = "settings"
	KeyNoValidURLs      = "no_valid_urls"
	KeyNoValidImages    = "no_valid_images"
	KeySavedTo          = "saved_to"
	KeySaveFailed       = "save_failed"
	KeyHeaderStatus     = "header_status"
	KeyHeaderDesc       = "header_description"
	KeyHeaderURL        = "header_url"
	KeyOutputDirectory  = "output_directory"
	KeyRetrievalMode    = "retrieval_mode"
	KeyModeDirect       = "mode_direct"
	KeyModeRender       = "mode_render"
	KeyRenderModeNote   = "render_mode_note"
	KeyRequestTimeout   = "request_timeout"
	KeyAutoReveal       = "auto_reveal"
	KeyLanguage         = "language"
	KeySave             = "save"
	KeyCancel           = "cancel"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns language codes mapped to display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ja": "日本語",
	}
}

// GetLanguageCodes returns the available language codes in a stable sorted
// order, for widgets whose option order must not vary across launches.
func (l *Localization) GetLanguageCodes() []string {
	codes := make([]string, 0, len(l.GetAvailableLanguages()))
	for code := range l.GetAvailableLanguages() {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetText returns the text for the given key in the current language
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, exists := texts[key]; exists {
			return text
		}
	}

	// Fallback to English
	if text, exists := l.texts["en"][key]; exists {
		return text
	}
	return key
}

// initializeTexts populates the translation tables
func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:         "img2zip",
		KeyAppTagline:       "Fetch the images, zip them, and download it.",
		KeySameOriginNote:   "Depending on the configuration of the image hosting server, direct retrieval may be rejected. The render mode re-encodes every image as PNG, which works around some of these hosts.",
		KeyInputPlaceholder: "Input image URLs",
		KeyDownload:         "Download",
		KeySettings:         "Settings",
		KeyNoValidURLs:      "There are no valid URLs.",
		KeyNoValidImages:    "There are no valid images.",
		KeySavedTo:          "Saved %s",
		KeySaveFailed:       "Failed to save archive",
		KeyHeaderStatus:     "Status",
		KeyHeaderDesc:       "Description",
		KeyHeaderURL:        "URL",
		KeyOutputDirectory:  "Output directory",
		KeyRetrievalMode:    "Retrieval mode",
		KeyModeDirect:       "Direct (keep original format)",
		KeyModeRender:       "Render (re-encode as PNG)",
		KeyRenderModeNote:   "Render mode normalizes every image to PNG regardless of its source format.",
		KeyRequestTimeout:   "Request timeout (seconds)",
		KeyAutoReveal:       "Reveal archive when done",
		KeyLanguage:         "Language",
		KeySave:             "Save",
		KeyCancel:           "Cancel",
	}

	l.texts["ja"] = map[string]string{
		KeyAppTitle:         "img2zip",
		KeyAppTagline:       "画像を取得してzipにまとめ、ダウンロードします。",
		KeySameOriginNote:   "画像ホスティングサーバーの設定によっては、直接取得が拒否されることがあります。レンダリングモードはすべての画像をPNGに再エンコードするため、一部のホストでは回避策になります。",
		KeyInputPlaceholder: "画像URLを入力してください",
		KeyDownload:         "ダウンロード",
		KeySettings:         "設定",
		KeyNoValidURLs:      "有効なURLがありません。",
		KeyNoValidImages:    "有効な画像がありません。",
		KeySavedTo:          "%s に保存しました",
		KeySaveFailed:       "アーカイブの保存に失敗しました",
		KeyHeaderStatus:     "状態",
		KeyHeaderDesc:       "詳細",
		KeyHeaderURL:        "URL",
		KeyOutputDirectory:  "保存先フォルダ",
		KeyRetrievalMode:    "取得モード",
		KeyModeDirect:       "ダイレクト（元の形式を保持）",
		KeyModeRender:       "レンダリング（PNGに再エンコード）",
		KeyRenderModeNote:   "レンダリングモードでは、元の形式に関わらずすべての画像がPNGに変換されます。",
		KeyRequestTimeout:   "タイムアウト（秒）",
		KeyAutoReveal:       "完了時にファイルを表示",
		KeyLanguage:         "言語",
		KeySave:             "保存",
		KeyCancel:           "キャンセル",
	}
}
