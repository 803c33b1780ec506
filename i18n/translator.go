package i18n

import "sync"

// Translator retrieves localized messages for error codes.
// data provides optional metadata to embed in the message (for example,
// "offset" or "format").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var msg string
	switch t.lang {
	case "ja":
		switch code {
		case "parse_error":
			msg = "解析エラー"
		case "unterminated_quote":
			msg = "引用符が閉じられていません"
		case "unclosed_container":
			msg = "波括弧が閉じられていません"
		case "missing_value":
			msg = "キーに値がありません"
		case "max_depth":
			msg = "ネストが深すぎます"
		case "invalid_tape":
			msg = "トークン列が不正です"
		case "sink_error":
			msg = "出力先への書き込みに失敗しました"
		case "decompress_error":
			msg = "展開に失敗しました"
		case "truncated":
			msg = "打ち切られました"
		case "writer_finished":
			msg = "ライターは既に終了しています"
		case "unkeyed_operator":
			msg = "演算子にキーがありません"
		}
	default: // "en"
		switch code {
		case "parse_error":
			msg = "parse error"
		case "unterminated_quote":
			msg = "unterminated quoted string"
		case "unclosed_container":
			msg = "unclosed container"
		case "missing_value":
			msg = "key without a value"
		case "max_depth":
			msg = "max depth exceeded"
		case "invalid_tape":
			msg = "malformed token stream"
		case "sink_error":
			msg = "failed to write to sink"
		case "decompress_error":
			msg = "failed to decompress input"
		case "truncated":
			msg = "truncated"
		case "writer_finished":
			msg = "writer already finished"
		case "unkeyed_operator":
			msg = "operator value outside a key position"
		}
	}
	if msg == "" {
		return code
	}
	if d, ok := data["detail"]; ok && d != "" {
		msg += ": " + d
	}
	return msg
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
