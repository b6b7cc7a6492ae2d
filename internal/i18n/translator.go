package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "detail", which the built-in dictionary appends after its phrase).
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg := t.lookup(code)
	if detail := data["detail"]; detail != "" {
		msg = msg + ": " + detail
	}
	return msg
}

func (t dictTranslator) lookup(code string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "missing_key":
			return "必須キーがありません"
		case "extra_keys":
			return "未知のキーです"
		case "type_mismatch":
			return "型が不正です"
		case "arity_mismatch":
			return "要素数が一致しません"
		case "out_of_range":
			return "値が範囲外です"
		case "parse_error":
			return "解析エラー"
		case "schema_error":
			return "スキーマ定義に誤りがあります"
		}
	default: // "en"
		switch code {
		case "missing_key":
			return "required key is missing"
		case "extra_keys":
			return "key is not declared by the schema"
		case "type_mismatch":
			return "value does not match the declared type"
		case "arity_mismatch":
			return "wrong number of elements"
		case "out_of_range":
			return "value is out of range for the declared type"
		case "parse_error":
			return "parse error"
		case "schema_error":
			return "schema definition error"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
