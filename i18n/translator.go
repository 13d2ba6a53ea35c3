package i18n

import (
	"strings"
	"sync/atomic"
)

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator. Placeholders of
// the form {name} are replaced from data; messages without data fall back to
// the short form.
type dictTranslator struct{ lang string }

type entry struct {
	short string
	long  string
}

var dictionaries = map[string]map[string]entry{
	"en": {
		"invalid_type":  {"invalid type", "expected {expected}, got {got}"},
		"invalid_const": {"value does not match the constant", "expected {expected}"},
		"invalid_enum":  {"value is not one of the allowed values", "expected one of {expected}"},
		"invalid_union": {"value matches no alternative", "expected {expected}"},
		"not_allowed":   {"value is not allowed", "value must not be {excluded}"},
		"required":      {"required property missing", "required property '{key}' missing"},
		"unknown_key":   {"unknown key", "unknown key '{key}'"},
		"too_short":     {"too short", "expected {expected} items, got {got}"},
		"too_long":      {"too long", "expected {expected} items, got {got}"},
		"duplicate_key": {"duplicate key", "key '{key}' duplicated"},
		"too_deep":      {"nesting too deep", "nesting exceeds depth {max}"},
		"too_large":     {"input too large", "input exceeds {max} bytes"},
		"parse_error":   {"parse error", "parse error: {error}"},
		"truncated":     {"truncated", "truncated"},
	},
	"ja": {
		"invalid_type":  {"型が不正です", "{expected} が必要ですが {got} でした"},
		"invalid_const": {"定数と一致しません", "{expected} が必要です"},
		"invalid_enum":  {"許可された値ではありません", "{expected} のいずれかが必要です"},
		"invalid_union": {"どの候補にも一致しません", "{expected} が必要です"},
		"not_allowed":   {"許可されていない値です", "{excluded} であってはなりません"},
		"required":      {"必須プロパティが不足しています", "必須プロパティ '{key}' が不足しています"},
		"unknown_key":   {"未知のキーです", "未知のキー '{key}' です"},
		"too_short":     {"短すぎます", "{expected} 個の要素が必要ですが {got} 個でした"},
		"too_long":      {"長すぎます", "{expected} 個の要素が必要ですが {got} 個でした"},
		"duplicate_key": {"キーが重複しています", "キー '{key}' が重複しています"},
		"too_deep":      {"ネストが深すぎます", "ネストが深さ {max} を超えています"},
		"too_large":     {"入力が大きすぎます", "入力が {max} バイトを超えています"},
		"parse_error":   {"解析エラー", "解析エラー: {error}"},
		"truncated":     {"打ち切られました", "打ち切られました"},
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	dict, ok := dictionaries[t.lang]
	if !ok {
		dict = dictionaries["en"]
	}
	e, ok := dict[code]
	if !ok {
		return code
	}
	if len(data) == 0 {
		return e.short
	}
	msg := e.long
	for k, v := range data {
		msg = strings.ReplaceAll(msg, "{"+k+"}", v)
	}
	if !complete(msg, e.long) {
		return e.short
	}
	return msg
}

// complete reports whether every placeholder of tmpl was substituted in msg.
func complete(msg, tmpl string) bool {
	for {
		i := strings.IndexByte(tmpl, '{')
		if i < 0 {
			return true
		}
		j := strings.IndexByte(tmpl[i:], '}')
		if j < 0 {
			return true
		}
		if strings.Contains(msg, tmpl[i:i+j+1]) {
			return false
		}
		tmpl = tmpl[i+j+1:]
	}
}

type holder struct{ tr Translator }

var current atomic.Value

func init() { current.Store(holder{dictTranslator{lang: "en"}}) }

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	current.Store(holder{dictTranslator{lang: lang}})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	current.Store(holder{tr})
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	return current.Load().(holder).tr.Message(code, data)
}
