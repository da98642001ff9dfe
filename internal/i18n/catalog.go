// Package i18n holds every user facing message in both supported locales.
package i18n

import (
	"fmt"
	"strings"

	apperrors "github.com/Captain-T2004/Ongaku-Backend/pkg/errors"
)

// Locale is one of the two supported response languages.
type Locale string

const (
	JA Locale = "ja"
	EN Locale = "en"
)

// Locales lists every supported locale.
var Locales = []Locale{JA, EN}

// ParseLocale lower-cases raw and falls back to def for anything unsupported.
func ParseLocale(raw string, def Locale) Locale {
	switch Locale(strings.ToLower(strings.TrimSpace(raw))) {
	case JA:
		return JA
	case EN:
		return EN
	default:
		return def
	}
}

// Key identifies a message template.
type Key string

const (
	KeyInvalidBody          Key = "invalid_body"
	KeyMissingCity          Key = "missing_city"
	KeyMissingLocation      Key = "missing_location"
	KeyMissingWeatherTarget Key = "missing_weather_target"
	KeyInvalidCoordinates   Key = "invalid_coordinates"
	KeyLocationNotFound     Key = "location_not_found"
	KeyNoLocationFound      Key = "no_location_found"
	KeyGeocodingFailed      Key = "geocoding_failed"
	KeyGeocodingTimeout     Key = "geocoding_timeout"
	KeyInvalidDate          Key = "invalid_date"
	KeyPastDate             Key = "past_date"
	KeyDateTooFar           Key = "date_too_far"
	KeyWeatherFailed        Key = "weather_failed"
	KeyWeatherTimeout       Key = "weather_timeout"
	KeyNoWeatherData        Key = "no_weather_data"
	KeyWeatherUnparseable   Key = "weather_unparseable"
	KeyUnconfigured         Key = "unconfigured"
	KeyGenerationFailed     Key = "generation_failed"
	KeyRequestTimeout       Key = "request_timeout"
	KeyMissingField         Key = "missing_field"
	KeyNotAList             Key = "not_a_list"
	KeyTooFewItems          Key = "too_few_items"
	KeyParseFailed          Key = "parse_failed"
	KeyInternal             Key = "internal"
)

var catalog = map[Key]map[Locale]string{
	KeyInvalidBody: {
		JA: "リクエスト本文はJSONである必要があります",
		EN: "Request body must be JSON",
	},
	KeyMissingCity: {
		JA: "必須パラメータがありません: city",
		EN: "Missing required parameter: city",
	},
	KeyMissingLocation: {
		JA: "location または (latitude と longitude) が必要です",
		EN: "Either location OR (latitude AND longitude) is required",
	},
	KeyMissingWeatherTarget: {
		JA: "必須パラメータがありません: city または (latitude と longitude)",
		EN: "Missing required parameters: city OR (latitude AND longitude)",
	},
	KeyInvalidCoordinates: {
		JA: "latitude と longitude は有限の数値である必要があります",
		EN: "latitude and longitude must be finite numbers",
	},
	KeyLocationNotFound: {
		JA: "場所が見つかりません: %s。Tokyo、Osaka、Kyotoなどの英語の都市名を試してください",
		EN: "Could not find location: %s. Try using city names like Tokyo, Osaka, or Kyoto",
	},
	KeyNoLocationFound: {
		JA: "該当する場所がありません: %s",
		EN: "No location found for: %s",
	},
	KeyGeocodingFailed: {
		JA: "ジオコーディングに失敗しました: %s",
		EN: "Geocoding failed: %s",
	},
	KeyGeocodingTimeout: {
		JA: "ジオコーディングAPIのリクエストがタイムアウトしました",
		EN: "Geocoding API request timed out",
	},
	KeyInvalidDate: {
		JA: "無効な日付形式: %s。YYYY-MM-DD形式を使用してください（例：2025-10-12）",
		EN: "Invalid date format: %s. Use YYYY-MM-DD format (e.g., 2025-10-12)",
	},
	KeyPastDate: {
		JA: "過去の日付は計画できません。日付 %s は過去です。",
		EN: "Cannot plan for past dates. Date %s is in the past.",
	},
	KeyDateTooFar: {
		JA: "天気予報は%d日先までしか利用できません。",
		EN: "Weather forecast only available up to %d days ahead.",
	},
	KeyWeatherFailed: {
		JA: "天気APIに失敗しました: %s",
		EN: "Weather API failed: %s",
	},
	KeyWeatherTimeout: {
		JA: "天気APIのリクエストがタイムアウトしました",
		EN: "Weather API request timed out",
	},
	KeyNoWeatherData: {
		JA: "リクエストされた日付範囲の天気データが利用できません",
		EN: "No weather data available for the requested date range",
	},
	KeyWeatherUnparseable: {
		JA: "旅程計画のための天気データを解析できませんでした",
		EN: "Could not parse weather data for itinerary planning",
	},
	KeyUnconfigured: {
		JA: "Gemini APIキーが設定されていません。GEMINI_API_KEY環境変数を設定してください。",
		EN: "Gemini API key not configured. Set GEMINI_API_KEY environment variable.",
	},
	KeyGenerationFailed: {
		JA: "LLM生成に失敗しました: %s",
		EN: "LLM generation failed: %s",
	},
	KeyRequestTimeout: {
		JA: "APIリクエストがタイムアウトしました。duration_daysを減らすかリクエストを簡素化してください。",
		EN: "API request timed out. Try reducing duration_days or simplifying the request.",
	},
	KeyMissingField: {
		JA: "無効な応答: \"%s\"フィールドがありません",
		EN: "Invalid response: missing \"%s\" field",
	},
	KeyNotAList: {
		JA: "無効な応答: %sが空またはリストではありません",
		EN: "Invalid response: %s is empty or not a list",
	},
	KeyTooFewItems: {
		JA: "%d件の提案しか生成されませんでした",
		EN: "Only %d suggestions generated",
	},
	KeyParseFailed: {
		JA: "LLM応答をJSONとして解析できませんでした: %s",
		EN: "Failed to parse LLM response as JSON: %s",
	},
	KeyInternal: {
		JA: "内部サーバーエラー: %s",
		EN: "Internal server error: %s",
	},
}

// Message renders key for loc. Unknown keys render as the key itself so a missing
// catalog entry never produces an empty reason.
func Message(key Key, loc Locale, args ...any) string {
	templates, ok := catalog[key]
	if !ok {
		return string(key)
	}
	tmpl, ok := templates[loc]
	if !ok {
		tmpl = templates[EN]
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}

// Error builds a localized application error. The English rendering doubles as the
// operator facing message.
func Error(code string, key Key, cause error, args ...any) *apperrors.AppError {
	return apperrors.Localized(code, string(key), Message(key, EN, args...), cause, args...)
}

// Reason renders the user facing text of err in loc.
func Reason(err error, loc Locale) string {
	appErr, ok := apperrors.As(err)
	if !ok {
		return Message(KeyInternal, loc, err.Error())
	}
	if appErr.Key == "" {
		return appErr.Message
	}
	return Message(Key(appErr.Key), loc, appErr.Args...)
}
