package logging

import "strings"

// MaskUserName はログ出力用にユーザー名をマスキングする。
// 先頭1文字 + マスク文字('*') + 末尾1文字の形式で出力する。
// enabled=falseまたは文字列長が3以下の場合はそのまま返す。
func MaskUserName(userName string, enabled bool) string {
	if !enabled || len(userName) <= 3 {
		return userName
	}
	return userName[:1] + strings.Repeat("*", len(userName)-2) + userName[len(userName)-1:]
}
