package directory

import "strings"

// Profile は検証成功時に取得したユーザー属性を保持する
type Profile struct {
	DisplayName string
	Email       string
	Phone       string
	Upn         string
	Groups      []string
}

// HasGroup はプロファイルのグループ一覧に指定グループが含まれるかを
// 大文字小文字を無視して判定する。
func (p *Profile) HasGroup(group string) bool {
	for _, g := range p.Groups {
		if strings.EqualFold(g, group) {
			return true
		}
	}
	return false
}
