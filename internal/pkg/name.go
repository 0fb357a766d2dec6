package pkg

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// DisplayNameFromEmail 名册里查不到时，用邮箱本地部分推导显示名
// "suphansa.c@..." -> "Suphansa C"
func DisplayNameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	local = strings.ReplaceAll(local, ".", " ")
	return titleCaser.String(local)
}
