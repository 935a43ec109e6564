package web

import (
	"embed"
	"html/template"
	"strings"

	"savora-web/internal/core/notification"
)

//go:embed templates/*
var templatesFS embed.FS

// Templates 解析內嵌的 HTML 模板
func Templates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"alertClass": func(s notification.Severity) string {
			switch s {
			case notification.Success, notification.Warning, notification.Error:
				return "notification-" + string(s)
			default:
				return "notification-info"
			}
		},
		"initial": func(s string) string {
			for _, r := range s {
				return strings.ToUpper(string(r))
			}
			return "?"
		},
	}

	return template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/*.html")
}
