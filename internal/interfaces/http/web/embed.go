// Package web 内嵌的前端静态页面
package web

import "embed"

//go:embed static/*
var StaticFS embed.FS

// IndexHTML 返回首页内容
func IndexHTML() ([]byte, error) {
	return StaticFS.ReadFile("static/index.html")
}
