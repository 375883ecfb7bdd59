// Package docs 注册 /swagger 页面使用的 OpenAPI 文档。
// swagger.json.tmpl 与 controllers 中的 swag 注释一一对应，修改接口注释时需同步更新。
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed swagger.json.tmpl
var docTemplate string

// SwaggerInfo 可在启动时修改 Host 等字段
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8081",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "剧集目录 API",
	Description:      "平台、类型、剧集、季和单集的增删改查接口",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
