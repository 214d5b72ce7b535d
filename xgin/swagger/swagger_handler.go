package swagger

import (
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const SwaggerUrl = "/swagger/*any"

// SwaggerHandler 读取 swag.Register 注册的文档
var SwaggerHandler = ginSwagger.WrapHandler(swaggerfiles.Handler)
