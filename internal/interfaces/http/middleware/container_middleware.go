package middleware

import (
	"github.com/ctcarper/cloudinary-search/internal/application/services"
	"github.com/gin-gonic/gin"
)

// containerKey 服务容器在请求上下文中的键
const containerKey = "serviceContainer"

// ContainerMiddleware 服务容器中间件
// 容器在路由装配阶段只构建一次,每个请求经此挂到上下文,handler侧经ContainerFrom取用
func ContainerMiddleware(container *services.ServiceContainer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(containerKey, container)
		c.Next()
	}
}

// ContainerFrom 取回ContainerMiddleware注入的服务容器
// 取不到说明路由组漏挂了中间件,属于装配错误,panic暴露出来
func ContainerFrom(c *gin.Context) *services.ServiceContainer {
	container, ok := c.Get(containerKey)
	if !ok {
		panic("service container missing from request context, route group lacks ContainerMiddleware")
	}
	return container.(*services.ServiceContainer)
}
