package gin

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type HandlerFunc = gin.HandlerFunc
type Engine = gin.Engine

func New(middlewares ...HandlerFunc) *Engine {
	e := gin.New()
	e.Use(middlewares...)
	return e
}

func Logger() HandlerFunc {
	return gin.Logger()
}

func Recovery() HandlerFunc {
	return gin.Recovery()
}

// Cors returns a permissive CORS middleware which reflects all
// origins. The curbweb deployment sits behind its own frontends, so
// origin restriction is left to the reverse proxy.
func Cors() HandlerFunc {
	return cors.Default()
}
