package router

import (
	"net/http"

	"goji.io"
	"goji.io/middleware"
	"goji.io/pat"
)

// gojiRouter adapts goji mux to the Router. Unmatched requests
// get a json 404 instead of the goji plain text one
type gojiRouter struct {
	mux *goji.Mux
}

func (g *gojiRouter) Handle(method string, pattern string, handler http.Handler) {
	g.mux.Handle(pat.NewWithMethods(pattern, method), handler)
}

func (g *gojiRouter) Use(mw MiddlewareFunc) {
	g.mux.Use(mw)
}

func (g *gojiRouter) pathParam(r *http.Request, name string) string {
	return pat.Param(r, name)
}

func (g *gojiRouter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.mux.ServeHTTP(w, r)
}

func notFoundMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if middleware.Handler(r.Context()) == nil {
			ResourceNotFoundError("Route " + r.Method + " " + r.URL.Path + " not found").(HTTPError).Send(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func createGojiRouter() *gojiRouter {
	mux := goji.NewMux()
	mux.Use(notFoundMiddleware)
	return &gojiRouter{mux: mux}
}
