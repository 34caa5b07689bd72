// Package web serves the front end: the built assets in production and a
// proxy to the front-end dev server otherwise.
package web

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

// backendPrefixes are never handled by the front end.
var backendPrefixes = []string{"/api", "/uploads", "/healthz"}

func isBackend(c echo.Context) bool {
	p := c.Request().URL.Path
	for _, prefix := range backendPrefixes {
		if p == prefix || strings.HasPrefix(p, prefix+"/") {
			return true
		}
	}
	return false
}

// Static serves dir with history-API fallback to index.html.
func Static(dir string) echo.MiddlewareFunc {
	return echoMw.StaticWithConfig(echoMw.StaticConfig{
		Skipper: isBackend,
		Root:    dir,
		Index:   "index.html",
		HTML5:   true,
	})
}

// DevProxy forwards every non-backend request to the dev server at target.
func DevProxy(target string) (echo.MiddlewareFunc, error) {
	u, err := url.Parse(target)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid dev server url %q", target)
	}
	return echoMw.ProxyWithConfig(echoMw.ProxyConfig{
		Skipper:  isBackend,
		Balancer: echoMw.NewRoundRobinBalancer([]*echoMw.ProxyTarget{{URL: u}}),
	}), nil
}

// Frontend picks Static in production and DevProxy otherwise.
func Frontend(production bool, staticDir, devServer string) (echo.MiddlewareFunc, error) {
	if production {
		return Static(staticDir), nil
	}
	return DevProxy(devServer)
}
