package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/novelzone/internal/database"
)

// Context keys set by the middleware in this package.
const (
	ContextKeyScope    = "db_scope"
	ContextKeyReaderID = "reader_id"
)

// HeaderScopeID carries the request's scope ID back to the client.
const HeaderScopeID = "X-Scope-ID"

var errNoScope = errors.New("request has no database scope")

// ScopeMiddleware opens one database scope per request and closes it when the
// handler chain returns, including on panic.
func ScopeMiddleware(manager *database.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		scope := manager.NewScope()
		defer scope.Close()

		c.Set(ContextKeyScope, scope)
		c.Header(HeaderScopeID, scope.ID)
		c.Next()
	}
}

// GetScope returns the request's database scope, or nil outside ScopeMiddleware.
func GetScope(c *gin.Context) *database.Scope {
	if v, exists := c.Get(ContextKeyScope); exists {
		if scope, ok := v.(*database.Scope); ok {
			return scope
		}
	}
	return nil
}

// acquireHandle returns the request's pinned connection.
// On failure it has already written the error response.
func acquireHandle(c *gin.Context) (*database.Handle, bool) {
	scope := GetScope(c)
	if scope == nil {
		respondInternalError(c, errNoScope, c.FullPath())
		return nil, false
	}
	h, err := scope.Acquire(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "connection")
		return nil, false
	}
	return h, true
}

// ReaderMiddleware injects the reader identity. There is no authentication yet,
// so every request reads as defaultID.
func ReaderMiddleware(defaultID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyReaderID, defaultID)
		c.Next()
	}
}

// GetReaderID returns the reader set by ReaderMiddleware, or 0 when absent.
func GetReaderID(c *gin.Context) uint {
	if v, exists := c.Get(ContextKeyReaderID); exists {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
