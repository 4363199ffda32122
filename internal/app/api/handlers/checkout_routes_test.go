package handlers

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestRegisterCheckoutRoutes_RegistersEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/api/v1")
	RegisterCheckoutRoutes(g, nil)
	RegisterAdminRoutes(g.Group("/admin"), nil, nil)

	routes := r.Routes()
	contains := func(target string) bool {
		for _, rt := range routes {
			if rt.Method+" "+rt.Path == target {
				return true
			}
		}
		return false
	}

	require.True(t, contains("POST /api/v1/checkout/sessions"))
	require.True(t, contains("POST /api/v1/checkout/sessions/:id/confirm"))
	require.True(t, contains("POST /api/v1/admin/checkout_sessions/scan"))
	require.True(t, contains("POST /api/v1/admin/reminders/run"))
}
