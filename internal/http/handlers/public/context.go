package public

import (
	"github.com/prostore-go/internal/constants"
	handlershared "github.com/prostore-go/internal/http/handlers/shared"
	"github.com/prostore-go/internal/service"

	"github.com/gin-gonic/gin"
)

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "user_id")
}

// optionalUserID 读取可选的登录用户 ID，未登录时返回 0。
func optionalUserID(c *gin.Context) uint {
	if value, exists := c.Get("user_id"); exists {
		if id, ok := value.(uint); ok {
			return id
		}
	}
	return 0
}

func isAdmin(c *gin.Context) bool {
	return handlershared.GetContextString(c, "user_role") == constants.RoleAdmin
}

// cartIdentity 组装购物车身份：登录用户优先，其次会话购物车。
func cartIdentity(c *gin.Context) service.CartIdentity {
	return service.CartIdentity{
		UserID:        optionalUserID(c),
		SessionCartID: handlershared.GetContextString(c, "session_cart_id"),
	}
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}
