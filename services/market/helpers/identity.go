package helpers

import (
	"bookstall/internal/identity"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// SetIdentity stores the authenticated caller on the request
func SetIdentity(c *gin.Context, id identity.Identity) {
	c.Set(identityKey, id)
}

// CurrentIdentity returns the caller stored by the auth middleware
func CurrentIdentity(c *gin.Context) (identity.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return identity.Identity{}, false
	}
	id, ok := v.(identity.Identity)
	return id, ok
}
