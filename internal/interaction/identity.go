package interaction

import (
	"context"

	"github.com/fleetmgmt/billplz-payment-service/internal/restapi/common"
)

// IdentityManager classifies the caller of the current request. The adapter
// only knows two trusted caller classes: the host application (fixed api
// token) and human admins (OIDC token carrying the admin role).
type IdentityManager struct {
	subject        string
	isAdmin        bool
	isAPITokenCall bool
}

func (i *IdentityManager) IsAdmin() bool {
	return i.isAdmin
}

func (i *IdentityManager) IsAPITokenCall() bool {
	return i.isAPITokenCall
}

func (i *IdentityManager) Subject() string {
	return i.subject
}

func NewIdentityManager(ctx context.Context, adminRole string) *IdentityManager {
	manager := &IdentityManager{}
	if _, ok := ctx.Value(common.CtxKeyAPIKey{}).(string); ok {
		manager.isAPITokenCall = true
		return manager
	}

	if _, ok := ctx.Value(common.CtxKeyToken{}).(string); ok {
		if claims, ok := ctx.Value(common.CtxKeyClaims{}).(*common.AllClaims); ok {
			manager.subject = claims.Subject

			for _, role := range claims.Global.Roles {
				if role == adminRole {
					manager.isAdmin = true
					break
				}
			}
		}
	}

	return manager
}
