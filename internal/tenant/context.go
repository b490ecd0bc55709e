// Package tenant carries the authenticated tenant identity through every
// core call. Engines and stores never read tenant state from globals; the
// auth middleware builds one Context per request and it is passed down
// explicitly.
package tenant

import (
	"gorm.io/gorm"
)

// Context identifies the acting tenant and the user behind the session.
type Context struct {
	TenantID uint
	UserID   uint
	Email    string
}

// Scoped returns a query handle pre-filtered to the context's tenant.
// Every domain read and write goes through this, so a guessed id from
// another tenant can never resolve.
func Scoped(db *gorm.DB, tc Context) *gorm.DB {
	return db.Where("tenant_id = ?", tc.TenantID)
}

// Owns reports whether a record's tenant id matches the context. Used to
// verify payloads before writes in addition to the query-level scoping.
func (tc Context) Owns(tenantID uint) bool {
	return tenantID == tc.TenantID
}
