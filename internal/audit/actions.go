package audit

// Known audit actions. Append accepts any non-empty string; these cover
// the events the back office emits itself.
const (
	ActionLoginSuccess       = "LOGIN_SUCCESS"
	ActionLoginFailed        = "LOGIN_FAILED"
	ActionLogout             = "LOGOUT"
	ActionUserCreated        = "USER_CREATED"
	ActionUserUpdated        = "USER_UPDATED"
	ActionUserDeleted        = "USER_DELETED"
	ActionOrderCreated       = "ORDER_CREATED"
	ActionOrderStatusChanged = "ORDER_STATUS_CHANGED"
	ActionOrderDeleted       = "ORDER_DELETED"
	ActionProductCreated     = "PRODUCT_CREATED"
	ActionProductUpdated     = "PRODUCT_UPDATED"
	ActionProductDeleted     = "PRODUCT_DELETED"
)

// Entity types recorded alongside actions
const (
	EntityUser    = "user"
	EntityOrder   = "order"
	EntityProduct = "product"
)
