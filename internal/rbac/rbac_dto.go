package rbac

type EnforceRequest struct {
	Role     string `json:"role"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type Decision struct {
	Allowed bool   `json:"allowed"`
	Scope   string `json:"scope"`
}

type EnforceResponse struct {
	Role     string `json:"role"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
	Allowed  bool   `json:"allowed"`
	Scope    string `json:"scope,omitempty"`
}
