package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求
// 空凭据由 Service 判定为认证失败，不在绑定层拦截
type LoginRequest struct {
	Email    string `json:"email"    form:"email"`
	Password string `json:"password" form:"password"`
}

// LoginResponse 登录成功响应
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// SessionStatusResponse GET /login 会话状态
type SessionStatusResponse struct {
	Authenticated bool          `json:"authenticated"`
	User          *UserResponse `json:"user,omitempty"`
	Redirect      string        `json:"redirect,omitempty"`
}

// ── 个人资料 ──

// UserResponse 用户信息响应（脱敏）
type UserResponse struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Email      string              `json:"email"`
	Role       string              `json:"role"`
	Phone      string              `json:"phone,omitempty"`
	Department *DepartmentResponse `json:"department,omitempty"`
}

// DepartmentResponse 部门信息
type DepartmentResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	FacultyID   string `json:"faculty_id"`
	Institution string `json:"institution"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password"     binding:"required,min=8,max=64"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}
