package auth

import "fmt"

// Role 用户角色，封闭枚举并带全序比较
type Role int

const (
	RoleUser Role = iota
	RoleEditor
	RoleAdmin
)

// ParseRole 解析角色字符串，未知角色返回错误
func ParseRole(s string) (Role, error) {
	switch s {
	case "user":
		return RoleUser, nil
	case "editor":
		return RoleEditor, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return RoleUser, fmt.Errorf("unknown role: %q", s)
	}
}

// String 返回角色字符串
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleEditor:
		return "editor"
	default:
		return "user"
	}
}

// AtLeast 判断当前角色是否不低于 min
func (r Role) AtLeast(min Role) bool {
	return r >= min
}
