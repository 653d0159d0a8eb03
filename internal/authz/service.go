package authz

import (
	"fmt"
	"strings"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"github.com/marketnest/internal/logger"
)

// defaultRBACModel 后台 RBAC 模型:角色继承 + 路径通配匹配
const defaultRBACModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && (p.act == "*" || r.act == p.act)
`

const (
	rolePrefix = "role:"

	// roleAnchor 把“角色存在”本身落进策略表,空角色也能被列出
	roleAnchor = "role:__anchor__"
)

// Policy 单条权限:对象路径 + HTTP 动作
type Policy struct {
	Object string `json:"object"`
	Action string `json:"action"`
}

// Service 基于 Casbin 的后台权限服务
type Service struct {
	enforcer *casbin.SyncedEnforcer
}

// NewService 用 GORM 适配器初始化权限服务,策略持久化在 casbin_rule 表
func NewService(db *gorm.DB) (*Service, error) {
	if db == nil {
		return nil, fmt.Errorf("authz requires database")
	}

	adapter, err := gormadapter.NewAdapterByDBUseTableName(db, "", "casbin_rule")
	if err != nil {
		return nil, fmt.Errorf("init casbin adapter failed: %w", err)
	}

	m, err := model.NewModelFromString(defaultRBACModel)
	if err != nil {
		return nil, fmt.Errorf("parse rbac model failed: %w", err)
	}

	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("init casbin enforcer failed: %w", err)
	}
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("load casbin policy failed: %w", err)
	}

	return &Service{enforcer: enforcer}, nil
}

// SubjectForAdmin 管理员主体标识
func SubjectForAdmin(adminID uint) string {
	return fmt.Sprintf("admin:%d", adminID)
}

// NormalizeRole 规范化角色名并补 role: 前缀
func NormalizeRole(role string) (string, error) {
	role = strings.TrimSpace(strings.ToLower(role))
	role = strings.TrimPrefix(role, rolePrefix)
	if role == "" {
		return "", fmt.Errorf("role name is required")
	}
	if strings.ContainsAny(role, " ,\t\n") {
		return "", fmt.Errorf("role name contains illegal characters")
	}
	return rolePrefix + role, nil
}

// NormalizeObject 统一资源路径,剥离 API 版本前缀
func NormalizeObject(object string) string {
	object = strings.TrimSpace(object)
	if object == "" {
		return object
	}
	object = strings.TrimPrefix(object, "/api/v1")
	if !strings.HasPrefix(object, "/") {
		object = "/" + object
	}
	return object
}

// NormalizeAction HTTP 动作统一为大写
func NormalizeAction(action string) string {
	return strings.ToUpper(strings.TrimSpace(action))
}

// Enforce 判定主体能否对资源执行动作
func (s *Service) Enforce(subject, object, action string) (bool, error) {
	if s == nil || s.enforcer == nil {
		return false, fmt.Errorf("authz service unavailable")
	}
	return s.enforcer.Enforce(subject, NormalizeObject(object), NormalizeAction(action))
}

// EnforceAdmin 判定管理员能否访问后台资源
func (s *Service) EnforceAdmin(adminID uint, object, action string) (bool, error) {
	return s.Enforce(SubjectForAdmin(adminID), object, action)
}

// EnsureRole 确保角色存在(幂等)
func (s *Service) EnsureRole(role string) (string, error) {
	normalized, err := NormalizeRole(role)
	if err != nil {
		return "", err
	}
	exists, err := s.enforcer.HasNamedGroupingPolicy("g", normalized, roleAnchor)
	if err != nil {
		return "", fmt.Errorf("check role failed: %w", err)
	}
	if exists {
		return normalized, nil
	}
	if _, err := s.enforcer.AddNamedGroupingPolicy("g", normalized, roleAnchor); err != nil {
		return "", fmt.Errorf("create role failed: %w", err)
	}
	return normalized, s.saveAndReload()
}

// ListRoles 列出全部角色(不含管理员主体)
func (s *Service) ListRoles() ([]string, error) {
	if s == nil || s.enforcer == nil {
		return nil, fmt.Errorf("authz service unavailable")
	}
	groupings, err := s.enforcer.GetNamedGroupingPolicy("g")
	if err != nil {
		return nil, fmt.Errorf("list roles failed: %w", err)
	}

	seen := make(map[string]struct{})
	roles := make([]string, 0, len(groupings))
	for _, rule := range groupings {
		for _, field := range rule {
			if field == roleAnchor || !strings.HasPrefix(field, rolePrefix) {
				continue
			}
			if _, ok := seen[field]; ok {
				continue
			}
			seen[field] = struct{}{}
			roles = append(roles, field)
		}
	}
	return roles, nil
}

// DeleteRole 删除角色及其全部策略与成员关系
func (s *Service) DeleteRole(role string) error {
	normalized, err := NormalizeRole(role)
	if err != nil {
		return err
	}
	if _, err := s.enforcer.RemoveFilteredPolicy(0, normalized); err != nil {
		return fmt.Errorf("remove role policies failed: %w", err)
	}
	if _, err := s.enforcer.RemoveFilteredNamedGroupingPolicy("g", 0, normalized); err != nil {
		return fmt.Errorf("remove role memberships failed: %w", err)
	}
	if _, err := s.enforcer.RemoveFilteredNamedGroupingPolicy("g", 1, normalized); err != nil {
		return fmt.Errorf("remove role members failed: %w", err)
	}
	return s.saveAndReload()
}

// Grant 给角色授予一条策略
func (s *Service) Grant(role string, policy Policy) error {
	normalized, err := s.EnsureRole(role)
	if err != nil {
		return err
	}
	action := NormalizeAction(policy.Action)
	if action == "" {
		return fmt.Errorf("policy action is required")
	}
	if _, err := s.enforcer.AddPolicy(normalized, NormalizeObject(policy.Object), action); err != nil {
		return fmt.Errorf("grant policy failed: %w", err)
	}
	return s.saveAndReload()
}

// Revoke 回收角色的一条策略
func (s *Service) Revoke(role string, policy Policy) error {
	normalized, err := NormalizeRole(role)
	if err != nil {
		return err
	}
	if _, err := s.enforcer.RemovePolicy(normalized, NormalizeObject(policy.Object), NormalizeAction(policy.Action)); err != nil {
		return fmt.Errorf("revoke policy failed: %w", err)
	}
	return s.saveAndReload()
}

// RolePolicies 列出角色直接持有的策略
func (s *Service) RolePolicies(role string) ([]Policy, error) {
	normalized, err := NormalizeRole(role)
	if err != nil {
		return nil, err
	}
	rules, err := s.enforcer.GetFilteredPolicy(0, normalized)
	if err != nil {
		return nil, fmt.Errorf("list role policies failed: %w", err)
	}
	policies := make([]Policy, 0, len(rules))
	for _, rule := range rules {
		if len(rule) < 3 {
			continue
		}
		policies = append(policies, Policy{Object: rule[1], Action: rule[2]})
	}
	return policies, nil
}

// SetAdminRoles 覆盖式设置管理员的角色集合
func (s *Service) SetAdminRoles(adminID uint, roles []string) error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}
	subject := SubjectForAdmin(adminID)

	normalized := make([]string, 0, len(roles))
	for _, role := range roles {
		name, err := s.EnsureRole(role)
		if err != nil {
			return err
		}
		normalized = append(normalized, name)
	}

	if _, err := s.enforcer.RemoveFilteredNamedGroupingPolicy("g", 0, subject); err != nil {
		return fmt.Errorf("clear admin roles failed: %w", err)
	}
	for _, role := range normalized {
		if _, err := s.enforcer.AddNamedGroupingPolicy("g", subject, role); err != nil {
			return fmt.Errorf("assign admin role failed: %w", err)
		}
	}

	if err := s.saveAndReload(); err != nil {
		return err
	}
	logger.Infow("admin_roles_updated", "admin_id", adminID, "roles", normalized)
	return nil
}

// GetAdminRoles 查询管理员当前角色
func (s *Service) GetAdminRoles(adminID uint) ([]string, error) {
	if s == nil || s.enforcer == nil {
		return nil, fmt.Errorf("authz service unavailable")
	}
	roles, err := s.enforcer.GetRolesForUser(SubjectForAdmin(adminID))
	if err != nil {
		return nil, fmt.Errorf("get admin roles failed: %w", err)
	}
	filtered := make([]string, 0, len(roles))
	for _, role := range roles {
		if role == roleAnchor {
			continue
		}
		filtered = append(filtered, role)
	}
	return filtered, nil
}

func (s *Service) saveAndReload() error {
	if err := s.enforcer.SavePolicy(); err != nil {
		return fmt.Errorf("save casbin policy failed: %w", err)
	}
	if err := s.enforcer.LoadPolicy(); err != nil {
		return fmt.Errorf("reload casbin policy failed: %w", err)
	}
	return nil
}
