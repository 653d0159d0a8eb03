package admin

import (
	"github.com/gin-gonic/gin"

	"github.com/marketnest/internal/authz"
	"github.com/marketnest/internal/http/response"
)

// RolePolicyRequest 角色策略请求
type RolePolicyRequest struct {
	Role   string `json:"role" binding:"required"`
	Object string `json:"object" binding:"required"`
	Action string `json:"action" binding:"required"`
}

// AdminRolesRequest 管理员角色设置请求
type AdminRolesRequest struct {
	Roles []string `json:"roles"`
}

// GetRoles 列出全部角色
func (h *Handler) GetRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch roles", err)
		return
	}
	response.Success(c, gin.H{"roles": roles})
}

// GetRolePolicies 列出角色策略
func (h *Handler) GetRolePolicies(c *gin.Context) {
	role := c.Param("role")
	policies, err := h.AuthzService.RolePolicies(role)
	if err != nil {
		respondError(c, response.CodeBadRequest, "failed to fetch role policies", err)
		return
	}
	response.Success(c, gin.H{"policies": policies})
}

// GrantRolePolicy 给角色授权
func (h *Handler) GrantRolePolicy(c *gin.Context) {
	var req RolePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	if err := h.AuthzService.Grant(req.Role, authz.Policy{Object: req.Object, Action: req.Action}); err != nil {
		respondError(c, response.CodeBadRequest, "failed to grant policy", err)
		return
	}
	response.Success(c, gin.H{"granted": true})
}

// RevokeRolePolicy 回收角色授权
func (h *Handler) RevokeRolePolicy(c *gin.Context) {
	var req RolePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	if err := h.AuthzService.Revoke(req.Role, authz.Policy{Object: req.Object, Action: req.Action}); err != nil {
		respondError(c, response.CodeBadRequest, "failed to revoke policy", err)
		return
	}
	response.Success(c, gin.H{"revoked": true})
}

// DeleteRole 删除角色
func (h *Handler) DeleteRole(c *gin.Context) {
	role := c.Param("role")
	if err := h.AuthzService.DeleteRole(role); err != nil {
		respondError(c, response.CodeBadRequest, "failed to delete role", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// SetAdminRoles 设置管理员角色
func (h *Handler) SetAdminRoles(c *gin.Context) {
	adminID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req AdminRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	if err := h.AuthzService.SetAdminRoles(adminID, req.Roles); err != nil {
		respondError(c, response.CodeBadRequest, "failed to set admin roles", err)
		return
	}
	response.Success(c, gin.H{"updated": true})
}

// GetAdminRoles 查询管理员角色
func (h *Handler) GetAdminRoles(c *gin.Context) {
	adminID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	roles, err := h.AuthzService.GetAdminRoles(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch admin roles", err)
		return
	}
	response.Success(c, gin.H{"roles": roles})
}
