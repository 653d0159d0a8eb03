package public

import (
	"github.com/gin-gonic/gin"

	"github.com/marketnest/internal/http/response"
)

// GetBanners 获取启用的轮播图列表
func (h *Handler) GetBanners(c *gin.Context) {
	banners, err := h.BannerService.ListPublic()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch banners", err)
		return
	}

	response.Success(c, banners)
}
