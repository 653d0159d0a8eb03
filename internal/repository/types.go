package repository

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrVersionConflict 购物车快照写入时版本号不匹配。
var ErrVersionConflict = errors.New("cart version conflict")

// ProductListFilter 商品列表查询条件。
type ProductListFilter struct {
	Page       int
	PageSize   int
	Category   string
	Brand      string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	MinRating  float64
	Search     string
	SortBy     string
	SortOrder  string
	OnlyActive bool
}

// OrderListFilter 订单列表查询条件。
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Status      string
	OrderNo     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// UserListFilter 用户列表查询条件。
type UserListFilter struct {
	Page     int
	PageSize int
	Keyword  string
	Status   string
}

// ReviewListFilter 商品评论查询条件。
type ReviewListFilter struct {
	Page      int
	PageSize  int
	ProductID uint
}
