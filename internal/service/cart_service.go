package service

import (
	"errors"
	"strings"

	"github.com/marketnest/internal/config"
	"github.com/marketnest/internal/logger"
	"github.com/marketnest/internal/models"
	"github.com/marketnest/internal/repository"

	"github.com/shopspring/decimal"
)

// CartService 购物车服务。
// 购物车按用户持久化，所有变更走快照覆盖写，
// 版本号不匹配时返回 ErrStaleCart 交由调用方重试。
type CartService struct {
	cartRepo        repository.CartRepository
	productRepo     repository.ProductRepository
	discountService *DiscountService
	checkout        config.CheckoutConfig
}

// NewCartService 创建购物车服务
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	discountService *DiscountService,
	checkout config.CheckoutConfig,
) *CartService {
	return &CartService{
		cartRepo:        cartRepo,
		productRepo:     productRepo,
		discountService: discountService,
		checkout:        checkout,
	}
}

// CartTotals 购物车金额汇总，永远由明细行现算，不落库。
type CartTotals struct {
	ItemCount      int          `json:"item_count"`
	Subtotal       models.Money `json:"subtotal"`
	DiscountAmount models.Money `json:"discount_amount"`
	ShippingCost   models.Money `json:"shipping_cost"`
	Tax            models.Money `json:"tax"`
	Total          models.Money `json:"total"`
}

// CartView 购物车视图
type CartView struct {
	Cart   *models.Cart `json:"cart"`
	Totals CartTotals   `json:"totals"`
}

// AddItemInput 加购参数
type AddItemInput struct {
	ProductID uint
	Quantity  int
	Size      string
	Color     string
}

// Get 获取购物车视图
func (s *CartService) Get(userID uint) (*CartView, error) {
	cart, err := s.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}
	return s.buildView(cart), nil
}

// AddItem 加入购物车。同商品同规格合并数量，数量封顶为该行限购上限。
func (s *CartService) AddItem(userID uint, input AddItemInput) (*CartView, error) {
	if input.Quantity < 1 {
		return nil, ErrQuantityInvalid
	}

	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if !product.IsActive {
		return nil, ErrProductInactive
	}
	if product.Stock < 1 {
		return nil, ErrStockInsufficient
	}

	return s.mutate(userID, func(cart *models.Cart) error {
		line := findLine(cart, input.ProductID, input.Size, input.Color)
		if line != nil {
			line.Quantity = clampQuantity(line.Quantity+input.Quantity, line.MaxQuantity)
			line.UnitPrice = product.Price
			line.Name = product.Name
			line.Image = firstImage(product)
			return nil
		}

		cart.Items = append(cart.Items, models.CartItem{
			ProductID:   product.ID,
			Name:        product.Name,
			Image:       firstImage(product),
			Size:        strings.TrimSpace(input.Size),
			Color:       strings.TrimSpace(input.Color),
			UnitPrice:   product.Price,
			Quantity:    clampQuantity(input.Quantity, product.Stock),
			MaxQuantity: product.Stock,
		})
		return nil
	})
}

// UpdateQuantity 覆盖某行数量，数量小于 1 视为移除该行。
// 行不存在时静默成功。
func (s *CartService) UpdateQuantity(userID uint, productID uint, size, color string, quantity int) (*CartView, error) {
	return s.mutate(userID, func(cart *models.Cart) error {
		line := findLine(cart, productID, size, color)
		if line == nil {
			return nil
		}
		if quantity < 1 {
			removeLine(cart, productID, size, color)
			return nil
		}
		line.Quantity = clampQuantity(quantity, line.MaxQuantity)
		return nil
	})
}

// IncrementItem 行数量加一，封顶为限购上限
func (s *CartService) IncrementItem(userID uint, productID uint, size, color string) (*CartView, error) {
	return s.mutate(userID, func(cart *models.Cart) error {
		line := findLine(cart, productID, size, color)
		if line == nil {
			return nil
		}
		line.Quantity = clampQuantity(line.Quantity+1, line.MaxQuantity)
		return nil
	})
}

// DecrementItem 行数量减一，最低保持 1，不隐式移除
func (s *CartService) DecrementItem(userID uint, productID uint, size, color string) (*CartView, error) {
	return s.mutate(userID, func(cart *models.Cart) error {
		line := findLine(cart, productID, size, color)
		if line == nil {
			return nil
		}
		if line.Quantity > 1 {
			line.Quantity--
		}
		return nil
	})
}

// RemoveItem 移除购物车行，行不存在时静默成功
func (s *CartService) RemoveItem(userID uint, productID uint, size, color string) (*CartView, error) {
	return s.mutate(userID, func(cart *models.Cart) error {
		removeLine(cart, productID, size, color)
		return nil
	})
}

// ApplyDiscount 应用折扣码并返回被替换的旧码。
// 同一购物车同时只有一个折扣码，重复应用为替换语义。
func (s *CartService) ApplyDiscount(userID uint, code string) (*CartView, string, error) {
	discount, err := s.discountService.Resolve(code)
	if err != nil {
		return nil, "", err
	}

	var previous string
	view, err := s.mutate(userID, func(cart *models.Cart) error {
		previous = cart.DiscountCode
		cart.DiscountCode = discount.Code
		cart.DiscountKind = discount.Kind
		cart.DiscountDescription = discount.Description
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return view, previous, nil
}

// RemoveDiscount 移除折扣码，无码时静默成功
func (s *CartService) RemoveDiscount(userID uint) (*CartView, error) {
	return s.mutate(userID, func(cart *models.Cart) error {
		cart.DiscountCode = ""
		cart.DiscountKind = ""
		cart.DiscountAmount = models.Money{}
		cart.DiscountDescription = ""
		return nil
	})
}

// Clear 清空购物车，明细与折扣一并移除
func (s *CartService) Clear(userID uint) (*CartView, error) {
	return s.mutate(userID, func(cart *models.Cart) error {
		cart.Items = nil
		cart.DiscountCode = ""
		cart.DiscountKind = ""
		cart.DiscountAmount = models.Money{}
		cart.DiscountDescription = ""
		return nil
	})
}

// mutate 读取-修改-快照写回。写回前按当前明细重算折扣金额，
// 保证落库的折扣额与行数据一致。
func (s *CartService) mutate(userID uint, apply func(cart *models.Cart) error) (*CartView, error) {
	cart, err := s.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}
	expectedVersion := cart.Version

	if err := apply(cart); err != nil {
		return nil, err
	}

	if err := s.refreshDiscount(cart); err != nil {
		return nil, err
	}

	if err := s.cartRepo.SaveSnapshot(cart, expectedVersion); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			logger.Warnw("cart_snapshot_conflict", "user_id", userID, "version", expectedVersion)
			return nil, ErrStaleCart
		}
		return nil, err
	}

	return s.buildView(cart), nil
}

// refreshDiscount 按当前小计重算折扣额。码已失效时静默摘除，
// 购物车照常可用。
func (s *CartService) refreshDiscount(cart *models.Cart) error {
	if cart.DiscountCode == "" {
		cart.DiscountAmount = models.Money{}
		return nil
	}

	discount, err := s.discountService.Resolve(cart.DiscountCode)
	if err != nil {
		if errors.Is(err, ErrInvalidDiscountCode) {
			logger.Infow("cart_discount_dropped", "code", cart.DiscountCode)
			cart.DiscountCode = ""
			cart.DiscountKind = ""
			cart.DiscountAmount = models.Money{}
			cart.DiscountDescription = ""
			return nil
		}
		return err
	}

	cart.DiscountKind = discount.Kind
	cart.DiscountDescription = discount.Description
	cart.DiscountAmount = s.discountService.ComputeAmount(discount, subtotalOf(cart))
	return nil
}

// buildView 组装购物车视图
func (s *CartService) buildView(cart *models.Cart) *CartView {
	return &CartView{
		Cart:   cart,
		Totals: s.ComputeTotals(cart),
	}
}

// ComputeTotals 计算金额汇总：
// 折后金额 = 小计 - 折扣额；
// 运费：空车或折后金额达到免邮门槛或免邮折扣时为 0，否则固定运费；
// 税额 = 折后金额 × 税率；总额 = 折后金额 + 运费 + 税额。
func (s *CartService) ComputeTotals(cart *models.Cart) CartTotals {
	totals := CartTotals{}
	if cart == nil {
		return totals
	}

	subtotal := decimal.Zero
	for _, item := range cart.Items {
		totals.ItemCount += item.Quantity
		subtotal = subtotal.Add(item.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	discountAmount := cart.DiscountAmount.Decimal
	if discountAmount.GreaterThan(subtotal) {
		discountAmount = subtotal
	}
	discounted := subtotal.Sub(discountAmount)

	shipping := decimal.Zero
	if totals.ItemCount > 0 &&
		!s.discountService.IsFreeShipping(cart.DiscountKind) &&
		discounted.LessThan(decimal.NewFromFloat(s.checkout.FreeShippingThreshold)) {
		shipping = decimal.NewFromFloat(s.checkout.ShippingFee)
	}

	tax := discounted.Mul(decimal.NewFromFloat(s.checkout.TaxRate)).Round(2)

	totals.Subtotal = models.NewMoneyFromDecimal(subtotal)
	totals.DiscountAmount = models.NewMoneyFromDecimal(discountAmount)
	totals.ShippingCost = models.NewMoneyFromDecimal(shipping)
	totals.Tax = models.NewMoneyFromDecimal(tax)
	totals.Total = models.NewMoneyFromDecimal(discounted.Add(shipping).Add(tax))
	return totals
}

func subtotalOf(cart *models.Cart) models.Money {
	subtotal := decimal.Zero
	for _, item := range cart.Items {
		subtotal = subtotal.Add(item.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return models.NewMoneyFromDecimal(subtotal)
}

func findLine(cart *models.Cart, productID uint, size, color string) *models.CartItem {
	size = strings.TrimSpace(size)
	color = strings.TrimSpace(color)
	for i := range cart.Items {
		item := &cart.Items[i]
		if item.ProductID == productID && item.Size == size && item.Color == color {
			return item
		}
	}
	return nil
}

func removeLine(cart *models.Cart, productID uint, size, color string) {
	size = strings.TrimSpace(size)
	color = strings.TrimSpace(color)
	items := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID == productID && item.Size == size && item.Color == color {
			continue
		}
		items = append(items, item)
	}
	cart.Items = items
}

func clampQuantity(quantity, max int) int {
	if quantity < 1 {
		return 1
	}
	if max > 0 && quantity > max {
		return max
	}
	return quantity
}

func firstImage(product *models.Product) string {
	if product == nil || len(product.Images) == 0 {
		return ""
	}
	return product.Images[0]
}
