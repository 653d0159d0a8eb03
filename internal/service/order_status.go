package service

import (
	"strings"

	"github.com/marketnest/internal/constants"
)

// orderTransitions 订单状态流转表。
// 正向链路 pending → confirmed → processing → shipped → delivered，
// pending/confirmed 可取消，delivered 可退货，其余一律拒绝。
var orderTransitions = map[string][]string{
	constants.OrderStatusPending: {
		constants.OrderStatusConfirmed,
		constants.OrderStatusCancelled,
	},
	constants.OrderStatusConfirmed: {
		constants.OrderStatusProcessing,
		constants.OrderStatusCancelled,
	},
	constants.OrderStatusProcessing: {
		constants.OrderStatusShipped,
	},
	constants.OrderStatusShipped: {
		constants.OrderStatusDelivered,
	},
	constants.OrderStatusDelivered: {
		constants.OrderStatusReturned,
	},
	constants.OrderStatusCancelled: {},
	constants.OrderStatusReturned:  {},
}

// CanTransition 判断订单状态能否从 from 流转到 to
func CanTransition(from, to string) bool {
	from = strings.ToLower(strings.TrimSpace(from))
	to = strings.ToLower(strings.TrimSpace(to))
	for _, allowed := range orderTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTerminalStatus 判断是否终态
func IsTerminalStatus(status string) bool {
	status = strings.ToLower(strings.TrimSpace(status))
	allowed, ok := orderTransitions[status]
	return ok && len(allowed) == 0
}

// IsValidOrderStatus 判断状态值是否合法
func IsValidOrderStatus(status string) bool {
	_, ok := orderTransitions[strings.ToLower(strings.TrimSpace(status))]
	return ok
}

// CancellableStatuses 可取消的状态集合
func CancellableStatuses() []string {
	return []string{constants.OrderStatusPending, constants.OrderStatusConfirmed}
}
