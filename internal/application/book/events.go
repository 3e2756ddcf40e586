package book

import (
	"log"
	"time"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 图书事件路由键(topic exchange: catalog.events)
const (
	RoutingKeyBookCreated = "catalog.book.created"
	RoutingKeyBookUpdated = "catalog.book.updated"
	RoutingKeyBookDeleted = "catalog.book.deleted"
)

// EventPublisher 事件发布端口
// 由pkg/mq.Publisher实现;测试中用fake替代,不依赖真实broker
type EventPublisher interface {
	Publish(routingKey string, message interface{}) error
}

// BookEvent 图书变更事件载荷
type BookEvent struct {
	BookID     uint   `json:"book_id"`
	Title      string `json:"title"`
	Action     string `json:"action"` // created | updated | deleted
	OperatorID uint   `json:"operator_id"`
	OccurredAt int64  `json:"occurred_at"` // Unix时间戳(秒)
}

// mutationResult 把变更错误归类为指标result标签
func mutationResult(err error) string {
	appErr := apperrors.GetAppError(err)
	switch appErr.Code {
	case apperrors.ErrCodeUnauthorized, apperrors.ErrCodeInvalidToken, apperrors.ErrCodeTokenExpired:
		return "unauthorized"
	case apperrors.ErrCodeForbidden:
		return "denied"
	case apperrors.ErrCodeConflict, apperrors.ErrCodeDuplicateEntry:
		return "conflict"
	case apperrors.ErrCodeNotFound, apperrors.ErrCodeBookNotFound:
		return "not_found"
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeBindError, apperrors.ErrCodeBusinessError:
		return "invalid"
	default:
		return "error"
	}
}

// publishEvent 发布图书变更事件
// 变更已提交,事件发布是尽力而为:失败只记日志,不回滚业务结果
func publishEvent(pub EventPublisher, routingKey string, event BookEvent) {
	if pub == nil {
		return
	}
	event.OccurredAt = time.Now().Unix()
	if err := pub.Publish(routingKey, event); err != nil {
		log.Printf("发布图书事件失败: routing_key=%s, book_id=%d, err=%v",
			routingKey, event.BookID, err)
	}
}
