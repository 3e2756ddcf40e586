package book

import (
	"context"
	"errors"
	"testing"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// fakeBookService 可配置返回值的领域服务替身
type fakeBookService struct {
	createErr error
	deleteErr error
}

func (s *fakeBookService) ListBooks(_ context.Context, q *book.Query) (*book.ListResult, error) {
	return &book.ListResult{Books: []*book.Book{}, CurrentPage: q.Page}, nil
}

func (s *fakeBookService) GetBookByID(_ context.Context, id uint) (*book.Book, error) {
	return nil, book.ErrBookNotFound
}

func (s *fakeBookService) CreateBook(_ context.Context, _ uint, b *book.Book) (*book.Book, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	b.ID = 42
	return b, nil
}

func (s *fakeBookService) UpdateBook(_ context.Context, _ uint, _ uint, _ book.Patch) (*book.Book, error) {
	return nil, book.ErrBookNotFound
}

func (s *fakeBookService) DeleteBook(_ context.Context, _ uint, _ uint) error {
	return s.deleteErr
}

// fakePublisher 记录发布的事件
type fakePublisher struct {
	published []string
	events    []BookEvent
	err       error
}

func (p *fakePublisher) Publish(routingKey string, message interface{}) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, routingKey)
	if ev, ok := message.(BookEvent); ok {
		p.events = append(p.events, ev)
	}
	return nil
}

// TestCreateBook_PublishesEvent 创建成功后发布created事件
func TestCreateBook_PublishesEvent(t *testing.T) {
	pub := &fakePublisher{}
	uc := NewCreateBookUseCase(&fakeBookService{}, pub)

	item, err := uc.Execute(context.Background(), 1, CreateBookRequest{
		Title: "事件测试图书", Price: 100, Stock: 5, Category: "测试", Author: "作者",
	})
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	if item.ID != 42 {
		t.Errorf("应返回存储分配的ID，实际%d", item.ID)
	}

	if len(pub.published) != 1 || pub.published[0] != RoutingKeyBookCreated {
		t.Fatalf("期望发布一条%s事件，实际%v", RoutingKeyBookCreated, pub.published)
	}
	ev := pub.events[0]
	if ev.BookID != 42 || ev.Action != "created" || ev.OperatorID != 1 {
		t.Errorf("事件载荷不符: %+v", ev)
	}
	if ev.OccurredAt == 0 {
		t.Error("事件应带发生时间戳")
	}
}

// TestCreateBook_NoEventOnFailure 创建失败不发布事件
func TestCreateBook_NoEventOnFailure(t *testing.T) {
	pub := &fakePublisher{}
	uc := NewCreateBookUseCase(&fakeBookService{createErr: book.ErrTitleDuplicate}, pub)

	_, err := uc.Execute(context.Background(), 1, CreateBookRequest{
		Title: "重复图书", Price: 100, Stock: 5, Category: "测试", Author: "作者",
	})
	if !errors.Is(err, book.ErrTitleDuplicate) {
		t.Fatalf("期望ErrTitleDuplicate，实际%v", err)
	}
	if len(pub.published) != 0 {
		t.Error("失败的创建不应发布事件")
	}
}

// TestCreateBook_PublisherOptional 未接broker时publisher为nil,创建照常成功
func TestCreateBook_PublisherOptional(t *testing.T) {
	uc := NewCreateBookUseCase(&fakeBookService{}, nil)

	if _, err := uc.Execute(context.Background(), 1, CreateBookRequest{
		Title: "无broker图书", Price: 100, Stock: 5, Category: "测试", Author: "作者",
	}); err != nil {
		t.Fatalf("publisher为nil时创建不应失败: %v", err)
	}
}

// TestCreateBook_PublishFailureTolerated 事件发布失败只记日志,不影响业务结果
func TestCreateBook_PublishFailureTolerated(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker不可达")}
	uc := NewCreateBookUseCase(&fakeBookService{}, pub)

	if _, err := uc.Execute(context.Background(), 1, CreateBookRequest{
		Title: "发布失败图书", Price: 100, Stock: 5, Category: "测试", Author: "作者",
	}); err != nil {
		t.Fatalf("事件发布失败不应影响创建结果: %v", err)
	}
}

// TestMutationResult 变更错误到指标标签的归类
func TestMutationResult(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{apperrors.ErrUnauthorized, "unauthorized"},
		{book.ErrOnlyAdminDelete, "denied"},
		{book.ErrTitleDuplicate, "conflict"},
		{book.ErrBookNotFound, "not_found"},
		{book.ErrInvalidPrice, "invalid"},
		{errors.New("connection reset"), "error"},
	}
	for _, tc := range cases {
		if got := mutationResult(tc.err); got != tc.want {
			t.Errorf("mutationResult(%v)期望%s，实际%s", tc.err, tc.want, got)
		}
	}
}
