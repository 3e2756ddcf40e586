package circuitbreaker

import (
	"errors"
	"testing"
	"time"
)

func newTestBreaker(trip func(Counts) bool) *CircuitBreaker {
	return NewCircuitBreaker("book-cache", Config{
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     100 * time.Millisecond,
		ReadyToTrip: trip,
	})
}

// TestClosedState 正常请求下保持关闭状态
func TestClosedState(t *testing.T) {
	cb := newTestBreaker(func(counts Counts) bool {
		return counts.ConsecutiveFailures >= 5
	})

	for i := 0; i < 10; i++ {
		if err := cb.Execute(func() error { return nil }); err != nil {
			t.Fatalf("期望成功,实际失败: %v", err)
		}
	}

	if cb.State() != StateClosed {
		t.Errorf("期望状态为CLOSED,实际%s", cb.State())
	}
	if counts := cb.Counts(); counts.TotalSuccesses != 10 {
		t.Errorf("期望成功10次,实际%d次", counts.TotalSuccesses)
	}
}

// TestOpenState 连续失败触发熔断后快速失败
func TestOpenState(t *testing.T) {
	cb := newTestBreaker(func(counts Counts) bool {
		return counts.ConsecutiveFailures >= 5
	})

	for i := 0; i < 5; i++ {
		_ = cb.Execute(func() error {
			return errors.New("redis: connection refused")
		})
	}

	if cb.State() != StateOpen {
		t.Fatalf("期望状态为OPEN,实际%s", cb.State())
	}

	// 熔断后不应再调用下游
	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})
	if err != ErrOpenState {
		t.Errorf("期望返回ErrOpenState,实际%v", err)
	}
	if called {
		t.Error("熔断器打开时不应调用实际函数")
	}
}

// TestHalfOpenRecovery 超时后放行探测请求,成功转回关闭
func TestHalfOpenRecovery(t *testing.T) {
	cb := newTestBreaker(func(counts Counts) bool {
		return counts.ConsecutiveFailures >= 3
	})

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errors.New("fail") })
	}
	if cb.State() != StateOpen {
		t.Fatalf("期望状态为OPEN,实际%s", cb.State())
	}

	time.Sleep(150 * time.Millisecond)

	called := false
	if err := cb.Execute(func() error {
		called = true
		return nil
	}); err != nil {
		t.Errorf("半开状态探测请求期望成功,实际%v", err)
	}
	if !called {
		t.Error("半开状态应放行探测请求")
	}
	if cb.State() != StateClosed {
		t.Errorf("期望状态转为CLOSED,实际%s", cb.State())
	}
}

// TestHalfOpenToOpen 半开状态探测失败立即转回打开
func TestHalfOpenToOpen(t *testing.T) {
	cb := newTestBreaker(func(counts Counts) bool {
		return counts.ConsecutiveFailures >= 3
	})

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errors.New("fail") })
	}

	time.Sleep(150 * time.Millisecond)

	_ = cb.Execute(func() error { return errors.New("still failing") })

	if cb.State() != StateOpen {
		t.Errorf("期望状态转回OPEN,实际%s", cb.State())
	}
}

// TestStateChangeCallback 状态变化按顺序触发回调
func TestStateChangeCallback(t *testing.T) {
	cb := newTestBreaker(func(counts Counts) bool {
		return counts.ConsecutiveFailures >= 3
	})

	var changes []string
	cb.SetStateChangeCallback(func(name string, from State, to State) {
		changes = append(changes, from.String()+"->"+to.String())
	})

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errors.New("fail") })
	}
	time.Sleep(150 * time.Millisecond)
	_ = cb.Execute(func() error { return nil })

	expected := []string{"CLOSED->OPEN", "OPEN->HALF_OPEN", "HALF_OPEN->CLOSED"}
	if len(changes) != len(expected) {
		t.Fatalf("期望%d次状态变化,实际%d次: %v", len(expected), len(changes), changes)
	}
	for i, want := range expected {
		if changes[i] != want {
			t.Errorf("第%d次状态变化期望%s,实际%s", i, want, changes[i])
		}
	}
}

// TestFailureRateTrip 基于失败率的熔断策略
func TestFailureRateTrip(t *testing.T) {
	cb := NewCircuitBreaker("book-cache", Config{
		MaxRequests: 3,
		Interval:    time.Hour, // 长窗口, 避免统计被重置
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts Counts) bool {
			return counts.Requests >= 10 && counts.FailureRate() > 0.5
		},
	})

	// 4成功后6失败, 第10个请求时失败率达到60%
	for i := 0; i < 4; i++ {
		_ = cb.Execute(func() error { return nil })
	}
	for i := 0; i < 6; i++ {
		_ = cb.Execute(func() error { return errors.New("fail") })
	}

	if cb.State() != StateOpen {
		t.Errorf("失败率超过50%%时期望熔断,实际状态%s", cb.State())
	}
}
