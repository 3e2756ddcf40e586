package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// TestInitMetrics 测试指标初始化
func TestInitMetrics(t *testing.T) {
	InitMetrics()

	if HTTPRequestsTotal == nil {
		t.Error("HTTPRequestsTotal未初始化")
	}
	if HTTPRequestDuration == nil {
		t.Error("HTTPRequestDuration未初始化")
	}
	if HTTPRequestsInProgress == nil {
		t.Error("HTTPRequestsInProgress未初始化")
	}
	if CatalogQueriesTotal == nil {
		t.Error("CatalogQueriesTotal未初始化")
	}
	if BookMutationsTotal == nil {
		t.Error("BookMutationsTotal未初始化")
	}

	// 重复调用不应panic(promauto重复注册会panic)
	InitMetrics()
}

// TestObserveHTTPRequest 测试HTTP请求指标
func TestObserveHTTPRequest(t *testing.T) {
	InitMetrics()

	before := getCounterVecValue(t, HTTPRequestsTotal, "GET", "/api/v1/books", "200")

	ObserveHTTPRequest("GET", "/api/v1/books", "200", 15*time.Millisecond)
	ObserveHTTPRequest("GET", "/api/v1/books", "200", 30*time.Millisecond)

	after := getCounterVecValue(t, HTTPRequestsTotal, "GET", "/api/v1/books", "200")
	if after-before != 2 {
		t.Errorf("期望计数增加2, 实际增加%f", after-before)
	}
}

// TestObserveBookMutation 测试变更指标按action和result区分
func TestObserveBookMutation(t *testing.T) {
	InitMetrics()

	ObserveBookMutation("create", "ok", 5*time.Millisecond)
	ObserveBookMutation("create", "conflict", 2*time.Millisecond)
	ObserveBookMutation("delete", "denied", time.Millisecond)

	if v := getCounterVecValue(t, BookMutationsTotal, "create", "ok"); v < 1 {
		t.Errorf("期望create/ok计数>=1, 实际%f", v)
	}
	if v := getCounterVecValue(t, BookMutationsTotal, "delete", "denied"); v < 1 {
		t.Errorf("期望delete/denied计数>=1, 实际%f", v)
	}
}

// TestObserveCatalogQuery 测试查询指标仅在成功时记录耗时
func TestObserveCatalogQuery(t *testing.T) {
	InitMetrics()

	okBefore := getCounterVecValue(t, CatalogQueriesTotal, "ok")
	invalidBefore := getCounterVecValue(t, CatalogQueriesTotal, "invalid")

	ObserveCatalogQuery("ok", 10, 8*time.Millisecond)
	ObserveCatalogQuery("invalid", 0, 0)

	if v := getCounterVecValue(t, CatalogQueriesTotal, "ok"); v-okBefore != 1 {
		t.Errorf("期望ok计数增加1, 实际增加%f", v-okBefore)
	}
	if v := getCounterVecValue(t, CatalogQueriesTotal, "invalid"); v-invalidBefore != 1 {
		t.Errorf("期望invalid计数增加1, 实际增加%f", v-invalidBefore)
	}
}

// TestRecordHelpers 记录函数对任意标签组合不应panic
func TestRecordHelpers(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("记录函数panic: %v", r)
		}
	}()
	ObserveCacheRequest("book", "hit")
	IncCircuitBreakerRequest("book-cache", "success")
	IncMessagePublished("catalog.events", "catalog.book.created")
	IncMessageConsumed("catalog.audit", "ok")
}

// getCounterVecValue 读取CounterVec指定标签的当前值
func getCounterVecValue(t *testing.T, vec *prometheus.CounterVec, labels ...string) float64 {
	t.Helper()

	counter, err := vec.GetMetricWithLabelValues(labels...)
	if err != nil {
		t.Fatalf("获取指标失败: %v", err)
	}

	metric := &dto.Metric{}
	if err := counter.Write(metric); err != nil {
		t.Fatalf("读取指标失败: %v", err)
	}
	return metric.GetCounter().GetValue()
}
