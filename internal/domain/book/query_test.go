package book

import (
	"testing"
)

// TestParseListQuery_Defaults 测试不带任何参数时的默认查询计划
func TestParseListQuery_Defaults(t *testing.T) {
	q, err := ParseListQuery(ListQueryRaw{})
	if err != nil {
		t.Fatalf("解析空参数失败: %v", err)
	}

	if q.Page != DefaultPage {
		t.Errorf("默认页码期望%d，实际%d", DefaultPage, q.Page)
	}
	if q.PageSize != DefaultPageSize {
		t.Errorf("默认每页数量期望%d，实际%d", DefaultPageSize, q.PageSize)
	}
	if q.Order != OrderAsc {
		t.Errorf("默认排序方向期望asc，实际%s", q.Order)
	}
	if q.SortBy != "" {
		t.Errorf("默认不应指定排序字段，实际%s", q.SortBy)
	}
	if q.MinRating != nil {
		t.Error("未提供rating时不应有评分谓词")
	}
}

// TestParseListQuery_Rating 测试评分参数解析
func TestParseListQuery_Rating(t *testing.T) {
	q, err := ParseListQuery(ListQueryRaw{Rating: "4.5"})
	if err != nil {
		t.Fatalf("解析合法rating失败: %v", err)
	}
	if q.MinRating == nil || *q.MinRating != 4.5 {
		t.Errorf("评分谓词期望4.5，实际%v", q.MinRating)
	}

	// 非数字、NaN、Inf一律报错
	for _, bad := range []string{"abc", "NaN", "Inf", "-Inf"} {
		if _, err := ParseListQuery(ListQueryRaw{Rating: bad}); err == nil {
			t.Errorf("rating=%q应报错", bad)
		}
	}
}

// TestParseListQuery_Pagination 测试分页参数解析
func TestParseListQuery_Pagination(t *testing.T) {
	q, err := ParseListQuery(ListQueryRaw{Page: "3", Limit: "25"})
	if err != nil {
		t.Fatalf("解析分页参数失败: %v", err)
	}
	if q.Page != 3 || q.PageSize != 25 {
		t.Errorf("期望page=3 limit=25，实际page=%d limit=%d", q.Page, q.PageSize)
	}
	if q.Offset() != 50 {
		t.Errorf("偏移量期望50，实际%d", q.Offset())
	}

	// 非正整数报错
	for _, bad := range []string{"0", "-1", "abc", "1.5"} {
		if _, err := ParseListQuery(ListQueryRaw{Page: bad}); err == nil {
			t.Errorf("page=%q应报错", bad)
		}
		if _, err := ParseListQuery(ListQueryRaw{Limit: bad}); err == nil {
			t.Errorf("limit=%q应报错", bad)
		}
	}

	// limit超上限收敛而不报错
	q, err = ParseListQuery(ListQueryRaw{Limit: "500"})
	if err != nil {
		t.Fatalf("limit超上限不应报错: %v", err)
	}
	if q.PageSize != MaxPageSize {
		t.Errorf("limit=500应收敛到%d，实际%d", MaxPageSize, q.PageSize)
	}
}

// TestParseListQuery_Sort 测试排序字段白名单
func TestParseListQuery_Sort(t *testing.T) {
	for _, field := range []string{"title", "price", "rating", "stock"} {
		q, err := ParseListQuery(ListQueryRaw{SortBy: field})
		if err != nil {
			t.Errorf("sortBy=%q应被接受: %v", field, err)
			continue
		}
		if string(q.SortBy) != field {
			t.Errorf("排序字段期望%s，实际%s", field, q.SortBy)
		}
	}

	// 白名单外的字段直接报错，防止静默忽略掩盖客户端拼写错误
	for _, bad := range []string{"id", "created_at", "price; DROP TABLE"} {
		if _, err := ParseListQuery(ListQueryRaw{SortBy: bad}); err == nil {
			t.Errorf("sortBy=%q应报错", bad)
		}
	}

	// order只认desc，其余一律升序
	q, _ := ParseListQuery(ListQueryRaw{Order: "desc"})
	if q.Order != OrderDesc {
		t.Errorf("order=desc期望降序，实际%s", q.Order)
	}
	q, _ = ParseListQuery(ListQueryRaw{Order: "DESC"})
	if q.Order != OrderAsc {
		t.Errorf("order=DESC不等于desc，应回落升序，实际%s", q.Order)
	}
}

// TestQueryMatches 测试过滤谓词语义(与存储层查询保持一致)
func TestQueryMatches(t *testing.T) {
	b := &Book{
		Title:    "Go程序设计语言",
		Category: "编程",
		Author:   "Alan Donovan",
		Rating:   4.8,
		Stock:    10,
	}

	rating := 4.5
	cases := []struct {
		name string
		q    Query
		want bool
	}{
		{"无过滤条件", Query{}, true},
		{"分类精确匹配", Query{Category: "编程"}, true},
		{"分类不匹配", Query{Category: "文学"}, false},
		{"作者精确匹配", Query{Author: "Alan Donovan"}, true},
		{"作者不匹配", Query{Author: "alan donovan"}, false},
		{"评分达标", Query{MinRating: &rating}, true},
		{"标题子串匹配", Query{TitleLike: "程序设计"}, true},
		{"标题大小写不敏感", Query{TitleLike: "gO程序"}, true},
		{"标题不含子串", Query{TitleLike: "Python"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.q.Matches(b); got != tc.want {
				t.Errorf("期望%v，实际%v", tc.want, got)
			}
		})
	}

	// 隐含谓词:缺货图书在任何查询下都不可见
	out := *b
	out.Stock = 0
	if (&Query{}).Matches(&out) {
		t.Error("缺货图书不应匹配任何列表查询")
	}

	// 评分严格低于阈值时不匹配
	low := *b
	low.Rating = 4.4
	if (&Query{MinRating: &rating}).Matches(&low) {
		t.Error("评分低于阈值的图书不应匹配")
	}
	// 评分恰好等于阈值时匹配(>=语义)
	eq := *b
	eq.Rating = 4.5
	if !(&Query{MinRating: &rating}).Matches(&eq) {
		t.Error("评分等于阈值的图书应匹配")
	}
}
