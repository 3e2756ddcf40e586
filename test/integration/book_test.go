package integration

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestListBooks_Public 列表查询无需登录
func TestListBooks_Public(t *testing.T) {
	RequireServer(t)

	resp := GetJSON(t, BaseURL+"/books", "")
	require.Equal(t, http.StatusOK, resp.Status, "响应: %s", string(resp.Body))

	var list BookListData
	Decode(t, resp, &list)
	assert.Equal(t, 1, list.CurrentPage, "默认应返回第一页")
	assert.NotNil(t, list.Books, "books字段应为数组(可为空)而不是null")

	// 隐含谓词:列表里不应出现缺货图书
	for _, b := range list.Books {
		assert.Greater(t, b.Stock, 0, "缺货图书不应出现在列表中: %s", b.Title)
	}
}

// TestListBooks_InvalidQuery 非法查询参数返回400
func TestListBooks_InvalidQuery(t *testing.T) {
	RequireServer(t)

	cases := []struct {
		name  string
		query string
	}{
		{"rating非数字", "rating=high"},
		{"page为0", "page=0"},
		{"page为负", "page=-1"},
		{"limit非整数", "limit=abc"},
		{"未知排序字段", "sortBy=created_at"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := GetJSON(t, BaseURL+"/books?"+tc.query, "")
			require.Equal(t, http.StatusBadRequest, resp.Status,
				"响应: %s", string(resp.Body))
			assert.NotEmpty(t, FirstError(t, resp))
		})
	}
}

// TestListBooks_LimitCap limit超上限不报错,收敛到最大值
func TestListBooks_LimitCap(t *testing.T) {
	RequireServer(t)

	resp := GetJSON(t, BaseURL+"/books?limit=1000", "")
	require.Equal(t, http.StatusOK, resp.Status, "响应: %s", string(resp.Body))

	var list BookListData
	Decode(t, resp, &list)
	assert.LessOrEqual(t, len(list.Books), 100, "单页数量不应超过上限")
}

// TestListBooks_BeyondLastPage 超出末页返回空列表而不是错误
func TestListBooks_BeyondLastPage(t *testing.T) {
	RequireServer(t)

	resp := GetJSON(t, BaseURL+"/books?page=100000", "")
	require.Equal(t, http.StatusOK, resp.Status, "响应: %s", string(resp.Body))

	var list BookListData
	Decode(t, resp, &list)
	assert.Empty(t, list.Books)
	assert.Equal(t, 100000, list.CurrentPage, "页码保持请求值")
}

// TestGetBook_NotFound 不存在的ID与非数字ID都按404处理
func TestGetBook_NotFound(t *testing.T) {
	RequireServer(t)

	for _, id := range []string{"99999999", "abc"} {
		resp := GetJSON(t, BaseURL+"/books/"+id, "")
		require.Equal(t, http.StatusNotFound, resp.Status,
			"id=%s 响应: %s", id, string(resp.Body))
	}
}

// TestMutations_RequireAuth 三类写操作未登录一律401
func TestMutations_RequireAuth(t *testing.T) {
	RequireServer(t)

	createResp := PostJSON(t, BaseURL+"/books", map[string]interface{}{
		"title":    GenerateTestTitle("匿名创建"),
		"price":    100,
		"stock":    1,
		"category": "测试",
		"author":   "无名氏",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, createResp.Status)

	price := 100
	patchResp := PatchJSON(t, BaseURL+"/books/1", map[string]interface{}{"price": price}, "")
	assert.Equal(t, http.StatusUnauthorized, patchResp.Status)

	deleteResp := DeleteJSON(t, BaseURL+"/books/1", "")
	assert.Equal(t, http.StatusUnauthorized, deleteResp.Status)
}

// TestMutations_ForbiddenForStandardUser 普通用户写操作403
// 注册入口只能创建普通用户,角色以数据库当前值为准
func TestMutations_ForbiddenForStandardUser(t *testing.T) {
	RequireServer(t)

	_, token := RegisterTestUser(t, "standard_user")

	createResp := PostJSON(t, BaseURL+"/books", map[string]interface{}{
		"title":    GenerateTestTitle("越权创建"),
		"price":    100,
		"stock":    1,
		"category": "测试",
		"author":   "无名氏",
	}, token)
	require.Equal(t, http.StatusForbidden, createResp.Status,
		"响应: %s", string(createResp.Body))
	assert.Contains(t, FirstError(t, createResp), "管理员")
}

// TestDeleteBook_NotFoundBeforeRoleCheck 删除不存在的ID返回404
// 存在性检查先于鉴权:普通用户也拿到404而不是403
func TestDeleteBook_NotFoundBeforeRoleCheck(t *testing.T) {
	RequireServer(t)

	_, token := RegisterTestUser(t, "probe_user")

	resp := DeleteJSON(t, BaseURL+"/books/99999999", token)
	assert.Equal(t, http.StatusNotFound, resp.Status, "响应: %s", string(resp.Body))
}

// TestBookLifecycle_Admin 管理员完整生命周期:创建→查询→更新→删除
func TestBookLifecycle_Admin(t *testing.T) {
	RequireServer(t)
	adminToken := AdminToken(t)

	// 1. 创建
	title := GenerateTestTitle("生命周期图书")
	bookID := PublishTestBook(t, adminToken, title, 10)
	bookURL := fmt.Sprintf("%s/books/%d", BaseURL, bookID)

	// 2. 重复标题返回409
	dupResp := PostJSON(t, BaseURL+"/books", map[string]interface{}{
		"title":    title,
		"price":    100,
		"stock":    1,
		"category": "测试分类",
		"author":   "测试作者",
	}, adminToken)
	require.Equal(t, http.StatusConflict, dupResp.Status,
		"响应: %s", string(dupResp.Body))

	// 3. 详情查询(公开)
	getResp := GetJSON(t, bookURL, "")
	require.Equal(t, http.StatusOK, getResp.Status)
	var book BookData
	Decode(t, getResp, &book)
	assert.Equal(t, title, book.Title)
	assert.Equal(t, "89.00", book.PriceYuan)

	// 4. 部分更新:只改价格,其他字段保持原值
	patchResp := PatchJSON(t, bookURL, map[string]interface{}{"price": 12900}, adminToken)
	require.Equal(t, http.StatusOK, patchResp.Status, "响应: %s", string(patchResp.Body))
	var updated BookData
	Decode(t, patchResp, &updated)
	assert.Equal(t, int64(12900), updated.Price)
	assert.Equal(t, title, updated.Title, "未提供的字段不应改变")

	// 5. 未知字段在解码阶段被拒绝
	unknownResp := PatchJSON(t, bookURL, map[string]interface{}{"publisher": "某出版社"}, adminToken)
	assert.Equal(t, http.StatusBadRequest, unknownResp.Status,
		"响应: %s", string(unknownResp.Body))

	// 6. 非法字段值整体拒绝,记录不变
	badResp := PatchJSON(t, bookURL, map[string]interface{}{"rating": 9.9, "stock": 50}, adminToken)
	require.Equal(t, http.StatusBadRequest, badResp.Status)
	checkResp := GetJSON(t, bookURL, "")
	var unchanged BookData
	Decode(t, checkResp, &unchanged)
	assert.Equal(t, 10, unchanged.Stock, "非法补丁不应部分生效")

	// 7. 库存改为0后从列表中消失,详情仍可查
	zeroResp := PatchJSON(t, bookURL, map[string]interface{}{"stock": 0}, adminToken)
	require.Equal(t, http.StatusOK, zeroResp.Status)
	listResp := GetJSON(t, BaseURL+"/books?title="+title, "")
	var list BookListData
	Decode(t, listResp, &list)
	assert.Empty(t, list.Books, "缺货图书不应出现在列表中")
	stillResp := GetJSON(t, bookURL, "")
	assert.Equal(t, http.StatusOK, stillResp.Status, "缺货图书详情仍可查询")

	// 8. 删除
	delResp := DeleteJSON(t, bookURL, adminToken)
	require.Equal(t, http.StatusOK, delResp.Status, "响应: %s", string(delResp.Body))
	var delBody struct {
		Message string `json:"message"`
	}
	Decode(t, delResp, &delBody)
	assert.NotEmpty(t, delBody.Message)

	// 9. 删除后详情404,再次删除也是404
	assert.Equal(t, http.StatusNotFound, GetJSON(t, bookURL, "").Status)
	assert.Equal(t, http.StatusNotFound, DeleteJSON(t, bookURL, adminToken).Status)

	// 10. 删除释放标题:同名图书可以重新创建
	recreatedID := PublishTestBook(t, adminToken, title, 5)
	assert.NotEqual(t, bookID, recreatedID, "重建应分配新ID")
	DeleteJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, recreatedID), adminToken)
}

// TestCreateBook_TitleCaseSensitive 标题查重是大小写敏感的精确匹配
// 仅大小写不同的标题可以共存,不构成冲突
func TestCreateBook_TitleCaseSensitive(t *testing.T) {
	RequireServer(t)
	adminToken := AdminToken(t)

	title := GenerateTestTitle("CaseTitle")
	lower := strings.ToLower(title)
	require.NotEqual(t, title, lower)

	id1 := PublishTestBook(t, adminToken, title, 5)
	id2 := PublishTestBook(t, adminToken, lower, 5)
	t.Cleanup(func() {
		DeleteJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, id1), adminToken)
		DeleteJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, id2), adminToken)
	})

	assert.NotEqual(t, id1, id2)
}

// TestListBooks_FilterAndSort 过滤与排序(依赖管理员账号造数据)
func TestListBooks_FilterAndSort(t *testing.T) {
	RequireServer(t)
	adminToken := AdminToken(t)

	// 同一分类下上架三本价格不同的图书
	category := GenerateTestTitle("分类")
	ids := make([]uint, 0, 3)
	for i, price := range []int{300, 100, 200} {
		resp := PostJSON(t, BaseURL+"/books", map[string]interface{}{
			"title":    GenerateTestTitle(fmt.Sprintf("排序图书%d", i)),
			"price":    price,
			"stock":    5,
			"category": category,
			"author":   "排序作者",
			"rating":   4.0,
		}, adminToken)
		require.Equal(t, http.StatusCreated, resp.Status, "响应: %s", string(resp.Body))
		var b BookData
		Decode(t, resp, &b)
		ids = append(ids, b.ID)
	}
	t.Cleanup(func() {
		for _, id := range ids {
			DeleteJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, id), adminToken)
		}
	})

	// 按分类过滤+价格升序
	resp := GetJSON(t, BaseURL+"/books?category="+category+"&sortBy=price&order=asc", "")
	require.Equal(t, http.StatusOK, resp.Status)
	var list BookListData
	Decode(t, resp, &list)
	require.Len(t, list.Books, 3)
	assert.Equal(t, int64(100), list.Books[0].Price)
	assert.Equal(t, int64(300), list.Books[2].Price)

	// 价格降序
	resp = GetJSON(t, BaseURL+"/books?category="+category+"&sortBy=price&order=desc", "")
	Decode(t, resp, &list)
	require.Len(t, list.Books, 3)
	assert.Equal(t, int64(300), list.Books[0].Price)

	// 评分过滤:rating>=语义
	resp = GetJSON(t, BaseURL+"/books?category="+category+"&rating=4.0", "")
	Decode(t, resp, &list)
	assert.Len(t, list.Books, 3, "评分等于阈值应匹配")
	resp = GetJSON(t, BaseURL+"/books?category="+category+"&rating=4.5", "")
	Decode(t, resp, &list)
	assert.Empty(t, list.Books, "评分低于阈值不应匹配")
}
