package response

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
)

// 分页链接标签
const (
	PreviousLabel = "&laquo; Previous"
	NextLabel     = "Next &raquo;"
	gapLabel      = "..."

	// 当前页两侧各显示的页码数
	onEachSide = 3
)

// Link 分页链接,URL为nil表示不可点击(省略号、首页的上一页等)
type Link struct {
	URL    *string `json:"url"`
	Label  string  `json:"label"`
	Active bool    `json:"active"`
}

// LengthAwarePaginator 带总数的分页响应
// 字段名与顺序和常见的PHP框架分页器一致,前端分页组件可直接使用
type LengthAwarePaginator struct {
	CurrentPage  int         `json:"current_page"`
	Data         interface{} `json:"data"`
	FirstPageURL string      `json:"first_page_url"`
	From         *int        `json:"from"`
	LastPage     int         `json:"last_page"`
	LastPageURL  string      `json:"last_page_url"`
	Links        []Link      `json:"links"`
	NextPageURL  *string     `json:"next_page_url"`
	Path         string      `json:"path"`
	PerPage      int         `json:"per_page"`
	PrevPageURL  *string     `json:"prev_page_url"`
	To           *int        `json:"to"`
	Total        int64       `json:"total"`
}

// PageInfo 分页器需要的数据
type PageInfo struct {
	Items   interface{} // 当前页数据(JSON数组)
	Count   int         // 当前页条数
	Total   int64
	Page    int
	PerPage int
}

// NewLengthAwarePaginator 构建分页器
// path为不带查询串的请求地址;query为原请求的查询参数,页码链接会保留除page外的参数
func NewLengthAwarePaginator(path string, query url.Values, info PageInfo) *LengthAwarePaginator {
	if info.PerPage < 1 {
		info.PerPage = 1
	}
	if info.Page < 1 {
		info.Page = 1
	}

	lastPage := int((info.Total + int64(info.PerPage) - 1) / int64(info.PerPage))
	if lastPage < 1 {
		lastPage = 1
	}

	pageURL := func(page int) string {
		q := url.Values{}
		for k, v := range query {
			q[k] = v
		}
		q.Set("page", strconv.Itoa(page))
		return path + "?" + q.Encode()
	}

	p := &LengthAwarePaginator{
		CurrentPage:  info.Page,
		Data:         info.Items,
		FirstPageURL: pageURL(1),
		LastPage:     lastPage,
		LastPageURL:  pageURL(lastPage),
		Path:         path,
		PerPage:      info.PerPage,
		Total:        info.Total,
	}

	if info.Count > 0 {
		from := (info.Page-1)*info.PerPage + 1
		to := from + info.Count - 1
		p.From, p.To = &from, &to
	}
	if info.Page > 1 {
		prev := pageURL(info.Page - 1)
		p.PrevPageURL = &prev
	}
	if info.Page < lastPage {
		next := pageURL(info.Page + 1)
		p.NextPageURL = &next
	}

	p.Links = append(p.Links, Link{URL: p.PrevPageURL, Label: PreviousLabel})
	for _, page := range Window(info.Page, lastPage) {
		if page == 0 {
			p.Links = append(p.Links, Link{Label: gapLabel})
			continue
		}
		u := pageURL(page)
		p.Links = append(p.Links, Link{URL: &u, Label: strconv.Itoa(page), Active: page == info.Page})
	}
	p.Links = append(p.Links, Link{URL: p.NextPageURL, Label: NextLabel})

	return p
}

// Window 计算要显示的页码,0表示省略号
// 页数较少时全部显示;否则保留首尾各两页,当前页两侧各onEachSide页
func Window(current, last int) []int {
	if last < onEachSide*2+8 {
		return pageRange(1, last)
	}

	window := onEachSide + 4
	switch {
	case current <= window:
		// 靠近开头
		return join(pageRange(1, window+onEachSide), pageRange(last-1, last))
	case current > last-window:
		// 靠近结尾
		return join(pageRange(1, 2), pageRange(last-(window+onEachSide-1), last))
	default:
		return join(pageRange(1, 2), pageRange(current-onEachSide, current+onEachSide), pageRange(last-1, last))
	}
}

func pageRange(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

// join 用省略号(0)连接多段页码
func join(parts ...[]int) []int {
	var out []int
	for i, part := range parts {
		if i > 0 {
			out = append(out, 0)
		}
		out = append(out, part...)
	}
	return out
}

// Paginated 200,返回分页器结构
func Paginated(c *gin.Context, info PageInfo) {
	c.JSON(http.StatusOK, NewLengthAwarePaginator(requestPath(c.Request), c.Request.URL.Query(), info))
}

// requestPath 当前请求的绝对地址(不含查询串)
func requestPath(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + r.Host + r.URL.Path
}
