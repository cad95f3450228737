package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	appbook "github.com/BinarniyKot/book-library-api/internal/application/book"
	"github.com/BinarniyKot/book-library-api/internal/infrastructure/config"
	"github.com/BinarniyKot/book-library-api/internal/interface/http/dto"
	"github.com/BinarniyKot/book-library-api/internal/interface/http/middleware"
	"github.com/BinarniyKot/book-library-api/internal/interface/http/request"
	apperrors "github.com/BinarniyKot/book-library-api/pkg/errors"
	"github.com/BinarniyKot/book-library-api/pkg/response"
)

// BookHandler 图书HTTP处理器
// 单个图书的路由先经过middleware.BindBook,Handler直接从Context取实体
type BookHandler struct {
	listBooks   *appbook.ListBooksUseCase
	createBook  *appbook.CreateBookUseCase
	updateBook  *appbook.UpdateBookUseCase
	deleteBook  *appbook.DeleteBookUseCase
	validator   *request.BookValidator
	pricePlaces int
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	listBooks *appbook.ListBooksUseCase,
	createBook *appbook.CreateBookUseCase,
	updateBook *appbook.UpdateBookUseCase,
	deleteBook *appbook.DeleteBookUseCase,
	validator *request.BookValidator,
	cfg *config.Config,
) *BookHandler {
	return &BookHandler{
		listBooks:   listBooks,
		createBook:  createBook,
		updateBook:  updateBook,
		deleteBook:  deleteBook,
		validator:   validator,
		pricePlaces: cfg.Books.PriceDecimalPrecision,
	}
}

// Index 图书列表
// @Summary      图书列表
// @Description  按创建时间倒序分页;search匹配标题、作者、类型(不区分大小写)
// @Tags         图书
// @Produce      json
// @Param        search    query    string  false  "搜索关键词"
// @Param        per_page  query    int     false  "每页数量(1~max_per_page)"
// @Param        page      query    int     false  "页码"
// @Success      200 {object} dto.BookPage
// @Failure      422 {object} response.ErrorBody "参数错误"
// @Failure      429 {object} response.ErrorBody "请求过于频繁"
// @Router       /api/books [get]
func (h *BookHandler) Index(c *gin.Context) {
	query, errs := h.validator.Index(c.Request.URL.Query())
	if len(errs) > 0 {
		response.ValidationFailed(c, errs)
		return
	}

	page, err := h.listBooks.Execute(c.Request.Context(), appbook.ListBooksRequest{
		Search:  query.Search,
		PerPage: query.PerPage,
		Page:    query.Page,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, dto.NewPageInfo(page, h.pricePlaces))
}

// Store 创建图书
// @Summary      创建图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        request body dto.BookRequest true "图书信息(全部必填)"
// @Success      201 {object} dto.BookEnvelope
// @Failure      422 {object} response.ErrorBody "参数错误"
// @Router       /api/books [post]
func (h *BookHandler) Store(c *gin.Context) {
	body, ok := bindBody(c)
	if !ok {
		return
	}

	attrs, errs := h.validator.Store(body)
	if len(errs) > 0 {
		response.ValidationFailed(c, errs)
		return
	}

	b, err := h.createBook.Execute(c.Request.Context(), attrs)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.NewBookResponse(b, h.pricePlaces))
}

// Show 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        book path int true "图书ID"
// @Success      200 {object} dto.BookEnvelope
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Router       /api/books/{book} [get]
func (h *BookHandler) Show(c *gin.Context) {
	response.Success(c, dto.NewBookResponse(middleware.MustGetBook(c), h.pricePlaces))
}

// Update 更新图书(部分更新)
// @Summary      更新图书
// @Description  只修改请求中出现的字段;PUT与PATCH行为相同
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        book    path int             true "图书ID"
// @Param        request body dto.BookRequest true "需要修改的字段"
// @Success      200 {object} dto.BookEnvelope
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Failure      422 {object} response.ErrorBody "参数错误"
// @Router       /api/books/{book} [patch]
// @Router       /api/books/{book} [put]
func (h *BookHandler) Update(c *gin.Context) {
	b := middleware.MustGetBook(c)

	body, ok := bindBody(c)
	if !ok {
		return
	}

	attrs, errs := h.validator.Update(body)
	if len(errs) > 0 {
		response.ValidationFailed(c, errs)
		return
	}

	if _, err := h.updateBook.Execute(c.Request.Context(), b, attrs); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.NewBookResponse(b, h.pricePlaces))
}

// Destroy 删除图书
// @Summary      删除图书
// @Tags         图书
// @Param        book path int true "图书ID"
// @Success      204 "删除成功"
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Router       /api/books/{book} [delete]
func (h *BookHandler) Destroy(c *gin.Context) {
	if err := h.deleteBook.Execute(c.Request.Context(), middleware.MustGetBook(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// bindBody 解析JSON请求体为map,数字保留为json.Number
// 空请求体视为{},格式错误返回422
func bindBody(c *gin.Context) (map[string]interface{}, bool) {
	body := make(map[string]interface{})
	if err := c.ShouldBindJSON(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]interface{}{}, true
		}
		response.Error(c, apperrors.WithCode(err, apperrors.ErrCodeBindError, apperrors.ErrBindError.Message))
		return nil, false
	}
	if body == nil {
		body = map[string]interface{}{}
	}
	return body, true
}
