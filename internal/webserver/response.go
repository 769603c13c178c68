package webserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response is the envelope of every API answer.
type Response struct {
	Code    string      `json:"code"`
	Msg     string      `json:"msg"`
	Data    interface{} `json:"data,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// PageResult is the data of a paged list.
type PageResult struct {
	Items    interface{} `json:"items"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

func Ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Response{Code: "OK", Msg: "success", Data: data})
}

// OkMsg answers 200 with a custom message.
func OkMsg(c echo.Context, msg string, data interface{}) error {
	return c.JSON(http.StatusOK, Response{Code: "OK", Msg: msg, Data: data})
}

func Fail(c echo.Context, status int, code, msg string, details interface{}) error {
	return c.JSON(status, Response{Code: code, Msg: msg, Details: details})
}

func Paged(c echo.Context, items interface{}, total int64, page, pageSize int) error {
	return Ok(c, PageResult{Items: items, Total: total, Page: page, PageSize: pageSize})
}
