package server

import (
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/photon-storage/go-common/log"

	"github.com/agrisync/agrisync/api/pagination"
	"github.com/agrisync/agrisync/api/service"
)

const requestIDHeader = "X-Request-ID"

// handleFunc is a service method of one of the shapes
//
//	func(*gin.Context) (resp, error)
//	func(*gin.Context, *Request) (resp, error)
//	func(*gin.Context, *Request, *pagination.Query) (*pagination.Result, error)
//
// where the request parameter is optional and the response may be omitted.
type handleFunc interface{}

type response struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

var (
	ginContextType = reflect.TypeOf((*gin.Context)(nil))
	pageQueryType  = reflect.TypeOf((*pagination.Query)(nil))
	pageResultType = reflect.TypeOf((*pagination.Result)(nil))
	errorType      = reflect.TypeOf((*error)(nil)).Elem()
)

func validateFunc(fn handleFunc) error {
	ft := reflect.TypeOf(fn)
	if ft == nil || ft.Kind() != reflect.Func {
		return errors.Errorf("handler %T is not a function", fn)
	}

	if ft.NumIn() < 1 || ft.NumIn() > 3 {
		return errors.Errorf("handler takes 1 to 3 parameters, got %d", ft.NumIn())
	}

	if ft.In(0) != ginContextType {
		return errors.New("the first parameter must be *gin.Context")
	}

	paged := false
	for i := 1; i < ft.NumIn(); i++ {
		in := ft.In(i)
		if in.Kind() != reflect.Ptr {
			return errors.Errorf("parameter %d must be a pointer, got %s", i, in)
		}

		if in == pageQueryType {
			if i != ft.NumIn()-1 {
				return errors.New("*pagination.Query must be the last parameter")
			}
			paged = true
		}
	}

	if ft.NumIn() == 3 && !paged {
		return errors.New("the third parameter must be *pagination.Query")
	}

	if ft.NumOut() < 1 || ft.NumOut() > 2 {
		return errors.Errorf("handler returns 1 or 2 values, got %d", ft.NumOut())
	}

	if ft.Out(ft.NumOut()-1) != errorType {
		return errors.New("the last return value must be an error")
	}

	if paged && (ft.NumOut() != 2 || ft.Out(0) != pageResultType) {
		return errors.New("a paged handler must return (*pagination.Result, error)")
	}

	return nil
}

// handle adapts fn to a gin handler. It binds the request parameters,
// calls fn and writes the response envelope. Errors are attached to the
// context for handleError.
func (s *Server) handle(fn handleFunc) gin.HandlerFunc {
	if err := validateFunc(fn); err != nil {
		panic(err)
	}

	fv := reflect.ValueOf(fn)
	ft := fv.Type()
	return func(c *gin.Context) {
		args := []reflect.Value{reflect.ValueOf(c)}
		for i := 1; i < ft.NumIn(); i++ {
			arg, err := bind(c, ft.In(i))
			if err != nil {
				c.Error(errors.Wrap(service.ErrInvalidRequest, err.Error()))
				return
			}
			args = append(args, arg)
		}

		outs := fv.Call(args)
		if errV := outs[len(outs)-1]; !errV.IsNil() {
			c.Error(errV.Interface().(error))
			return
		}

		if c.Writer.Written() {
			return
		}

		var data interface{}
		if len(outs) == 2 {
			data = outs[0].Interface()
		}
		c.JSON(http.StatusOK, &response{Code: 0, Msg: "success", Data: data})
	}
}

func bind(c *gin.Context, t reflect.Type) (reflect.Value, error) {
	v := reflect.New(t.Elem())
	if t == pageQueryType {
		page := v.Interface().(*pagination.Query)
		if err := c.ShouldBindQuery(page); err != nil {
			return v, err
		}
		page.Normalize()
		return v, nil
	}

	req := v.Interface()
	if len(c.Params) > 0 {
		if err := c.ShouldBindUri(req); err != nil {
			return v, err
		}
	}

	switch c.Request.Method {
	case http.MethodGet, http.MethodDelete:
		if err := c.ShouldBindQuery(req); err != nil {
			return v, err
		}
	default:
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBind(req); err != nil {
				return v, err
			}
		}
	}

	return v, nil
}

func handleError() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status, code := service.ErrorStatus(err)
		if status >= http.StatusInternalServerError {
			log.Error("handle request failed",
				"request_id", c.GetString(service.RequestIDKey),
				"path", c.FullPath(),
				"error", err,
			)
		}

		c.JSON(status, &response{Code: code, Msg: err.Error()})
	}
}

// requestID tags every request with an id, reusing a valid one sent by the
// client.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.Set(service.RequestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}
