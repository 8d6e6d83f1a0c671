package router

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"

	"gopkg.in/go-playground/validator.v9"

	"github.com/evgeny-myasishchev/finance-tracker/pkg/lib-core-golang/diag"
)

var logger = diag.CreateLogger()

type contextKey string

const (
	validatorRequestKey   contextKey = "validator"
	pathParamValueFuncKey contextKey = "path-param-value-func"
)

// RequestParamType represents type of a request parameter
type RequestParamType string

const (
	// PathParam is a request path parameter type
	PathParam RequestParamType = "path"

	// QueryParam is a request query parameter type
	QueryParam RequestParamType = "query"

	// FormParam is an url encoded form parameter type
	FormParam RequestParamType = "form"
)

type structValidator validator.Validate

func newStructValidator() *structValidator {
	return (*structValidator)(validator.New())
}

func (v *structValidator) validateStruct(ctx context.Context, target interface{}) error {
	vdt := (*validator.Validate)(v)
	if err := vdt.Struct(target); err != nil {
		logger.WithError(err).Info(ctx, "Failed to validate params")
		if err, ok := err.(validator.ValidationErrors); ok {
			badFields := make([]string, 0, len(err))
			for _, fieldErr := range err {
				badFields = append(badFields, fieldErr.Field())
			}
			return BadRequestError(fmt.Sprint("ValidationFailed: params ", badFields, " are invalid"))
		}
		return BadRequestError("ValidationFailed: failed to validate params")
	}
	return nil
}

type pathParamValueFunc func(req *http.Request, name string) string

// ParamsBinder binds request params to values
type ParamsBinder struct {
	req            *http.Request
	err            error
	validator      *structValidator
	pathParamValue pathParamValueFunc
}

func newParamsBinder(req *http.Request, pathParamValue pathParamValueFunc) *ParamsBinder {
	return &ParamsBinder{req: req, validator: newStructValidator(), pathParamValue: pathParamValue}
}

func (b *ParamsBinder) newParamBinder(paramType RequestParamType, name string, rawValue string) *ParamBinder {
	return &ParamBinder{paramType: paramType, name: name, rawValue: rawValue, binder: b}
}

// PathParam binds param from request path
func (b *ParamsBinder) PathParam(name string) *ParamBinder {
	rawValue := b.pathParamValue(b.req, name)
	return b.newParamBinder(PathParam, name, rawValue)
}

// QueryParam binds param from request query
func (b *ParamsBinder) QueryParam(name string) *ParamBinder {
	rawValue := b.req.URL.Query().Get(name)
	return b.newParamBinder(QueryParam, name, rawValue)
}

// FormParam binds param from url encoded request body.
// Query values are not taken into account
func (b *ParamsBinder) FormParam(name string) *ParamBinder {
	rawValue := b.req.PostFormValue(name)
	return b.newParamBinder(FormParam, name, rawValue)
}

// Validate will validate exposed fields of a target structure.
// See https://godoc.org/gopkg.in/go-playground/validator.v9 for more details
func (b *ParamsBinder) Validate(target interface{}) error {
	if b.err != nil {
		return b.err
	}

	return b.validator.validateStruct(b.req.Context(), target)
}

// ParamBinder binds particular param
type ParamBinder struct {
	paramType RequestParamType
	name      string
	rawValue  string
	binder    *ParamsBinder
}

// Default assign param default value
func (pb *ParamBinder) Default(value string) *ParamBinder {
	if pb.rawValue == "" {
		pb.rawValue = value
	}
	return pb
}

// Int bind param as int
func (pb *ParamBinder) Int(receiver *int) *ParamsBinder {
	if pb.binder.err != nil {
		return pb.binder
	}
	if value, err := strconv.Atoi(pb.rawValue); err != nil {
		logger.WithError(err).Info(pb.binder.req.Context(), "Failed to parse %v param %v", pb.paramType, pb.name)
		pb.binder.err = ParamValidationError(pb.paramType, pb.name)
	} else {
		*receiver = value
	}
	return pb.binder
}

// Int64 bind param as int64
func (pb *ParamBinder) Int64(receiver *int64) *ParamsBinder {
	if pb.binder.err != nil {
		return pb.binder
	}
	if value, err := strconv.ParseInt(pb.rawValue, 10, 64); err != nil {
		logger.WithError(err).Info(pb.binder.req.Context(), "Failed to parse %v param %v", pb.paramType, pb.name)
		pb.binder.err = ParamValidationError(pb.paramType, pb.name)
	} else {
		*receiver = value
	}
	return pb.binder
}

// String bind param as string
func (pb *ParamBinder) String(receiver *string) *ParamsBinder {
	if pb.binder.err != nil {
		return pb.binder
	}
	*receiver = pb.rawValue
	return pb.binder
}

// CustomValue is a function that converts raw string to a target value
type CustomValue func(rawValue string) (interface{}, error)

// Custom binds custom values
func (pb *ParamBinder) Custom(receiver interface{}, valueFn CustomValue) *ParamsBinder {
	if pb.binder.err != nil {
		return pb.binder
	}
	if value, err := valueFn(pb.rawValue); err != nil {
		logger.WithError(err).Info(pb.binder.req.Context(), "Failed to bind custom %v param %v", pb.paramType, pb.name)
		pb.binder.err = ParamValidationError(pb.paramType, pb.name)
	} else {
		reflect.ValueOf(receiver).Elem().Set(reflect.ValueOf(value))
	}
	return pb.binder
}

// ResponseDecorator is a helper function to decorate response
type ResponseDecorator func(w http.ResponseWriter) error

// HTMLTemplate is a template that can render a named entry. Satisfied by *html/template.Template
type HTMLTemplate interface {
	ExecuteTemplate(w io.Writer, name string, data interface{}) error
}

// HandlerToolkit - Collection of various tools to help processing request and build a response
type HandlerToolkit interface {
	BindParams() *ParamsBinder
	BindPayload(receiver interface{}) error

	// WriteJSON will serialize the payload and write it to the response
	// Optionally use decorators, for example WithStatus
	WriteJSON(payload interface{}, decorators ...ResponseDecorator) error

	// WriteHTML will render a named template into the response
	WriteHTML(tpl HTMLTemplate, name string, data interface{}, decorators ...ResponseDecorator) error

	// Redirect responds with 303 See Other pointing to a given location
	Redirect(location string) error

	// WithStatus is a decorator function that will set particular http status
	// used togeather with WriteJSON
	WithStatus(status int) ResponseDecorator
}

// ToolkitHandlerFunc - a little extension of a builtin HandlerFunc
type ToolkitHandlerFunc func(w http.ResponseWriter, req *http.Request, h HandlerToolkit) error

// ServeHTTP is an implementation of http.Handler. This allows ToolkitHandlerFunc to be used
// in place of the http.Handler
func (f ToolkitHandlerFunc) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	toolkit := handlerToolkit{
		request:        req,
		responseWriter: w,
		validator:      req.Context().Value(validatorRequestKey).(*structValidator),
		pathParamValue: req.Context().Value(pathParamValueFuncKey).(pathParamValueFunc),
	}
	err := f(w, req, &toolkit)
	if err != nil {
		logger.WithError(err).Error(req.Context(), "Failed to process request")
		errorResponse := newHTTPErrorFromError(err)
		errorResponse.Send(w)
	}
}

// MiddlewareFunc is a function that can be injected into a request chain
type MiddlewareFunc func(next http.Handler) http.Handler

// Router is a layer to abstract underlying http router implementation
// so we could swap it with relatively low efforts
type Router interface {
	Handle(method string, pattern string, handler http.Handler)

	Use(mw MiddlewareFunc)

	/*
		pathParam returns the bound parameter with the given name.
		Suppose we have a route pattern:

			/v1/transactions/:id

		and the URL Path:

			/v1/transactions/100

		in this case pathParam will return 100
	*/
	pathParam(r *http.Request, name string) string

	ServeHTTP(http.ResponseWriter, *http.Request)
}

func recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				err := fmt.Errorf("panic: %v", rec)
				logger.WithError(err).Error(r.Context(), "Request processing panicked")
				NewHTTPError(http.StatusInternalServerError, "Internal error").(HTTPError).Send(w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// CreateRouter returns default router implementation
func CreateRouter() Router {
	router := createGojiRouter()
	router.Use(recoverMiddleware)
	router.Use(MiddlewareFunc(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nextCtx := context.WithValue(r.Context(), validatorRequestKey, newStructValidator())
			nextCtx = context.WithValue(nextCtx, pathParamValueFuncKey, pathParamValueFunc(router.pathParam))
			nextReq := r.WithContext(nextCtx)
			next.ServeHTTP(w, nextReq)
		})
	}))
	return router
}

// NewServer creates a server with a router configured by the setup function.
// The caller owns ListenAndServe and Shutdown
func NewServer(port int, setup func(r Router)) *http.Server {
	router := CreateRouter()
	setup(router)
	return &http.Server{
		Addr:    fmt.Sprintf(":%v", port),
		Handler: router,
	}
}
