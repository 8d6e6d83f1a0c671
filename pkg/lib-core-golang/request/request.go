package request

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/evgeny-myasishchev/finance-tracker/pkg/lib-core-golang/diag"
	"github.com/evgeny-myasishchev/finance-tracker/pkg/version"
)

var defaultLogger = diag.CreateLogger()

type sendCfg struct {
	logger diag.Logger
	client *http.Client
}

// SendOpt is a send specific option
type SendOpt func(cfg *sendCfg)

func withLogger(logger diag.Logger) SendOpt {
	return func(cfg *sendCfg) {
		cfg.logger = logger
	}
}

// WithClient will send the request using given http client
func WithClient(client *http.Client) SendOpt {
	return func(cfg *sendCfg) {
		cfg.client = client
	}
}

// HTTPError is returned when the response status is not 2xx
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e HTTPError) Error() string {
	return fmt.Sprintf("Request failed with status %v: %v", e.Status, e.Body)
}

// NewHTTPErrorFromResponse reads and closes the body of a failed response
func NewHTTPErrorFromResponse(res *http.Response) error {
	defer res.Body.Close()
	body, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return errors.Wrapf(err, "Failed to read body of failed response (status %v)", res.Status)
	}
	return HTTPError{StatusCode: res.StatusCode, Status: res.Status, Body: string(body)}
}

// ReqFactory is a function that creates an instance of a request
type ReqFactory func() (*http.Request, error)

// WithHeader returns a factory that sets given header on a created request
func (f ReqFactory) WithHeader(name string, value string) ReqFactory {
	return func() (*http.Request, error) {
		req, err := f()
		if err != nil {
			return nil, err
		}
		req.Header.Set(name, value)
		return req, nil
	}
}

// Get creates a new req factory that creates a get request for given url
func Get(url string) ReqFactory {
	return func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, url, nil)
	}
}

// Post creates a new req factory that creates a post request with a given body
func Post(url string, contentType string, body io.Reader) ReqFactory {
	return func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodPost, url, body)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", contentType)
		return req, nil
	}
}

// PostJSON marshals the payload and creates a json post request factory
func PostJSON(url string, payload interface{}) ReqFactory {
	body, err := json.Marshal(payload)
	if err != nil {
		return func() (*http.Request, error) {
			return nil, errors.Wrap(err, "Failed to marshal payload")
		}
	}
	return Post(url, "application/json", bytes.NewReader(body))
}

// Delete creates a new req factory that creates a delete request for given url
func Delete(url string) ReqFactory {
	return func() (*http.Request, error) {
		return http.NewRequest(http.MethodDelete, url, nil)
	}
}

// ResFactory is a function that holds a request result with a response or error
type ResFactory func() (*http.Response, error)

// ReadAll will read entire body as a byte array
func (f ResFactory) ReadAll() ([]byte, error) {
	res, err := f()
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	return ioutil.ReadAll(res.Body)
}

// DecodeJSON will decode the body into the receiver
func (f ResFactory) DecodeJSON(receiver interface{}) error {
	res, err := f()
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if err := json.NewDecoder(res.Body).Decode(receiver); err != nil {
		return errors.Wrap(err, "Failed to decode response body")
	}
	return nil
}

// Discard will drain and close the body. Useful when only the status matters
func (f ResFactory) Discard() error {
	res, err := f()
	if err != nil {
		return err
	}
	defer res.Body.Close()
	_, err = io.Copy(ioutil.Discard, res.Body)
	return err
}

func newResFactory(res *http.Response, err error) ResFactory {
	if err == nil && res.StatusCode >= 300 {
		err = NewHTTPErrorFromResponse(res)
		res = nil
	}
	return func() (*http.Response, error) {
		return res, err
	}
}

// Do will send the request. Will fail if response status is other than 2xx
func Do(ctx context.Context, factory ReqFactory, opts ...SendOpt) ResFactory {
	cfg := sendCfg{
		logger: defaultLogger,
		client: &http.Client{Transport: http.DefaultTransport},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	req, err := factory()
	if err != nil {
		return newResFactory(nil, err)
	}
	req = req.WithContext(ctx)
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", version.UserAgent())
	}
	if requestID := diag.RequestIDValue(ctx); requestID != "" {
		req.Header.Set("x-request-id", requestID)
	}

	startedAt := time.Now()
	cfg.logger.Debug(ctx, "Sending %v %v", req.Method, req.URL)
	res, err := cfg.client.Do(req)
	if err != nil {
		cfg.logger.WithError(err).Info(ctx, "Request %v %v failed", req.Method, req.URL)
		return newResFactory(nil, err)
	}
	cfg.logger.
		WithData(diag.MsgData{"statusCode": res.StatusCode, "duration": time.Since(startedAt).String()}).
		Debug(ctx, "Got response for %v %v", req.Method, req.URL)
	return newResFactory(res, nil)
}
