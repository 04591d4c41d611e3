package server

import "errors"

var (
	ErrServerAlreadyRunning = errors.New("server is already running")
	ErrHTTPServer           = errors.New("HTTP server error")
	ErrHTTPShutdown         = errors.New("HTTP shutdown error")
)
