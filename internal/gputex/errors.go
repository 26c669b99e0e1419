package gputex

import "errors"

// ErrShaderCompile is returned when a shader fails naga validation.
var ErrShaderCompile = errors.New("gputex: shader compilation failed")
